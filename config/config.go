package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("TD_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("TD_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("TD_LISTEN")
}

func GetPort() int {
	return envInt("TD_PORT", 5000)
}

// GetSecret returns the session signing secret. An empty value means none
// was configured; the web server falls back to an ephemeral random secret
// and logs a warning, which invalidates sessions across restarts.
func GetSecret() string {
	return os.Getenv("TD_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	return envInt("TD_SESSION_MAX_AGE", 60)
}

func GetWebDomain() string {
	return os.Getenv("TD_DOMAIN")
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("TD_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/taskdesk"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("TD_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// Mail transport settings. Task assignment mail cannot be sent without
// valid credentials; everything else works with these left empty.

func GetMailHost() string {
	host := os.Getenv("TD_MAIL_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	return host
}

func GetMailPort() int {
	return envInt("TD_MAIL_PORT", 587)
}

func GetMailTLS() bool {
	return os.Getenv("TD_MAIL_TLS") != "false"
}

func GetMailUsername() string {
	return os.Getenv("TD_MAIL_USERNAME")
}

func GetMailPassword() string {
	return os.Getenv("TD_MAIL_PASSWORD")
}

// GetMailFrom returns the sender identity, defaulting to the
// authenticated mail account.
func GetMailFrom() string {
	from := os.Getenv("TD_MAIL_FROM")
	if from == "" {
		from = GetMailUsername()
	}
	return from
}

func GetMailTimeout() time.Duration {
	return time.Duration(envInt("TD_MAIL_TIMEOUT", 30)) * time.Second
}

func envInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
