package service

import (
	"fmt"

	"taskdesk/config"
	"taskdesk/util/common"

	"github.com/wneessen/go-mail"
)

const taskAssignmentSubject = "New Task Assignment"

// Notifier sends the task-assignment notice to a staff member. The send
// is a blocking call on the request path: no queue, no retry.
type Notifier interface {
	SendTaskAssignment(staffEmail string, taskName string, description string) error
}

// MailService is the SMTP-backed Notifier. Constructed once at startup
// from the mail environment settings and shared by all requests.
type MailService struct {
	host     string
	port     int
	useTLS   bool
	username string
	password string
	from     string
}

func NewMailService() *MailService {
	return &MailService{
		host:     config.GetMailHost(),
		port:     config.GetMailPort(),
		useTLS:   config.GetMailTLS(),
		username: config.GetMailUsername(),
		password: config.GetMailPassword(),
		from:     config.GetMailFrom(),
	}
}

func (s *MailService) SendTaskAssignment(staffEmail string, taskName string, description string) error {
	if s.username == "" || s.password == "" {
		return common.NewErrorf("mail transport is not configured, cannot notify %s", staffEmail)
	}

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return err
	}
	if err := msg.To(staffEmail); err != nil {
		return err
	}
	msg.Subject(taskAssignmentSubject)
	msg.SetBodyString(mail.TypeTextPlain, taskAssignmentBody(taskName, description))

	tlsPolicy := mail.TLSMandatory
	if !s.useTLS {
		tlsPolicy = mail.NoTLS
	}

	client, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
		mail.WithTLSPortPolicy(tlsPolicy),
		mail.WithTimeout(config.GetMailTimeout()),
	)
	if err != nil {
		return err
	}

	return client.DialAndSend(msg)
}

func taskAssignmentBody(taskName string, description string) string {
	return fmt.Sprintf(
		"You have been assigned a new task:\n\n"+
			"Task: %s\n\n"+
			"Description:\n%s\n\n"+
			"Please log in to update the status.",
		taskName, description)
}
