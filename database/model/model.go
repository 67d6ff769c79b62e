// Package model defines the persisted records of the taskdesk panel.
package model

import "time"

// Role is the access level of a user. It is a closed set: anything that
// does not parse as admin is treated as staff.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole maps a free-form role string to a Role, defaulting to staff.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleStaff
}

// User is an account that can log in to the panel. Email acts as the
// login identifier but carries no unique index: duplicate registrations
// are possible and login picks the first match.
type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"index;not null"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash
	Role     Role   `json:"role" gorm:"not null;default:staff"`
}

// Recognized task status values. Status is stored as free text and staff
// may write any non-empty string; these are only the conventional ones.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Task is a unit of work assigned to a staff member. StaffEmail is not
// validated against the users table, so dangling assignments are possible.
type Task struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	StaffEmail  string    `json:"staffEmail" gorm:"index;not null"`
	TaskName    string    `json:"taskName" gorm:"not null"`
	Description string    `json:"description"`
	Status      string    `json:"status" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}
