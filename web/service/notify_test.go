package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskAssignmentBody(t *testing.T) {
	body := taskAssignmentBody("Fix bug", "urgent")

	assert.Contains(t, body, "Task: Fix bug")
	assert.Contains(t, body, "Description:\nurgent")
	assert.Contains(t, body, "Please log in to update the status.")
}

func TestMailServiceRequiresCredentials(t *testing.T) {
	t.Setenv("TD_MAIL_USERNAME", "")
	t.Setenv("TD_MAIL_PASSWORD", "")

	mailService := NewMailService()
	err := mailService.SendTaskAssignment("bob@x.com", "Fix bug", "urgent")
	assert.Error(t, err)
}
