package services

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
)

// Input limits.
const (
	MaxEmailLength       = 254
	MinPasswordLength    = 6
	MaxPasswordLength    = 72 // bcrypt ignores input past 72 bytes
	MaxDisplayNameLength = 50
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// validator collects the first failure per field.
type validator struct {
	errors map[string]string
}

func newValidator() *validator {
	return &validator{errors: make(map[string]string)}
}

func (v *validator) checkCond(cond bool, key, msg string) {
	if cond {
		return
	}
	if _, ok := v.errors[key]; !ok {
		v.errors[key] = msg
	}
}

// err returns nil when every check passed, or a *common.ValidationError.
func (v *validator) err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &common.ValidationError{Fields: v.errors}
}

func (v *validator) checkEmail(email string) {
	v.checkCond(email != "", "email", "must be provided")
	v.checkCond(len(email) <= MaxEmailLength, "email", "must not be more than 254 bytes long")
	v.checkText(email, "email")
}

func (v *validator) checkPassword(password string) {
	v.checkCond(password != "", "password", "must be provided")
	v.checkCond(len(password) >= MinPasswordLength, "password", "must be at least 6 bytes long")
	v.checkCond(len(password) <= MaxPasswordLength, "password", "must not be more than 72 bytes long")
}

func (v *validator) checkDisplayName(name string) {
	v.checkCond(utf8.RuneCountInString(name) <= MaxDisplayNameLength, "username", "must not be more than 50 characters long")
	v.checkText(name, "username")
}

func (v *validator) checkTitle(title string) {
	v.checkCond(title != "", "title", "must be provided")
	v.checkCond(utf8.RuneCountInString(title) <= MaxTitleLength, "title", "must not be more than 100 characters long")
	v.checkText(title, "title")
}

func (v *validator) checkDescription(description string) {
	v.checkCond(utf8.RuneCountInString(description) <= MaxDescriptionLength, "description", "must not be more than 500 characters long")
	v.checkText(description, "description")
}

func (v *validator) checkStatus(status string) {
	v.checkCond(models.ValidTaskStatus(status), "status", "must be one of pending, in-progress, completed")
}

// checkText rejects NUL bytes, which PostgreSQL text columns cannot hold.
func (v *validator) checkText(s, key string) {
	v.checkCond(!strings.ContainsRune(s, 0), key, "must not contain NUL characters")
}
