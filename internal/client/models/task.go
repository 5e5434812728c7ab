// Package models holds the client-side view of TaskFlow API resources.
package models

import (
	"fmt"
	"time"
)

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t Task) String() string {
	s := fmt.Sprintf("%s  [%s]  %s", t.ID, t.Status, t.Title)
	if t.Description != "" {
		s += " - " + t.Description
	}
	return s
}

// TaskInput is the create/update body. Nil fields are omitted, so an update
// only touches what was set.
type TaskInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}
