package models

import (
	"slices"
	"time"
)

// Task statuses.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// TaskStatuses lists every accepted status in display order.
var TaskStatuses = []string{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

// ValidTaskStatus reports whether s is one of TaskStatuses.
func ValidTaskStatus(s string) bool {
	return slices.Contains(TaskStatuses, s)
}

// Task is a unit of work owned by exactly one user.
//
// OwnerID is set from the authenticated caller at creation and never changes.
// Version is bumped by every successful update and guards concurrent writes.
type Task struct {
	ID          string    `bson:"_id"`
	OwnerID     string    `bson:"owner_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Status      string    `bson:"status"`
	Version     int64     `bson:"version"`
	CreatedAt   time.Time `bson:"created_at"`
}
