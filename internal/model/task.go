package model

import "time"

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskFilter selects one partition. Every list and count is scoped to exactly one.
type TaskFilter struct {
	Completed bool
}

// TaskUpdate carries the fields to change; nil means untouched.
type TaskUpdate struct {
	Completed *bool
}

type CreateTaskInput struct {
	Title       string
	Description *string
}

// TaskListResult is the snapshot returned by every list and mutation.
type TaskListResult struct {
	Tasks      []Task `json:"tasks"`
	TotalPages int    `json:"totalPages"`
	Page       int    `json:"page"`
}
