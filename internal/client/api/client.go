// Package api defines the contract the terminal client uses to talk to the
// Taskify server, plus the wire types shared by its operations.
package api

import (
	"context"
	"time"
)

// User mirrors the server's public user representation.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task mirrors the server's task representation.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskDraft is the payload for creating a task.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// TaskPatch carries the patchable task fields; a nil field is omitted from
// the request body and left unchanged on the server.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Client is the API surface the client-side components depend on. The bearer
// token set via SetToken is attached to every subsequent request; an empty
// token sends requests anonymously.
type Client interface {
	Register(ctx context.Context, name, email, password string) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	Me(ctx context.Context) (*User, error)
	ListTasks(ctx context.Context) ([]Task, error)
	CreateTask(ctx context.Context, draft TaskDraft) (*Task, error)
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error)
	DeleteTask(ctx context.Context, id string) error
	SetToken(token string)
}
