// Package tasklist maintains the client's view of the task collection. The
// server is the source of truth: every mutation goes to the server first and
// the collection is refetched after it succeeds.
package tasklist

import (
	"context"
	"strings"
	"sync"

	"github.com/taskify-app/taskify/internal/client/api"
)

type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

// List holds the last fetched task collection. Methods are safe for
// concurrent use.
type List struct {
	mu     sync.Mutex
	client api.Client
	state  State
	tasks  []api.Task
	err    error
}

func NewList(client api.Client) *List {
	return &List{client: client, state: StateLoading}
}

// Refresh refetches the collection from the server. On failure the last
// known tasks are kept and the error is recorded.
func (l *List) Refresh(ctx context.Context) error {
	tasks, err := l.client.ListTasks(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.state = StateError
		l.err = err
		return err
	}

	l.state = StateReady
	l.err = nil
	l.tasks = tasks
	return nil
}

// Create submits a new task to the server and, on success, refetches the
// collection. A failed creation leaves the collection untouched.
func (l *List) Create(ctx context.Context, draft api.TaskDraft) error {
	if _, err := l.client.CreateTask(ctx, draft); err != nil {
		return err
	}
	return l.Refresh(ctx)
}

// Update applies a partial update to a task on the server and refetches.
func (l *List) Update(ctx context.Context, id string, patch api.TaskPatch) error {
	if _, err := l.client.UpdateTask(ctx, id, patch); err != nil {
		return err
	}
	return l.Refresh(ctx)
}

// Delete removes a task on the server and refetches.
func (l *List) Delete(ctx context.Context, id string) error {
	if err := l.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	return l.Refresh(ctx)
}

// Snapshot returns the current state alongside a copy of the task collection.
func (l *List) Snapshot() (State, []api.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tasks := make([]api.Task, len(l.tasks))
	copy(tasks, l.tasks)
	return l.state, tasks, l.err
}

// Filter returns the tasks whose title or description contains the query,
// ignoring case. An empty query matches everything.
func Filter(tasks []api.Task, query string) []api.Task {
	if query == "" {
		return tasks
	}

	q := strings.ToLower(query)
	matched := make([]api.Task, 0, len(tasks))
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Title), q) ||
			strings.Contains(strings.ToLower(task.Description), q) {
			matched = append(matched, task)
		}
	}
	return matched
}
