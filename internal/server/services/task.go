package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/taskify-app/taskify/internal/common"
	"github.com/taskify-app/taskify/internal/dbx"
	"github.com/taskify-app/taskify/internal/server/models"
	"github.com/taskify-app/taskify/internal/server/repositories/repomanager"
)

// TaskService is the ownership-enforced facade over task storage. Every
// operation takes the acting user's ID and never exposes or mutates a task
// owned by someone else.
//
// For Update and Delete the sequence is fixed: confirm existence first, then
// check ownership, then mutate, all inside one transaction. A task that
// exists under a different owner is reported as common.ErrorUnauthorized, a
// missing one as common.ErrorNotFound.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create persists a new task owned by userID. Title is required; an
// unrecognized priority silently defaults to Low, matching the storage
// default. Returns the stored task with its server-assigned ID and
// timestamps.
func (s *TaskService) Create(ctx context.Context, userID, title, description, priority string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	if !models.ValidPriority(priority) {
		priority = models.PriorityLow
	}

	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Priority:    priority,
	}

	repo := s.repomanager.Tasks(s.db)
	created, err := repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return created, nil
}

// List returns every task owned by userID in storage order. Tasks of other
// users are never included.
func (s *TaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	result, err := repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return result, nil
}

// Update applies patch to the task with the given ID on behalf of userID.
// Only the allow-listed fields of models.TaskPatch are applied; the owner
// field is never touched. A patch carrying an invalid priority is rejected
// with common.ErrorValidation before anything is written.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	// a malformed ID cannot refer to any task
	if uuid.Validate(taskID) != nil {
		return nil, common.ErrorNotFound
	}

	var updated *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := repo.GetByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return common.ErrorInternal
		}

		if task.UserID != userID {
			return common.ErrorUnauthorized
		}

		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return fmt.Errorf("%w: title is required", common.ErrorValidation)
			}
			task.Title = title
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Priority != nil {
			if !models.ValidPriority(*patch.Priority) {
				return fmt.Errorf("%w: invalid priority", common.ErrorValidation)
			}
			task.Priority = *patch.Priority
		}
		if patch.Completed != nil {
			task.Completed = *patch.Completed
		}

		updated, err = repo.Update(ctx, task)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("error updating task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the task with the given ID on behalf of userID, using the
// same lookup-then-ownership-check sequence as Update. Deleting an absent ID
// yields common.ErrorNotFound, never a silent success.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if uuid.Validate(taskID) != nil {
		return common.ErrorNotFound
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := repo.GetByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return common.ErrorInternal
		}

		if task.UserID != userID {
			return common.ErrorUnauthorized
		}

		if err := repo.Delete(ctx, task.ID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("error deleting task: %w", err)
		}
		return nil
	})
}
