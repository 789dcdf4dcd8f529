// Package client wires the terminal frontend together: local database, API
// client, session manager and the task list synchronizer.
package client

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskify-app/taskify/internal/client/api"
	"github.com/taskify-app/taskify/internal/client/config"
	"github.com/taskify-app/taskify/internal/client/db"
	"github.com/taskify-app/taskify/internal/client/repositories/metadata"
	"github.com/taskify-app/taskify/internal/client/session"
	"github.com/taskify-app/taskify/internal/client/tasklist"
	"github.com/taskify-app/taskify/internal/client/tui"
	"github.com/taskify-app/taskify/internal/filex"
)

type App struct {
	config  *config.Config
	session *session.Manager
	list    *tasklist.List
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	dbPath, err := filex.EnsureParentDir(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare database location: %w", err)
	}

	conn, err := db.InitDatabase(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	apiClient := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout)
	meta := metadata.NewSQLiteRepository(conn)
	sess := session.NewManager(apiClient, meta)

	// a stale or rejected token is discarded silently; a server that is
	// down just means starting logged out
	if err := sess.Restore(ctx); err != nil && !errors.Is(err, api.ErrUnavailable) {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return &App{
		config:  cfg,
		session: sess,
		list:    tasklist.NewList(apiClient),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	model := tui.NewModel(a.session, a.list, a.config.RequestTimeout)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
