// Package client assembles and runs the terminal client.
package client

import (
	"context"
	"fmt"

	"github.com/asorokin/decat/internal/client/api"
	"github.com/asorokin/decat/internal/client/config"
	"github.com/asorokin/decat/internal/client/prefs"
	"github.com/asorokin/decat/internal/client/session"
	"github.com/asorokin/decat/internal/client/tui"
	tea "github.com/charmbracelet/bubbletea"
)

type App struct {
	config *config.Config
}

func NewApp(cfg *config.Config) *App {
	return &App{config: cfg}
}

// Run probes the server, restores any cached session and hands the terminal
// to the UI until the user quits.
func (app *App) Run(ctx context.Context) error {
	tokens := session.NewTokenStore(app.config.TokenPath)
	apiClient := api.NewClient(app.config.ServerAddr, tokens)

	if err := apiClient.Ping(ctx); err != nil {
		return fmt.Errorf("server unreachable at %s: %w", app.config.ServerAddr, err)
	}

	sessions := session.NewManager(apiClient, tokens)

	stored := prefs.Load(app.config.PrefsPath)
	var dark bool
	switch stored.Theme {
	case prefs.ModeDark:
		dark = true
	case prefs.ModeLight:
		dark = false
	default:
		dark = tui.DetectDark()
	}

	model := tui.New(tui.Options{
		Context:   ctx,
		Client:    apiClient,
		Session:   sessions,
		PrefsPath: app.config.PrefsPath,
		DarkMode:  dark,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
