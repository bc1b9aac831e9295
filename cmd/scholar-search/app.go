// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-search/internal/actions"
	"github.com/pdiddy/scholar-search/internal/config"
	"github.com/pdiddy/scholar-search/internal/logging"
	"github.com/pdiddy/scholar-search/internal/present"
	"github.com/pdiddy/scholar-search/internal/scholar"
	"github.com/pdiddy/scholar-search/internal/secrets"
	"github.com/pdiddy/scholar-search/internal/session"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// app holds what every command needs: settings, logger, the session store
// and the action handler.
type app struct {
	cfg     types.Config
	logger  zerolog.Logger
	store   *session.SQLiteStore
	handler *actions.Handler
}

func newApp() (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log)

	loaded, err := secrets.Load(secrets.DefaultDir, logger)
	if err != nil {
		return nil, err
	}
	cfg.Client.APIKey = secrets.APIKey(cfg.Client.APIKey, loaded)
	if cfg.Client.APIKey == "" {
		logger.Debug().Msg("no Semantic Scholar API key configured; using shared rate limits")
	}

	store, err := session.OpenSQLite(cfg.Session.DBPath)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		handler: &actions.Handler{
			Client: scholar.NewClient(cfg.Client, logger),
			Logger: logger,
		},
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// withApp wraps a command body with app setup and teardown.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}

// apply runs act against the configured session and prints the result.
// A failed action prints the user message and leaves the session as it was.
func (a *app) apply(cmd *cobra.Command, act actions.Action) error {
	out, err := actions.Apply(cmd.Context(), a.store, a.cfg.Session.Name, act)
	if err != nil {
		return err
	}
	if out.Failed() {
		return errors.New(out.Message())
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	return render(cmd.OutOrStdout(), out.Snapshot, asJSON)
}

func render(w io.Writer, s session.Snapshot, asJSON bool) error {
	if !s.HasResults() {
		fmt.Fprintln(w, "No results yet. Run search, bulk, paper or recommend first.")
		return nil
	}
	if asJSON {
		return present.WriteJSON(w, *s.Results)
	}
	present.WriteText(w, actions.View(s))
	return nil
}
