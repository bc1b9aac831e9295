// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-search/internal/server"
	"github.com/pdiddy/scholar-search/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API for browser sessions",
	Long: `Serve starts an HTTP server exposing the same actions as the CLI. Each browser
gets its own session, identified by the s2session cookie. Sessions are stored
in the session database unless --memory is given.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		var store session.Store = a.store
		if mem, _ := cmd.Flags().GetBool("memory"); mem {
			store = session.NewMemoryStore()
		}
		srv := server.New(server.Config{
			Handler: a.handler,
			Store:   store,
			Logger:  a.logger,
		})
		return srv.ListenAndServe(cmd.Context(), a.cfg.Serve.Addr)
	}),
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	serveCmd.Flags().Bool("memory", false, "keep sessions in memory only")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
