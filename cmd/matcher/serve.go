package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seedtech/candidate-matcher/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing scoring, bulk matching, ATS proxy and cache inspection endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, cancel := bootTimeout()
	a, err := newApp(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer a.Close()

	port := a.cfg.Port
	if servePort > 0 {
		port = servePort
	}

	srv := server.New(server.Config{Port: port}, a.matcher, a.ats, a.store, a.log)
	return srv.Start()
}
