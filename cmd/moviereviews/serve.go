package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initializeApp(cmd.Context())
		if err != nil {
			return err
		}
		srv := app.server()

		// Start server in a goroutine
		errCh := make(chan error, 1)
		go func() {
			addr := ":" + app.cfg.Port
			log.Info().Str("address", addr).Msg("Starting HTTP server")
			errCh <- srv.Listen(addr)
		}()

		// Wait for interrupt signal to gracefully shutdown the server
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		log.Info().Msg("Shutting down server...")

		// Graceful shutdown with 5 second timeout
		if err := srv.Shutdown(5 * time.Second); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}

		log.Info().Msg("Server stopped")
		return nil
	},
}
