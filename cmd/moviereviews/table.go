package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sicko7947/moviereviews"
	"github.com/sicko7947/moviereviews/store"
)

var (
	waitTimeout time.Duration
	ensureTable bool
)

var createTableCmd = &cobra.Command{
	Use:   "create-table",
	Short: "Create the reviews table if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initializeApp(cmd.Context())
		if err != nil {
			return err
		}

		created, err := app.store.EnsureTable(cmd.Context(), waitTimeout)
		if err != nil {
			return err
		}
		log.Info().Str("table", app.store.TableName()).Bool("created", created).Msg("Table ready")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the bundled seed reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initializeApp(cmd.Context())
		if err != nil {
			return err
		}

		if ensureTable {
			if _, err := app.store.EnsureTable(cmd.Context(), waitTimeout); err != nil {
				return err
			}
		}

		count, err := store.Seed(cmd.Context(), app.store)
		if err != nil {
			return err
		}
		moviereviews.LogReviewsSeeded(app.logger, app.store.TableName(), count)
		return nil
	},
}

func init() {
	createTableCmd.Flags().DurationVar(&waitTimeout, "wait", 2*time.Minute, "how long to wait for the table to become active")
	seedCmd.Flags().DurationVar(&waitTimeout, "wait", 2*time.Minute, "how long to wait for the table to become active")
	seedCmd.Flags().BoolVar(&ensureTable, "create-table", false, "create the table first when missing")
}
