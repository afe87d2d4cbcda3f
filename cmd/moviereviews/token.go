package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sicko7947/moviereviews/auth"
)

var tokenExpiry time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token <username>",
	Short: "Mint a session token for the write routes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := os.Getenv("AUTH_JWT_SECRET")
		if secret == "" {
			return errors.New("AUTH_JWT_SECRET is not set")
		}
		token, err := auth.NewToken([]byte(secret), args[0], tokenExpiry)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", 24*time.Hour, "token lifetime")
}
