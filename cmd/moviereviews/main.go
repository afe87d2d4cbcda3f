package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "moviereviews",
	Short: "Movie reviews API backed by DynamoDB",
	// Run as a Lambda function when invoked by the Lambda runtime
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
			return runLambda(cmd.Context())
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, lambdaCmd, seedCmd, createTableCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
