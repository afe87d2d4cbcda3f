package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve API Gateway proxy events inside the Lambda runtime",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLambda(cmd.Context())
	},
}

// runLambda builds the clients once per execution environment and reuses
// them across invocations
func runLambda(ctx context.Context) error {
	app, err := initializeApp(ctx)
	if err != nil {
		return err
	}
	lambda.Start(app.server().LambdaHandler())
	return nil
}
