package translate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/sicko7947/moviereviews"
)

// LambdaInvoker is the subset of the Lambda API used here
type LambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Ensure *lambda.Client implements LambdaInvoker
var _ LambdaInvoker = (*lambda.Client)(nil)

// ManagerRequest is the payload accepted by the translation manager function
type ManagerRequest struct {
	Texts      []string `json:"texts"`
	SourceLang string   `json:"sourceLang"`
	TargetLang string   `json:"targetLang"`
}

// ManagerResponse is the payload returned by the translation manager function
type ManagerResponse struct {
	Translations []string `json:"translations,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// LambdaTranslator translates text by synchronously invoking a
// translation-manager Lambda function
type LambdaTranslator struct {
	client       LambdaInvoker
	functionName string
}

// NewLambdaTranslator creates a translator invoking functionName
func NewLambdaTranslator(client LambdaInvoker, functionName string) *LambdaTranslator {
	return &LambdaTranslator{client: client, functionName: functionName}
}

func (t *LambdaTranslator) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	payload, err := json.Marshal(ManagerRequest{
		Texts:      []string{text},
		SourceLang: sourceLanguage,
		TargetLang: targetLanguage,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := t.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(t.functionName),
		Payload:      payload,
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke %s: %w", t.functionName, err)
	}

	// Check for Lambda errors
	if result.FunctionError != nil {
		return "", fmt.Errorf("lambda error: %s", *result.FunctionError)
	}

	var resp ManagerResponse
	if err := json.Unmarshal(result.Payload, &resp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("translator error: %s", resp.Error)
	}
	if len(resp.Translations) == 0 {
		return "", nil
	}
	return resp.Translations[0], nil
}

var _ moviereviews.Translator = (*LambdaTranslator)(nil)
