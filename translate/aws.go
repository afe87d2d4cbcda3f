package translate

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/translate"

	"github.com/sicko7947/moviereviews"
)

// TranslateClient is the subset of the Amazon Translate API used here
type TranslateClient interface {
	TranslateText(ctx context.Context, params *translate.TranslateTextInput, optFns ...func(*translate.Options)) (*translate.TranslateTextOutput, error)
}

// Ensure *translate.Client implements TranslateClient
var _ TranslateClient = (*translate.Client)(nil)

// AWSTranslator translates text with Amazon Translate
type AWSTranslator struct {
	client TranslateClient
}

// NewAWSTranslator creates a translator over an Amazon Translate client
func NewAWSTranslator(client TranslateClient) *AWSTranslator {
	return &AWSTranslator{client: client}
}

func (t *AWSTranslator) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	result, err := t.client.TranslateText(ctx, &translate.TranslateTextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String(sourceLanguage),
		TargetLanguageCode: aws.String(targetLanguage),
	})
	if err != nil {
		return "", fmt.Errorf("failed to translate text: %w", err)
	}
	return aws.ToString(result.TranslatedText), nil
}

var _ moviereviews.Translator = (*AWSTranslator)(nil)
