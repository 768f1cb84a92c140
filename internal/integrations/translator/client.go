// Package translator wraps the AWS Translate engine behind the narrow
// interface the pipeline consumes.
package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/translate"
)

// translateAPI is the minimal AWS Translate interface required by Client.
// *translate.Client from aws-sdk-go-v2 satisfies this interface.
type translateAPI interface {
	TranslateText(ctx context.Context, in *translate.TranslateTextInput, optFns ...func(*translate.Options)) (*translate.TranslateTextOutput, error)
}

// Client invokes the translation engine. Calls are blocking and never
// retried; any failure is terminal for the request.
type Client struct {
	api translateAPI
}

// New creates a Client with the given Translate API implementation.
func New(api translateAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("translator: api must not be nil")
	}
	return &Client{api: api}, nil
}

// Translate converts text into the target language, letting the engine
// detect the source language.
func (c *Client) Translate(ctx context.Context, langCode, text string) (string, error) {
	if strings.TrimSpace(langCode) == "" {
		return "", errors.New("translator: language code is required")
	}

	out, err := c.api.TranslateText(ctx, &translate.TranslateTextInput{
		SourceLanguageCode: aws.String("auto"),
		TargetLanguageCode: aws.String(langCode),
		Text:               aws.String(text),
	})
	if err != nil {
		return "", fmt.Errorf("translator: translate to %s: %w", langCode, err)
	}
	if out == nil || out.TranslatedText == nil {
		return "", errors.New("translator: response missing translated text")
	}
	return *out.TranslatedText, nil
}
