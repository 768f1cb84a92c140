// Package speech wraps AWS Polly speech synthesis behind the narrow
// interface the pipeline consumes.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// pollyAPI is the minimal AWS Polly interface required by Client.
// *polly.Client from aws-sdk-go-v2 satisfies this interface.
type pollyAPI interface {
	SynthesizeSpeech(ctx context.Context, in *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// Client renders text to mp3 audio with a given voice. Synthesis is blocking
// and unstreamed; the whole recording is read before returning.
type Client struct {
	api pollyAPI
}

// New creates a Client with the given Polly API implementation.
func New(api pollyAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("speech: api must not be nil")
	}
	return &Client{api: api}, nil
}

// Synthesize returns the raw mp3 bytes for text spoken by voiceID.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if voiceID == "" {
		return nil, errors.New("speech: voice id is required")
	}

	out, err := c.api.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		OutputFormat: types.OutputFormatMp3,
		Text:         aws.String(text),
		VoiceId:      types.VoiceId(voiceID),
	})
	if err != nil {
		return nil, fmt.Errorf("speech: synthesize with voice %s: %w", voiceID, err)
	}
	if out == nil || out.AudioStream == nil {
		return nil, errors.New("speech: response missing audio stream")
	}
	defer func() { _ = out.AudioStream.Close() }()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("speech: read audio stream: %w", err)
	}
	return audio, nil
}
