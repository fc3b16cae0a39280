// Copyright 2025 Clefworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/clefworks/scorebase/ai"
	"github.com/clefworks/scorebase/core"
)

// mimeTypes maps accepted file extensions to their MIME types. Anything
// outside this set is rejected before any remote call.
var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".pdf":  "application/pdf",
}

// Converter implements ai.ScoreConverter using a multimodal model behind an
// OpenAI-compatible chat API.
type Converter struct {
	client   llms.Model
	maxBytes int64
	logger   *slog.Logger
}

// newConverter is an internal constructor that returns the concrete type.
func newConverter(config *ai.Config) (*Converter, error) {
	config.Normalize()

	if config.ConverterHost == "" {
		return nil, errors.New("converter: ConverterHost is required")
	}
	if config.ConverterModel == "" {
		return nil, errors.New("converter: ConverterModel is required")
	}
	if config.MaxUploadBytes <= 0 {
		return nil, errors.New("converter: MaxUploadBytes must be positive")
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ConverterHost),
		openai.WithToken("none"),
		openai.WithModel(config.ConverterModel),
	)
	if err != nil {
		return nil, err
	}

	return &Converter{
		client:   client,
		maxBytes: config.MaxUploadBytes,
		logger:   slog.Default().With("component", "openai-converter"),
	}, nil
}

// NewConverter creates a new sheet converter using the provided configuration.
//
// Returns ai.ScoreConverter interface to enforce abstraction.
func NewConverter(config *ai.Config) (ai.ScoreConverter, error) {
	return newConverter(config)
}

// Convert reads the sheet file at path and asks the multimodal model to
// transcribe it into a structured score document.
func (c *Converter) Convert(ctx context.Context, path string) (*core.ScoreDocument, error) {
	mime, err := c.admit(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(conversionPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mime, data),
				llms.TextPart("Transcribe this music sheet."),
			},
		},
	}

	c.logger.Debug("converting sheet", "path", path, "bytes", len(data))

	// Try up to 3 times in case of malformed JSON
	var doc *core.ScoreDocument
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, fmt.Errorf("%w: %w", ai.ErrConversionFailed, err)
		}

		if len(response.Choices) < 1 {
			lastErr = errors.New("no choices returned from model")
			continue
		}

		doc, err = decodeDocument(response.Choices[0].Content)
		if err != nil {
			lastErr = err
			c.logger.Warn("error parsing conversion response",
				"attempt", attempt+1,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		c.logger.Error("failed to parse conversion response after retries", "err", lastErr)
		return nil, fmt.Errorf("%w: %w", ai.ErrConversionFailed, lastErr)
	}

	if err := core.ValidateDocument(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrConversionFailed, err)
	}

	c.logger.Debug("conversion complete", "measures", len(doc.Measures))
	return doc, nil
}

// admit checks the file's extension and size against the accepted set and
// returns the MIME type to send.
func (c *Converter) admit(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := mimeTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ai.ErrUnsupportedFormat, ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > c.maxBytes {
		return "", fmt.Errorf("%w: file is %d bytes, limit is %d",
			ai.ErrUnsupportedFormat, info.Size(), c.maxBytes)
	}

	return mime, nil
}
