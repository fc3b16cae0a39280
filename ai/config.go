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


package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds configuration for the remote services. It is validated at
// startup and immutable afterwards; services never read ambient state at
// call time.
type Config struct {
	// SearchEndpoint is the base URL of the managed search datastore API.
	SearchEndpoint string

	// APIKey authenticates calls to the datastore.
	APIKey string

	// Project and Location identify the datastore's hosting project.
	// Location defaults to "global".
	Project  string
	Location string

	// DataStore is the datastore identifier to query.
	DataStore string

	// ConverterHost is the base URL of the OpenAI-compatible multimodal
	// service used for sheet conversion.
	// Example: "http://localhost:11434/v1"
	ConverterHost string

	// ConverterModel is the multimodal model identifier.
	ConverterModel string

	// MaxUploadBytes caps the size of sheet files accepted for conversion.
	// Default: 20 MiB.
	MaxUploadBytes int64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithSearchEndpoint sets the datastore API base URL.
func WithSearchEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.SearchEndpoint = endpoint
	}
}

// WithAPIKey sets the datastore API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithProject sets the hosting project identifier.
func WithProject(project string) ConfigOption {
	return func(c *Config) {
		c.Project = project
	}
}

// WithLocation sets the datastore location.
func WithLocation(location string) ConfigOption {
	return func(c *Config) {
		c.Location = location
	}
}

// WithDataStore sets the datastore identifier.
func WithDataStore(id string) ConfigOption {
	return func(c *Config) {
		c.DataStore = id
	}
}

// WithConverterHost sets the conversion service host URL.
func WithConverterHost(host string) ConfigOption {
	return func(c *Config) {
		c.ConverterHost = host
	}
}

// WithConverterModel sets the conversion model identifier.
func WithConverterModel(model string) ConfigOption {
	return func(c *Config) {
		c.ConverterModel = model
	}
}

// WithMaxUploadBytes sets the upload size cap.
func WithMaxUploadBytes(n int64) ConfigOption {
	return func(c *Config) {
		c.MaxUploadBytes = n
	}
}

// DefaultConfig returns a Config with sensible defaults. Credentials and
// datastore identifiers have no defaults and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		Location:       "global",
		ConverterHost:  "http://localhost:11434/v1",
		ConverterModel: "qwen2.5vl:7b",
		MaxUploadBytes: 20 << 20,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form: trailing
// slashes are trimmed and the converter host gets the /v1 suffix required
// by OpenAI-compatible APIs.
func (c *Config) Normalize() {
	c.SearchEndpoint = strings.TrimSuffix(c.SearchEndpoint, "/")
	if c.ConverterHost != "" && !strings.HasSuffix(c.ConverterHost, "/v1") {
		c.ConverterHost = strings.TrimSuffix(c.ConverterHost, "/")
		c.ConverterHost = c.ConverterHost + "/v1"
	}
	if c.Location == "" {
		c.Location = "global"
	}
}

// Validate checks that the configuration is valid and complete. Missing
// credentials or datastore identity fail with ErrAuth so misconfiguration
// surfaces at startup rather than on the first remote call.
func (c *Config) Validate() error {
	c.Normalize()

	if c.SearchEndpoint == "" {
		return errors.New("ai config: SearchEndpoint is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: ai config: APIKey is required", ErrAuth)
	}
	if c.Project == "" {
		return fmt.Errorf("%w: ai config: Project is required", ErrAuth)
	}
	if c.DataStore == "" {
		return fmt.Errorf("%w: ai config: DataStore is required", ErrAuth)
	}
	if c.ConverterHost == "" {
		return errors.New("ai config: ConverterHost is required")
	}
	if c.ConverterModel == "" {
		return errors.New("ai config: ConverterModel is required")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("ai config: MaxUploadBytes must be positive")
	}
	return nil
}
