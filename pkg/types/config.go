// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that call remote APIs.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Model calls are slow; the
	// default is generous.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retry attempts for failed calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// BackendName selects the language-model backend used by the generation stage.
type BackendName string

const (
	BackendOllama BackendName = "ollama"
	BackendClaude BackendName = "claude"
)

// GenerationConfig holds settings for the generation stage.
type GenerationConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Backend selects the model API: ollama or claude.
	Backend BackendName `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Model is the model identifier (e.g. "llama3.2").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// Host is the base URL of the Ollama server.
	Host string `json:"host" yaml:"host" mapstructure:"host"`

	// APIKey authenticates against the Claude API. Usually loaded from
	// .secrets/anthropic-api-key rather than the config file.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// ConvertConfig holds settings for decoding BRD files.
type ConvertConfig struct {
	// Container enables the markitdown container for formats the built-in
	// converters do not read (.doc, .pptx, .rtf, ...).
	Container bool `json:"container" yaml:"container" mapstructure:"container"`

	// Image is the markitdown container image.
	Image string `json:"image" yaml:"image" mapstructure:"image"`
}

// StoreConfig holds settings for the use-case store.
type StoreConfig struct {
	// Dir is the directory holding usecases.db and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Disabled skips persisting generated use cases.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// OutputFormat selects the rendered document format.
type OutputFormat string

const (
	FormatPDF  OutputFormat = "pdf"
	FormatText OutputFormat = "text"
)

// OutputConfig holds settings for writing rendered documents.
type OutputConfig struct {
	// Format is the default output format: pdf or text.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Path is the default output file (e.g. "use_case.pdf").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Convert    ConvertConfig    `json:"convert" yaml:"convert" mapstructure:"convert"`
	Geometry   PageGeometry     `json:"geometry" yaml:"geometry" mapstructure:"geometry"`
	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Output     OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
}

// DefaultPipelineConfig returns the configuration used when no config file
// or environment override is present.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Convert: ConvertConfig{
			Image: "markitdown:latest",
		},
		Geometry: DefaultPageGeometry(),
		Generation: GenerationConfig{
			HTTPConfig: HTTPConfig{
				Timeout:    5 * time.Minute,
				MaxRetries: 3,
			},
			Backend: BackendOllama,
			Model:   "llama3.2",
			Host:    "http://localhost:11434",
		},
		Store: StoreConfig{
			Dir: "usecases",
		},
		Output: OutputConfig{
			Format: FormatPDF,
			Path:   "use_case.pdf",
		},
	}
}
