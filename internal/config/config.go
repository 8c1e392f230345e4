// Package config defines service configuration and its loading layers.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// StoreBackend selects persistence: file, sqlite or memory.
	StoreBackend string `koanf:"store_backend"`

	// DataDir holds the file store documents and the sqlite database.
	DataDir string `koanf:"data_dir"`

	// FrameworkFile optionally seeds the framework from YAML when nothing is persisted.
	FrameworkFile string `koanf:"framework_file"`

	// GenAIAPIKey enables AI suggestions. Empty means placeholder suggestions.
	GenAIAPIKey string `koanf:"genai_api_key"`

	// GenAIModel names the model used for suggestions.
	GenAIModel string `koanf:"genai_model"`

	// SuggestionCount is how many elements to ask for per request.
	SuggestionCount int `koanf:"suggestion_count"`

	// SuggestionTimeout bounds a single suggestion request.
	SuggestionTimeout time.Duration `koanf:"suggestion_timeout"`

	// MaxHistoryLimit caps GET /assessments/history?limit.
	MaxHistoryLimit int `koanf:"max_history_limit"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace and MetricsSubsystem form the series name prefix,
	// e.g. maturity_framework_dimensions.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsPrefix is optionally inserted before each metric name.
	MetricsPrefix string `koanf:"metrics_prefix"`

	// MetricsLabels are constant labels added to every series.
	MetricsLabels map[string]string `koanf:"metrics_labels"`

	// MetricsBuckets overrides the latency histogram buckets, in milliseconds.
	MetricsBuckets []float64 `koanf:"metrics_buckets"`

	// MetricsRefreshInterval is how often serve refreshes the gauges.
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		StoreBackend:      "file",
		DataDir:           "data",
		GenAIModel:        "gemini-2.5-flash",
		SuggestionCount:   3,
		SuggestionTimeout: 30 * time.Second,
		MaxHistoryLimit:   100,

		MetricsEnabled:         true,
		MetricsNamespace:       "maturity",
		MetricsSubsystem:       "framework",
		MetricsRefreshInterval: 10 * time.Second,
	}
}
