package config_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/maturity/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load()

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, "file")
				convey.So(cfg.MaxHistoryLimit, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MATURITY_ADDR", ":8080")
			_ = os.Setenv("MATURITY_STORE_BACKEND", "sqlite")
			_ = os.Setenv("MATURITY_DATA_DIR", "/var/lib/maturity")
			_ = os.Setenv("MATURITY_SUGGESTION_COUNT", "5")
			_ = os.Setenv("MATURITY_SUGGESTION_TIMEOUT", "5s")
			_ = os.Setenv("MATURITY_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, "sqlite")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/var/lib/maturity")
				convey.So(cfg.SuggestionCount, convey.ShouldEqual, 5)
				convey.So(cfg.SuggestionTimeout, convey.ShouldEqual, 5*time.Second)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
# local overrides
addr: ":9090"
store_backend: memory
framework_file: ./framework.yaml
max_history_limit: 25
genai_model: gemini-2.0-flash
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MATURITY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should load from YAML and keep defaults for the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, "memory")
				convey.So(cfg.FrameworkFile, convey.ShouldEqual, "./framework.yaml")
				convey.So(cfg.MaxHistoryLimit, convey.ShouldEqual, 25)
				convey.So(cfg.GenAIModel, convey.ShouldEqual, "gemini-2.0-flash")
				convey.So(cfg.SuggestionCount, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\nmax_history_limit: 25\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MATURITY_CONFIG", tmpFile)
			_ = os.Setenv("MATURITY_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxHistoryLimit, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When only GEMINI_API_KEY is set", func() {
			_ = os.Setenv("GEMINI_API_KEY", "from-gemini-env")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should be used as the API key", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.GenAIAPIKey, convey.ShouldEqual, "from-gemini-env")
			})
		})

		convey.Convey("When both API key variables are set", func() {
			_ = os.Setenv("GEMINI_API_KEY", "from-gemini-env")
			_ = os.Setenv("MATURITY_GENAI_API_KEY", "explicit")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then the prefixed one should win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.GenAIAPIKey, convey.ShouldEqual, "explicit")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MATURITY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MATURITY_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty addr in the file", func() {
			tmpFile := createTempConfigFile("addr: \"\"\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MATURITY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown backend", func() {
			_ = os.Setenv("MATURITY_STORE_BACKEND", "postgres")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When metrics settings come from the file and the environment", func() {
			tmpFile := createTempConfigFile(`
metrics_namespace: acme
metrics_subsystem: audit
metrics_prefix: v2
metrics_labels:
  env: staging
metrics_buckets: [1, 5, 25]
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MATURITY_CONFIG", tmpFile)
			_ = os.Setenv("MATURITY_METRICS_ENABLED", "false")
			_ = os.Setenv("MATURITY_METRICS_REFRESH_INTERVAL", "30s")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then every metrics key should be applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "acme")
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "audit")
				convey.So(cfg.MetricsPrefix, convey.ShouldEqual, "v2")
				convey.So(cfg.MetricsLabels, convey.ShouldResemble, map[string]string{"env": "staging"})
				convey.So(cfg.MetricsBuckets, convey.ShouldResemble, []float64{1, 5, 25})
				convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 30*time.Second)
			})
		})

		convey.Convey("When the metrics namespace is not a valid metric name", func() {
			_ = os.Setenv("MATURITY_METRICS_NAMESPACE", "my-app")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "metrics_namespace")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MATURITY_MAX_HISTORY_LIMIT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MATURITY_CONFIG",
		"MATURITY_ADDR",
		"MATURITY_STORE_BACKEND",
		"MATURITY_DATA_DIR",
		"MATURITY_SUGGESTION_COUNT",
		"MATURITY_SUGGESTION_TIMEOUT",
		"MATURITY_LOG_FORMAT",
		"MATURITY_GENAI_API_KEY",
		"MATURITY_MAX_HISTORY_LIMIT",
		"MATURITY_METRICS_ENABLED",
		"MATURITY_METRICS_NAMESPACE",
		"MATURITY_METRICS_REFRESH_INTERVAL",
		"GEMINI_API_KEY",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "maturity-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
