package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/maturity/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.StoreBackend, convey.ShouldEqual, "file")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			convey.So(cfg.GenAIModel, convey.ShouldEqual, "gemini-2.5-flash")
			convey.So(cfg.SuggestionCount, convey.ShouldEqual, 3)
			convey.So(cfg.SuggestionTimeout, convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.MaxHistoryLimit, convey.ShouldEqual, 100)
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "maturity")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "framework")
			convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("When the store backend is unknown", func() {
			cfg.StoreBackend = "redis"

			convey.Convey("Then validation should fail with ErrInvalidConfig", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "redis")
			})
		})

		convey.Convey("When the backend is given in mixed case", func() {
			cfg.StoreBackend = "SQLite"

			convey.Convey("Then it should be accepted", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the history limit is not positive", func() {
			cfg.MaxHistoryLimit = 0

			convey.Convey("Then validation should fail", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the log format is unknown", func() {
			cfg.LogFormat = "xml"

			convey.Convey("Then validation should fail", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the metrics buckets are not increasing", func() {
			cfg.MetricsBuckets = []float64{5, 5, 10}

			convey.Convey("Then validation should fail", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When a metrics label name is reserved", func() {
			cfg.MetricsLabels = map[string]string{"__name": "x"}

			convey.Convey("Then validation should fail", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the metrics refresh interval is not positive", func() {
			cfg.MetricsRefreshInterval = 0

			convey.Convey("Then validation should fail", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the suggestion count is not positive", func() {
			cfg.SuggestionCount = -1

			convey.Convey("Then validation should fail", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})
	})
}
