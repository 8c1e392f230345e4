package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/maturity/internal/adapters/suggest"
	"github.com/okian/maturity/internal/config"
	"github.com/okian/maturity/internal/domain/framework"
	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/pkg/logger"
	"github.com/okian/maturity/pkg/metrics"
)

func run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		_ = os.Setenv(k, v)
	}
	t.Cleanup(func() {
		for k := range kv {
			_ = os.Unsetenv(k)
		}
		_ = os.Unsetenv(config.EnvConfigFile)
	})
}

func TestFrameworkCommand(t *testing.T) {
	convey.Convey("Given a memory store", t, func() {
		setEnv(t, map[string]string{"MATURITY_STORE_BACKEND": "memory"})

		convey.Convey("When printing the framework", func() {
			out, err := run("framework")

			convey.Convey("Then the default framework should be printed as YAML", func() {
				convey.So(err, convey.ShouldBeNil)
				dims, err := framework.Parse([]byte(out))
				convey.So(err, convey.ShouldBeNil)
				convey.So(dims, convey.ShouldHaveLength, 5)
				convey.So(dims[0].Name, convey.ShouldEqual, "Digital Services")
			})
		})
	})

	convey.Convey("Given a config file seeding a custom framework", t, func() {
		dir := t.TempDir()
		fwPath := filepath.Join(dir, "framework.yaml")
		cfgPath := filepath.Join(dir, "config.yaml")
		convey.So(os.WriteFile(fwPath, []byte(`dimensions:
  - name: Security
    weight: 100
    elements:
      - name: Patching
        weight: 100
`), 0o600), convey.ShouldBeNil)
		convey.So(os.WriteFile(cfgPath, []byte("store_backend: memory\nframework_file: "+fwPath+"\n"), 0o600),
			convey.ShouldBeNil)
		setEnv(t, map[string]string{})

		convey.Convey("When printing the framework with --config", func() {
			out, err := run("--config", cfgPath, "framework")

			convey.Convey("Then the seeded framework should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Security")
				convey.So(out, convey.ShouldContainSubstring, "Patching")
				convey.So(out, convey.ShouldNotContainSubstring, "Digital Services")
			})
		})
	})

	convey.Convey("Given an invalid store backend", t, func() {
		setEnv(t, map[string]string{"MATURITY_STORE_BACKEND": "tape"})

		convey.Convey("Then the command should fail", func() {
			_, err := run("framework")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestHistoryCommand(t *testing.T) {
	convey.Convey("Given a file store in a temporary directory", t, func() {
		dir := t.TempDir()
		setEnv(t, map[string]string{"MATURITY_STORE_BACKEND": "file", "MATURITY_DATA_DIR": dir})

		convey.Convey("When no assessments are recorded", func() {
			out, err := run("history")

			convey.Convey("Then a notice should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "no assessments recorded")
			})
		})

		convey.Convey("When two assessments were saved by an earlier run", func() {
			cfg, err := config.Load()
			convey.So(err, convey.ShouldBeNil)
			convey.So(logger.Init(logger.WithOutput(io.Discard)), convey.ShouldBeNil)

			svc, err := newService(context.Background(), cfg, suggest.Placeholder{})
			convey.So(err, convey.ShouldBeNil)
			for _, score := range []float64{70, 85.5} {
				_, err := svc.SaveAssessment(context.Background(), []model.Dimension{{
					ID: "d", Name: "Only", Weight: 100,
					Elements: []model.Element{{ID: "e", Name: "Only", Weight: 100, Score: score}},
				}})
				convey.So(err, convey.ShouldBeNil)
			}
			svc.Stop()

			out, err := run("history")

			convey.Convey("Then both should be listed oldest first", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "SCORE")
				convey.So(strings.Index(out, "70.00"), convey.ShouldBeLessThan, strings.Index(out, "85.50"))
			})

			convey.Convey("And --limit should keep only the latest", func() {
				out, err := run("history", "--limit", "1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "85.50")
				convey.So(out, convey.ShouldNotContainSubstring, "70.00")
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given a started service behind the full mux", t, func() {
		convey.So(logger.Init(logger.WithOutput(io.Discard)), convey.ShouldBeNil)
		cfg := config.New()
		cfg.StoreBackend = "memory"

		svc, err := newService(context.Background(), cfg, suggest.Placeholder{})
		convey.So(err, convey.ShouldBeNil)
		defer svc.Stop()

		mux := newMux(context.Background(), cfg, svc)
		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", path, http.NoBody))
			return w
		}

		convey.Convey("Then the API, docs and UI should all be routed", func() {
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/framework").Header().Get("Content-Type"), convey.ShouldContainSubstring, "application/json")
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)

			root := get("/")
			convey.So(root.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(root.Body.String(), convey.ShouldContainSubstring, "Maturity Assessment")
		})
	})
}

func TestSetupMetrics(t *testing.T) {
	convey.Convey("Given metrics settings in the environment", t, func() {
		setEnv(t, map[string]string{
			"MATURITY_STORE_BACKEND":            "memory",
			"MATURITY_METRICS_NAMESPACE":        "acme",
			"MATURITY_METRICS_REFRESH_INTERVAL": "3s",
		})
		defer metrics.Configure()

		cfg, err := setup()
		convey.So(err, convey.ShouldBeNil)
		convey.So(logger.Init(logger.WithOutput(io.Discard)), convey.ShouldBeNil)

		svc, err := newService(context.Background(), cfg, suggest.Placeholder{})
		convey.So(err, convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("When scraping /healthz", func() {
			w := httptest.NewRecorder()
			newMux(context.Background(), cfg, svc).ServeHTTP(w, httptest.NewRequest("GET", "/healthz", http.NoBody))

			convey.Convey("Then series should use the configured namespace", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "acme_framework_dimensions 5")
				convey.So(w.Body.String(), convey.ShouldNotContainSubstring, "maturity_framework_")
				convey.So(metrics.RefreshInterval(), convey.ShouldEqual, 3*time.Second)
			})
		})
	})
}

func TestPrintHistory(t *testing.T) {
	convey.Convey("Given history points", t, func() {
		var buf bytes.Buffer
		err := printHistory(&buf, []model.HistoryPoint{{Date: "2026-01-02T00:00:00Z", Score: 42.126}})

		convey.Convey("Then a table should be written", func() {
			convey.So(err, convey.ShouldBeNil)
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			convey.So(lines, convey.ShouldHaveLength, 2)
			convey.So(lines[1], convey.ShouldContainSubstring, "2026-01-02T00:00:00Z")
			convey.So(lines[1], convey.ShouldContainSubstring, "42.13")
		})
	})
}

func TestSeedCommand(t *testing.T) {
	convey.Convey("Given a server on a random port", t, func() {
		convey.So(logger.Init(logger.WithOutput(io.Discard)), convey.ShouldBeNil)
		cfg := config.New()
		cfg.StoreBackend = "memory"
		svc, err := newService(context.Background(), cfg, suggest.Placeholder{})
		convey.So(err, convey.ShouldBeNil)
		defer svc.Stop()
		srv := httptest.NewServer(newMux(context.Background(), cfg, svc))
		defer srv.Close()
		setEnv(t, map[string]string{"MATURITY_STORE_BACKEND": "memory"})

		convey.Convey("When seeding through the CLI", func() {
			out, err := run("seed", "--url", srv.URL, "-n", "2", "--seed", "3")

			convey.Convey("Then a summary should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "submitted 2, recorded 2, failed 0")
			})
		})
	})

	convey.Convey("Given listen addresses", t, func() {
		convey.So(localURL(":9080"), convey.ShouldEqual, "http://localhost:9080")
		convey.So(localURL("0.0.0.0:80"), convey.ShouldEqual, "http://0.0.0.0:80")
	})
}
