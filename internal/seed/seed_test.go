package seed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/maturity/internal/adapters/http/api"
	service "github.com/okian/maturity/internal/app"
	"github.com/okian/maturity/internal/domain/framework"
	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/pkg/logger"
)

func newServer(svc *service.Service) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(svc).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestRun(t *testing.T) {
	Convey("Given a running server with the default framework", t, func() {
		So(logger.Init(logger.WithOutput(io.Discard)), ShouldBeNil)
		svc := service.New(service.WithLogger(logger.Nop()))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		srv := newServer(svc)
		defer srv.Close()

		Convey("When seeding three assessments", func() {
			stats, err := Run(context.Background(), Config{BaseURL: srv.URL, Count: 3, Seed: 7, Timeout: 5 * time.Second})

			Convey("Then all should be recorded and verified", func() {
				So(err, ShouldBeNil)
				So(stats.Submitted, ShouldEqual, 3)
				So(stats.Successful, ShouldEqual, 3)
				So(stats.Failed, ShouldEqual, 0)

				history, err := svc.History(0)
				So(err, ShouldBeNil)
				So(history, ShouldHaveLength, 3)
				So(history[2].Score, ShouldAlmostEqual, stats.LastScore, 1e-9)
			})

			Convey("And a second run should extend the trend", func() {
				_, err := Run(context.Background(), Config{BaseURL: srv.URL, Count: 2, Seed: 8})
				So(err, ShouldBeNil)
				history, _ := svc.History(0)
				So(history, ShouldHaveLength, 5)
			})
		})
	})

	Convey("Given a framework without elements", t, func() {
		So(logger.Init(logger.WithOutput(io.Discard)), ShouldBeNil)
		svc := service.New(service.WithLogger(logger.Nop()))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		So(svc.ReplaceFramework(context.Background(), []model.Dimension{}), ShouldBeNil)
		srv := newServer(svc)
		defer srv.Close()

		Convey("Then the run should stop before submitting", func() {
			stats, err := Run(context.Background(), Config{BaseURL: srv.URL})
			So(errors.Is(err, ErrEmptyFramework), ShouldBeTrue)
			So(stats.Submitted, ShouldEqual, 0)
		})
	})

	Convey("Given an unhealthy server", t, func() {
		So(logger.Init(logger.WithOutput(io.Discard)), ShouldBeNil)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		Convey("Then the run should fail the health check", func() {
			_, err := Run(context.Background(), Config{BaseURL: srv.URL})
			So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
		})
	})
}

func TestGenerator(t *testing.T) {
	Convey("Given two generators with the same seed", t, func() {
		dims := framework.Default()
		a, b := NewGenerator(42), NewGenerator(42)

		Convey("Then they should produce the same scores", func() {
			So(a.Scores(dims), ShouldResemble, b.Scores(dims))
		})

		Convey("And every element should get a whole score in range", func() {
			scores := a.Scores(dims)
			So(scores, ShouldHaveLength, 12)
			for _, v := range scores {
				So(v, ShouldBeBetweenOrEqual, 0, 100)
				So(v, ShouldEqual, float64(int(v)))
			}
		})
	})
}
