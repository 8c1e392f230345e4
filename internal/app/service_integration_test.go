package service_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/maturity/internal/adapters/repository"
	service "github.com/okian/maturity/internal/app"
	"github.com/okian/maturity/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration_Persistence(t *testing.T) {
	for _, backend := range []string{repository.BackendFile, repository.BackendSQLite} {
		Convey("Given a service persisting to the "+backend+" backend", t, func() {
			ctx := context.Background()
			dir := filepath.Join(t.TempDir(), "data")

			open := func() *service.Service {
				st, err := repository.Open(ctx, backend, dir)
				So(err, ShouldBeNil)
				return newStarted(service.WithStore(st))
			}

			first := open()
			_, err := first.AddDimension(ctx, "Cybersecurity")
			So(err, ShouldBeNil)
			So(first.DeleteElement(ctx, "dim-1", "el-1-3"), ShouldBeNil)
			saved, err := first.ScoreAssessment(ctx, map[string]float64{"el-1-1": 90, "el-2-1": 40})
			So(err, ShouldBeNil)
			wantFramework, _ := first.Framework()
			first.Stop()

			Convey("When a new service starts on the same data", func() {
				second := open()
				defer second.Stop()

				Convey("Then the framework should be restored", func() {
					got, err := second.Framework()
					So(err, ShouldBeNil)
					So(cmp.Diff(wantFramework, got), ShouldBeEmpty)
				})

				Convey("And the history should be restored unchanged", func() {
					list, err := second.Assessments()
					So(err, ShouldBeNil)
					So(list, ShouldHaveLength, 1)
					So(cmp.Diff(saved, list[0]), ShouldBeEmpty)
				})
			})
		})
	}
}

func TestServiceIntegration_CorruptState(t *testing.T) {
	Convey("Given persisted data that cannot be parsed", t, func() {
		ctx := context.Background()
		st := repository.NewMemoryStore()
		So(st.Put(ctx, repository.KeyFramework, []byte(`{not json`)), ShouldBeNil)
		So(st.Put(ctx, repository.KeyAssessments, []byte(`"oops"`)), ShouldBeNil)

		svc := newStarted(service.WithStore(st))
		defer svc.Stop()

		Convey("Then the service should fall back to defaults and an empty history", func() {
			dims, err := svc.Framework()
			So(err, ShouldBeNil)
			So(dims, ShouldHaveLength, 5)
			list, _ := svc.Assessments()
			So(list, ShouldBeEmpty)
		})
	})

	Convey("Given a persisted empty framework", t, func() {
		ctx := context.Background()
		st := repository.NewMemoryStore()
		So(st.Put(ctx, repository.KeyFramework, []byte(`[]`)), ShouldBeNil)

		svc := newStarted(service.WithStore(st))
		defer svc.Stop()

		Convey("Then the empty framework should be kept", func() {
			dims, err := svc.Framework()
			So(err, ShouldBeNil)
			So(dims, ShouldBeEmpty)
		})
	})
}

func TestServiceIntegration_StoredShape(t *testing.T) {
	Convey("Given a service backed by a memory store", t, func() {
		ctx := context.Background()
		st := repository.NewMemoryStore()
		svc := newStarted(service.WithStore(st))
		defer svc.Stop()

		_, err := svc.SaveAssessment(ctx, []model.Dimension{{
			ID: "d", Name: "Only", Weight: 100,
			Elements: []model.Element{{ID: "e", Name: "Only", Weight: 100, Score: 70}},
		}})
		So(err, ShouldBeNil)

		Convey("Then the history should be stored as a JSON array with camelCase scores", func() {
			b, err := st.Get(ctx, repository.KeyAssessments)
			So(err, ShouldBeNil)
			var raw []map[string]any
			So(json.Unmarshal(b, &raw), ShouldBeNil)
			So(raw, ShouldHaveLength, 1)
			So(raw[0]["overallScore"], ShouldEqual, 70)
			So(raw[0]["id"], ShouldEqual, "asm-1")
		})
	})
}
