package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/whitestar/lifeboat/internal/adapters/artifact"
	service "github.com/whitestar/lifeboat/internal/app"
	"github.com/whitestar/lifeboat/internal/domain/model"
	"github.com/whitestar/lifeboat/internal/domain/passenger"
	"github.com/whitestar/lifeboat/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// labelOnlyStub answers a fixed class for every row and exposes no
// probabilities.
type labelOnlyStub struct {
	label int
}

func (s labelOnlyStub) Predict(_ context.Context, rows [][]float64) ([]int, error) {
	out := make([]int, len(rows))
	for i := range out {
		out[i] = s.label
	}
	return out, nil
}

func validRaw() passenger.Raw {
	return passenger.Raw{
		Class:           "3",
		Sex:             "0",
		Age:             "22",
		SiblingsSpouses: "1",
		ParentsChildren: "0",
		Fare:            "7.25",
		EmbarkationPort: "0",
	}
}

func writeTempArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["model_path"], ShouldEqual, "model.json")
			So(stats["fallback_confidence"], ShouldEqual, 0.8)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithModelPath("artifacts/tree.json"),
			service.WithFallbackConfidence(0.6),
		)

		Convey("Then the options should be applied", func() {
			stats := svc.GetStats()
			So(stats["model_path"], ShouldEqual, "artifacts/tree.json")
			So(stats["fallback_confidence"], ShouldEqual, 0.6)
		})
	})

	Convey("Given options with invalid values", t, func() {
		svc := service.New(
			service.WithModelPath(""),
			service.WithFallbackConfidence(1.5),
		)

		Convey("Then the defaults should be kept", func() {
			stats := svc.GetStats()
			So(stats["model_path"], ShouldEqual, "model.json")
			So(stats["fallback_confidence"], ShouldEqual, 0.8)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service with an injected model", t, func() {
		svc := service.New(service.WithModel("stub", labelOnlyStub{label: model.ClassSurvived}))
		// Ensure service is stopped after test
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				So(svc.Ready(), ShouldBeTrue)
			})

			Convey("And it should report the injected model", func() {
				kind, capable := svc.ModelInfo()
				So(kind, ShouldEqual, "stub")
				So(capable, ShouldBeFalse)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a service pointed at a missing artifact", t, func() {
		svc := service.New(
			service.WithModelPath(filepath.Join(t.TempDir(), "absent.json")),
		)

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should fail as model unavailable", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, artifact.ErrUnavailable), ShouldBeTrue)
				So(svc.Ready(), ShouldBeFalse)
			})
		})
	})

	Convey("Given a service pointed at a corrupt artifact", t, func() {
		path := writeTempArtifact(t, `{"kind":"decision_tree","feature_count":2}`)
		svc := service.New(service.WithModelPath(path))

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should fail as model corrupt", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, artifact.ErrCorrupt), ShouldBeTrue)
				So(svc.Ready(), ShouldBeFalse)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithModel("stub", labelOnlyStub{label: model.ClassSurvived}))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
				So(svc.Ready(), ShouldBeFalse)
			})

			Convey("And stopping again should be safe", func() {
				So(svc.Stop, ShouldNotPanic)
			})

			Convey("And predicting should be refused", func() {
				_, err := svc.Predict(ctx, validRaw())
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}

func TestService_PredictBeforeStart(t *testing.T) {
	Convey("Given an unstarted service", t, func() {
		svc := service.New()

		Convey("When predicting", func() {
			_, err := svc.Predict(context.Background(), validRaw())

			Convey("Then it should refuse", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()

		Convey("When getting stats before starting", func() {
			stats := svc.GetStats()

			Convey("Then it should return basic stats", func() {
				So(stats, ShouldNotBeNil)
				So(stats["started"], ShouldEqual, false)
				So(stats, ShouldNotContainKey, "predictions")
			})
		})
	})

	Convey("Given a started service", t, func() {
		svc := service.New(service.WithModel("stub", labelOnlyStub{label: model.ClassSurvived}))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		// Ensure service is stopped after test
		defer svc.Stop()

		Convey("When getting stats after a prediction", func() {
			_, err := svc.Predict(ctx, validRaw())
			So(err, ShouldBeNil)
			stats := svc.GetStats()

			Convey("Then it should include counters and model info", func() {
				So(stats["started"], ShouldEqual, true)
				So(stats["predictions"], ShouldEqual, int64(1))
				So(stats["survived"], ShouldEqual, int64(1))
				So(stats["did_not_survive"], ShouldEqual, int64(0))
				So(stats["model"], ShouldNotBeNil)
			})
		})
	})
}
