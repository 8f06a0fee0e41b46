package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/whitestar/lifeboat/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9480")
			convey.So(cfg.ModelPath, convey.ShouldEqual, "model.json")
			convey.So(cfg.FallbackConfidence, convey.ShouldEqual, 0.8)
			convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 1<<20)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a config", t, func() {
		ctx := context.Background()

		convey.Convey("When the defaults are untouched", func() {
			cfg := config.New(ctx)

			convey.Convey("Then validation should pass", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When addr is empty", func() {
			cfg := config.New(ctx)
			cfg.Addr = ""

			convey.Convey("Then validation should fail with the invalid kind", func() {
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When model_path is empty", func() {
			cfg := config.New(ctx)
			cfg.ModelPath = ""

			convey.Convey("Then validation should fail", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "model_path")
			})
		})

		convey.Convey("When fallback_confidence is below zero", func() {
			cfg := config.New(ctx)
			cfg.FallbackConfidence = -0.1

			convey.Convey("Then validation should fail", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "fallback_confidence")
			})
		})

		convey.Convey("When fallback_confidence is above one", func() {
			cfg := config.New(ctx)
			cfg.FallbackConfidence = 1.1

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When fallback_confidence sits on a boundary", func() {
			low := config.New(ctx)
			low.FallbackConfidence = 0
			high := config.New(ctx)
			high.FallbackConfidence = 1

			convey.Convey("Then validation should pass for both bounds", func() {
				convey.So(low.Validate(), convey.ShouldBeNil)
				convey.So(high.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When max_body_bytes is non-positive", func() {
			cfg := config.New(ctx)
			cfg.MaxBodyBytes = 0

			convey.Convey("Then validation should fail", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "max_body_bytes")
			})
		})
	})
}
