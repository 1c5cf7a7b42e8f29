package rdb

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestObservableTranslator(registry prometheus.Registerer, tracing bool) (*ObservableTranslator, error) {
	return NewObservableTranslatorWithOptions(&ObservableTranslatorOptions{
		EnableMetrics: true,
		EnableLogging: true,
		EnableTracing: tracing,
		Name:          "test",
		Registerer:    registry,
	})
}

func TestObservableTranslator(t *testing.T) {
	Convey("测试 ObservableTranslator", t, func() {
		registry := prometheus.NewRegistry()
		obs, err := newTestObservableTranslator(registry, true)
		So(err, ShouldBeNil)
		plain := NewTranslator()

		Convey("生成的语句与 Translator 一致", func() {
			for _, r := range []any{Item{}, PlainItem{}, &Order{}, Empty{}} {
				want, err := plain.CreateTable(r)
				So(err, ShouldBeNil)
				got, err := obs.CreateTable(r)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, want)

				So(obs.InsertTable(r), ShouldEqual, plain.InsertTable(r))
				So(obs.DeleteTable(r), ShouldEqual, plain.DeleteTable(r))
				So(obs.SelectTable(r), ShouldEqual, plain.SelectTable(r))
				So(obs.UpdateTable(r), ShouldEqual, plain.UpdateTable(r))
				So(obs.DeleteByIDTable(r), ShouldEqual, plain.DeleteByIDTable(r))
				So(obs.SelectByIDTable(r), ShouldEqual, plain.SelectByIDTable(r))
				So(obs.UpdateByIDTable(r), ShouldEqual, plain.UpdateByIDTable(r))
				So(obs.SelectAllTable(r), ShouldEqual, plain.SelectAllTable(r))
				So(obs.DropTable(r), ShouldEqual, plain.DropTable(r))
			}
		})

		Convey("统计成功和失败的次数", func() {
			_, _ = obs.CreateTable(Item{})
			_, _ = obs.WithContext(context.Background()).CreateTable(Item{})
			_, err := obs.CreateTable(Broken{})
			So(err, ShouldNotBeNil)
			obs.DropTable(Item{})

			counter := obs.metrics.statementCounter
			So(testutil.ToFloat64(counter.WithLabelValues("create", "success")), ShouldEqual, 2)
			So(testutil.ToFloat64(counter.WithLabelValues("create", "error")), ShouldEqual, 1)
			So(testutil.ToFloat64(counter.WithLabelValues("drop", "success")), ShouldEqual, 1)
		})

		Convey("同名指标复用已注册的 collector", func() {
			other, err := newTestObservableTranslator(registry, false)
			So(err, ShouldBeNil)
			other.DropTable(Item{})
			obs.DropTable(Item{})
			So(testutil.ToFloat64(obs.metrics.statementCounter.WithLabelValues("drop", "success")), ShouldEqual, 2)
		})
	})
}

func TestObservableTranslator_Disabled(t *testing.T) {
	Convey("关闭指标和日志", t, func() {
		obs, err := NewObservableTranslatorWithOptions(&ObservableTranslatorOptions{})
		So(err, ShouldBeNil)
		So(obs.metrics, ShouldBeNil)
		So(obs.logger, ShouldBeNil)
		So(obs.SelectByIDTable(Item{}), ShouldEqual, "SELECT * FROM Item WHERE id = ?")

		_, err = NewObservableTranslatorWithOptions(nil)
		So(err, ShouldNotBeNil)
	})
}
