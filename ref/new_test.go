package ref

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

type widgetOptions struct {
	Name string
	Size int
}

type Widget struct {
	name string
	size int
}

func NewWidgetWithOptions(options *widgetOptions) *Widget {
	return &Widget{name: options.Name, size: options.Size}
}

type Gauge struct{}

func NewGauge() (*Gauge, error) {
	return &Gauge{}, nil
}

func NewFailing(options widgetOptions) (*Gauge, error) {
	return nil, errors.Errorf("cannot create %s", options.Name)
}

// mapConvertable 模拟 cfg 中的 Storage
type mapConvertable map[string]any

func (m mapConvertable) ConvertTo(object any) error {
	o, ok := object.(*widgetOptions)
	if !ok {
		return errors.Errorf("unexpected type %T", object)
	}
	o.Name, _ = m["name"].(string)
	o.Size, _ = m["size"].(int)
	return nil
}

func TestRegisterAndNew(t *testing.T) {
	Convey("测试 Register 和 New", t, func() {
		So(RegisterT[Widget](NewWidgetWithOptions), ShouldBeNil)
		So(RegisterT[*Gauge](NewGauge), ShouldBeNil)
		So(Register("test", "Failing", NewFailing), ShouldBeNil)

		Convey("重复注册同一个函数是安全的", func() {
			So(RegisterT[Widget](NewWidgetWithOptions), ShouldBeNil)
			So(RegisterT[Widget](NewGauge), ShouldNotBeNil)
		})

		Convey("直接传入参数", func() {
			obj, err := New("github.com/hatlonely/beansql/ref", "Widget", &widgetOptions{Name: "a", Size: 1})
			So(err, ShouldBeNil)
			So(obj.(*Widget).name, ShouldEqual, "a")
		})

		Convey("通过 Convertable 转换参数", func() {
			w, err := NewT[*Widget](mapConvertable{"name": "b", "size": 2})
			So(err, ShouldBeNil)
			So(w.size, ShouldEqual, 2)
		})

		Convey("nil 参数使用零值", func() {
			w, err := NewT[*Widget](nil)
			So(err, ShouldBeNil)
			So(w.name, ShouldBeEmpty)

			g, err := NewT[*Gauge](nil)
			So(err, ShouldBeNil)
			So(g, ShouldNotBeNil)
		})

		Convey("构造函数返回的错误", func() {
			_, err := New("test", "Failing", widgetOptions{Name: "c"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "cannot create c")
		})

		Convey("参数类型不匹配", func() {
			_, err := New("test", "Failing", "string")
			So(err, ShouldNotBeNil)
		})

		Convey("未注册的类型", func() {
			_, err := New("test", "Missing", nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRegisterInvalidConstructor(t *testing.T) {
	Convey("非法的构造函数", t, func() {
		So(Register("test", "NotFunc", 1), ShouldNotBeNil)
		So(Register("test", "TooManyArgs", func(a, b int) int { return a + b }), ShouldNotBeNil)
		So(Register("test", "BadReturn", func() (int, int) { return 1, 2 }), ShouldNotBeNil)
		So(func() { MustRegister("test", "NotFunc", 1) }, ShouldPanic)
	})
}
