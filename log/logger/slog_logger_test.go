package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hatlonely/beansql/log/writer"
	"github.com/hatlonely/beansql/ref"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSLog(t *testing.T) {
	Convey("测试 SLog", t, func() {
		Convey("按级别过滤", func() {
			var buf bytes.Buffer
			l, err := NewSLogWithWriter(&buf, "warn")
			So(err, ShouldBeNil)

			l.Info("hidden")
			l.Warn("shown", "key", "value")
			l.ErrorContext(context.Background(), "failed")
			So(buf.String(), ShouldNotContainSubstring, "hidden")
			So(buf.String(), ShouldContainSubstring, "msg=shown key=value")
			So(buf.String(), ShouldContainSubstring, "msg=failed")
		})

		Convey("With 和 WithGroup", func() {
			var buf bytes.Buffer
			l, err := NewSLogWithWriter(&buf, "debug")
			So(err, ShouldBeNil)

			l.With("table", "Item").WithGroup("sql").Debug("generated", "kind", "create")
			So(buf.String(), ShouldContainSubstring, "table=Item")
			So(buf.String(), ShouldContainSubstring, "sql.kind=create")
		})

		Convey("非法的级别和格式", func() {
			_, err := NewSLogWithWriter(&bytes.Buffer{}, "verbose")
			So(err, ShouldNotBeNil)
			_, err = NewSLogWithOptions(&SLogOptions{Format: "xml"})
			So(err, ShouldNotBeNil)
			_, err = NewSLogWithOptions(nil)
			So(err, ShouldNotBeNil)
		})

		Convey("通过 ref 创建文件输出的 json 日志", func() {
			path := filepath.Join(t.TempDir(), "app.log")
			l, err := NewSLogWithOptions(&SLogOptions{
				Level:  "info",
				Format: "json",
				Output: &ref.TypeOptions{
					Namespace: "github.com/hatlonely/beansql/log/writer",
					Type:      "FileWriter",
					Options:   &writer.FileWriterOptions{Path: path},
				},
				TimeFormat: "2006-01-02",
				Fields:     map[string]any{"app": "beansql"},
			})
			So(err, ShouldBeNil)
			l.Info("started", "tables", 3)

			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			var entry map[string]any
			So(json.Unmarshal(data, &entry), ShouldBeNil)
			So(entry["msg"], ShouldEqual, "started")
			So(entry["app"], ShouldEqual, "beansql")
			So(entry["tables"], ShouldEqual, float64(3))
			So(entry["time"], ShouldHaveLength, 10)
		})
	})
}
