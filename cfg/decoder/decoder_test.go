package decoder

import (
	"testing"

	"github.com/hatlonely/beansql/ref"
	. "github.com/smartystreets/goconvey/convey"
)

type testField struct {
	Name string `cfg:"name"`
	Type string `cfg:"type"`
	Key  string `cfg:"key"`
}

type testTable struct {
	Name   string      `cfg:"name"`
	Fields []testField `cfg:"fields"`
}

type testFile struct {
	Tables []testTable `cfg:"tables"`
}

var wantFile = testFile{Tables: []testTable{{
	Name: "Item",
	Fields: []testField{
		{Name: "id", Type: "int", Key: "primary"},
		{Name: "name", Type: "string"},
	},
}}}

func TestDecoders(t *testing.T) {
	Convey("各种格式解码为相同的结构", t, func() {
		cases := []struct {
			name    string
			decoder Decoder
			data    string
		}{
			{"yaml", NewYamlDecoderWithOptions(nil), `
tables:
  - name: Item
    fields:
      - { name: id, type: int, key: primary }
      - { name: name, type: string }
`},
			{"toml", NewTomlDecoderWithOptions(nil), `
[[tables]]
name = "Item"

[[tables.fields]]
name = "id"
type = "int"
key = "primary"

[[tables.fields]]
name = "name"
type = "string"
`},
			{"json", NewJsonDecoderWithOptions(nil), `{"tables": [{"name": "Item", "fields": [
  {"name": "id", "type": "int", "key": "primary"},
  {"name": "name", "type": "string"}
]}]}`},
			{"json5", NewJsonDecoderWithOptions(&JsonDecoderOptions{UseJSON5: true}), `{
  // 表定义
  "tables": [{
    "name": "Item", /* 商品 */
    "fields": [
      {"name": "id", "type": "int", "key": "primary"},
      {"name": "name", "type": "string"},
    ],
  }],
}`},
		}

		for _, c := range cases {
			Convey(c.name, func() {
				s, err := c.decoder.Decode([]byte(c.data))
				So(err, ShouldBeNil)

				var file testFile
				So(s.ConvertTo(&file), ShouldBeNil)
				So(file, ShouldResemble, wantFile)
			})
		}
	})
}

func TestJsonDecoder_StringsKeepComments(t *testing.T) {
	Convey("字符串中的注释符号保持不变", t, func() {
		d := NewJsonDecoderWithOptions(&JsonDecoderOptions{UseJSON5: true})
		s, err := d.Decode([]byte(`{"url": "http://example.com/*x*/", "quote": "a \" // b", "list": [1, 2,]}`))
		So(err, ShouldBeNil)

		var v struct {
			URL   string `cfg:"url"`
			Quote string `cfg:"quote"`
			List  []int  `cfg:"list"`
		}
		So(s.ConvertTo(&v), ShouldBeNil)
		So(v.URL, ShouldEqual, "http://example.com/*x*/")
		So(v.Quote, ShouldEqual, `a " // b`)
		So(v.List, ShouldResemble, []int{1, 2})
	})
}

func TestIniDecoder(t *testing.T) {
	Convey("测试 IniDecoder", t, func() {
		d := NewIniDecoderWithOptions(nil)
		s, err := d.Decode([]byte(`
schema = tables.yaml
statements = create,insert
watch = true
retries = 3

[logger]
type = SLog

[logger.options]
level = debug
`))
		So(err, ShouldBeNil)

		var v struct {
			Schema     string   `cfg:"schema"`
			Statements []string `cfg:"statements"`
			Watch      bool     `cfg:"watch"`
			Retries    int      `cfg:"retries"`
			Logger     struct {
				Type    string `cfg:"type"`
				Options struct {
					Level string `cfg:"level"`
				} `cfg:"options"`
			} `cfg:"logger"`
		}
		So(s.ConvertTo(&v), ShouldBeNil)
		So(v.Schema, ShouldEqual, "tables.yaml")
		So(v.Statements, ShouldResemble, []string{"create", "insert"})
		So(v.Watch, ShouldBeTrue)
		So(v.Retries, ShouldEqual, 3)
		So(v.Logger.Type, ShouldEqual, "SLog")
		So(v.Logger.Options.Level, ShouldEqual, "debug")
	})
}

func TestDecodeErrors(t *testing.T) {
	Convey("非法数据返回错误", t, func() {
		for _, d := range []Decoder{
			NewYamlDecoderWithOptions(nil),
			NewTomlDecoderWithOptions(nil),
			NewJsonDecoderWithOptions(nil),
		} {
			_, err := d.Decode([]byte("{[ invalid"))
			So(err, ShouldNotBeNil)
		}
	})
}

func TestNewDecoderWithOptions(t *testing.T) {
	Convey("通过 ref 创建解码器", t, func() {
		d, err := NewDecoderWithOptions(&ref.TypeOptions{
			Namespace: "github.com/hatlonely/beansql/cfg/decoder",
			Type:      "YamlDecoder",
		})
		So(err, ShouldBeNil)
		So(d, ShouldHaveSameTypeAs, &YamlDecoder{})

		_, err = NewDecoderWithOptions(nil)
		So(err, ShouldNotBeNil)
		_, err = NewDecoderWithOptions(&ref.TypeOptions{Namespace: "x", Type: "y"})
		So(err, ShouldNotBeNil)
	})
}
