package serializer

import (
	"testing"

	"github.com/hatlonely/beansql/ref"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestBundle() *Bundle {
	return &Bundle{Tables: []TableStatements{
		{Table: "Item", Statements: []Statement{
			{Kind: "create", SQL: "CREATE TABLE Item (\n\tid INT,\n\tPRIMARY KEY ( id )\n)"},
			{Kind: "selectById", SQL: "SELECT * FROM Item WHERE id = ?"},
		}},
		{Table: "Libro", Statements: []Statement{
			{Kind: "drop", SQL: "DROP TABLE Libro"},
		}},
	}}
}

func TestSerializers(t *testing.T) {
	Convey("序列化后可以反序列化为相同的结构", t, func() {
		for _, format := range []string{"text", "json", "yaml", "toml", "msgpack", "bson", "protobuf"} {
			Convey(format, func() {
				s, err := NewSerializer(format)
				So(err, ShouldBeNil)

				buf, err := s.Serialize(newTestBundle())
				So(err, ShouldBeNil)
				So(buf, ShouldNotBeEmpty)

				bundle, err := s.Deserialize(buf)
				So(err, ShouldBeNil)
				So(bundle, ShouldResemble, newTestBundle())
			})
		}
	})
}

func TestTextSerializer(t *testing.T) {
	Convey("text 格式是可以执行的 SQL 脚本", t, func() {
		buf, err := NewTextSerializer().Serialize(newTestBundle())
		So(err, ShouldBeNil)
		So(string(buf), ShouldEqual, "-- Item create\n"+
			"CREATE TABLE Item (\n\tid INT,\n\tPRIMARY KEY ( id )\n);\n"+
			"\n"+
			"-- Item selectById\n"+
			"SELECT * FROM Item WHERE id = ?;\n"+
			"\n"+
			"-- Libro drop\n"+
			"DROP TABLE Libro;\n")

		bundle, err := NewTextSerializer().Deserialize(nil)
		So(err, ShouldBeNil)
		So(bundle.Tables, ShouldBeEmpty)

		_, err = NewTextSerializer().Deserialize([]byte("SELECT 1;"))
		So(err, ShouldNotBeNil)
	})
}

func TestJSONSerializer(t *testing.T) {
	Convey("紧凑的 json", t, func() {
		buf, err := NewJSONSerializerWithOptions(&JSONSerializerOptions{}).Serialize(&Bundle{Tables: []TableStatements{
			{Table: "T", Statements: []Statement{{Kind: "drop", SQL: "DROP TABLE T"}}},
		}})
		So(err, ShouldBeNil)
		So(string(buf), ShouldEqual, `{"tables":[{"table":"T","statements":[{"kind":"drop","sql":"DROP TABLE T"}]}]}`+"\n")
	})
}

func TestNewSerializer(t *testing.T) {
	Convey("测试 NewSerializer", t, func() {
		s, err := NewSerializer(" YAML ")
		So(err, ShouldBeNil)
		So(s, ShouldHaveSameTypeAs, &YAMLSerializer{})

		_, err = NewSerializer("xml")
		So(err, ShouldNotBeNil)

		s, err = NewSerializerWithOptions(nil)
		So(err, ShouldBeNil)
		So(s, ShouldHaveSameTypeAs, &TextSerializer{})

		s, err = NewSerializerWithOptions(&ref.TypeOptions{
			Namespace: "github.com/hatlonely/beansql/serializer",
			Type:      "JSONSerializer",
			Options:   &JSONSerializerOptions{Indent: "\t"},
		})
		So(err, ShouldBeNil)
		So(s.(*JSONSerializer).indent, ShouldEqual, "\t")
	})
}
