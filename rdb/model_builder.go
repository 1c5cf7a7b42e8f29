package rdb

import (
	"reflect"
	"strings"

	"github.com/hatlonely/beansql/log"
	"github.com/hatlonely/beansql/log/logger"
)

// TableModelBuilder 表模型构建器
//
// 支持的 tag 格式：
//   - `rdb:"column_name,primary"` 第一段（不含 =）为列名，为空时使用字段名
//   - `rdb:",key"` 键标注，类型默认为主键
//   - `rdb:",key=foreign,table=Autore"` / `rdb:",fk,table=Autore"` / `rdb:",foreign=Autore"` 外键
//   - `rdb:"-"` 忽略该字段
type TableModelBuilder struct {
	logger logger.Logger
}

func NewTableModelBuilder() *TableModelBuilder {
	return &TableModelBuilder{logger: log.Default()}
}

func NewTableModelBuilderWithLogger(l logger.Logger) *TableModelBuilder {
	if l == nil {
		l = log.Discard()
	}
	return &TableModelBuilder{logger: l}
}

// Build 获取记录的表模型
// *TableModel 和 TableModeler 直接使用自身的描述，其余类型通过反射解析
func (b *TableModelBuilder) Build(v any) *TableModel {
	if m, ok := v.(TableModeler); ok {
		if model := m.TableModel(); model != nil {
			return model
		}
		return &TableModel{}
	}
	return b.FromStruct(v)
}

// FromStruct 从结构体构建 TableModel
// 字段按声明顺序排列，包含未导出字段，不包含匿名嵌入字段
// 非结构体或 nil 返回没有字段的模型
func (b *TableModelBuilder) FromStruct(v any) *TableModel {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return &TableModel{}
	}
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	model := &TableModel{Table: rt.Name()}
	if rt.Kind() != reflect.Struct {
		return model
	}

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.Anonymous {
			continue
		}

		tag := field.Tag.Get("rdb")
		if tag == "-" {
			continue
		}

		model.Fields = append(model.Fields, b.parseField(model.Table, field, tag))
	}

	return model
}

// parseField 解析字段的 rdb tag
func (b *TableModelBuilder) parseField(table string, field reflect.StructField, tag string) FieldDefinition {
	def := FieldDefinition{
		Name: field.Name,
		Type: FieldType(field.Type.String()),
	}
	if tag == "" {
		return def
	}

	parts := strings.Split(tag, ",")
	if !strings.Contains(parts[0], "=") {
		if name := strings.TrimSpace(parts[0]); name != "" {
			def.Name = name
		}
		parts = parts[1:]
	}

	var annotated bool
	role := KeyPrimary
	var refTable string

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "key":
			if !hasValue {
				annotated = true
				continue
			}
			r, ok := ParseKeyRole(value)
			if !ok || r == KeyNone {
				b.logger.Warn("ignore unknown key type", "table", table, "field", field.Name, "key", value)
				continue
			}
			annotated, role = true, r
		case "primary", "pk":
			annotated, role = true, KeyPrimary
		case "foreign", "fk":
			annotated, role = true, KeyForeign
			if hasValue {
				refTable = value
			}
		case "table":
			refTable = value
		}
	}

	if !annotated {
		return def
	}
	if role == KeyForeign {
		def.Key = ForeignKeyTo(refTable)
	} else {
		def.Key = PrimaryKey()
	}
	return def
}

var defaultBuilder = NewTableModelBuilderWithLogger(nil)

// ListFields 按声明顺序列出记录的字段
func ListFields(v any) []FieldDefinition {
	return defaultBuilder.Build(v).Fields
}

// ListPrimaryKeys 按声明顺序列出主键列名
func ListPrimaryKeys(v any) []string {
	return defaultBuilder.Build(v).PrimaryKeys()
}

// ListForeignKeys 按声明顺序列出外键及其引用表
func ListForeignKeys(v any) []ForeignKey {
	return defaultBuilder.Build(v).ForeignKeys()
}
