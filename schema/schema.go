// Package schema 用配置文件描述表结构，不需要定义 Go 结构体
//
//	tables:
//	  - name: Libro
//	    fields:
//	      - { name: isbn, type: string, key: primary }
//	      - { name: autore, type: int, key: foreign, table: Autore }
package schema

import (
	"strings"

	"github.com/hatlonely/beansql/cfg"
	"github.com/hatlonely/beansql/rdb"
	"github.com/pkg/errors"
)

// File 一个 schema 文件
type File struct {
	Tables []TableSchema `cfg:"tables" validate:"dive"`
}

type TableSchema struct {
	Name   string        `cfg:"name" validate:"required"`
	Fields []FieldSchema `cfg:"fields" validate:"dive"`
}

type FieldSchema struct {
	Name string `cfg:"name" validate:"required"`
	Type string `cfg:"type" validate:"required"`
	Key  string `cfg:"key" validate:"omitempty,oneof=primary foreign pk fk"`
	// Table 外键引用的表，为空时为 rdb.DefaultForeignTable
	Table string `cfg:"table"`
}

var typeAliases = map[string]rdb.FieldType{
	"rune":   rdb.FieldTypeChar,
	"char":   rdb.FieldTypeChar,
	"double": rdb.FieldTypeDouble,
	"float":  rdb.FieldTypeFloat,
	"text":   rdb.FieldTypeString,
}

// ResolveType 把别名转换为 Go 类型名，其它名称原样返回，由建表语句判断是否支持
func ResolveType(name string) rdb.FieldType {
	name = strings.TrimSpace(name)
	if t, ok := typeAliases[strings.ToLower(name)]; ok {
		return t
	}
	return rdb.FieldType(name)
}

// TableModel 实现 rdb.TableModeler，可以直接传给 rdb.Translator
func (t *TableSchema) TableModel() *rdb.TableModel {
	model := &rdb.TableModel{
		Table:  t.Name,
		Fields: make([]rdb.FieldDefinition, 0, len(t.Fields)),
	}
	for _, f := range t.Fields {
		def := rdb.FieldDefinition{Name: f.Name, Type: ResolveType(f.Type)}
		if role, _ := rdb.ParseKeyRole(strings.ToLower(f.Key)); role == rdb.KeyPrimary {
			def.Key = rdb.PrimaryKey()
		} else if role == rdb.KeyForeign {
			def.Key = rdb.ForeignKeyTo(f.Table)
		}
		model.Fields = append(model.Fields, def)
	}
	return model
}

// Models 按文件中的顺序返回所有表模型
func (f *File) Models() []*rdb.TableModel {
	models := make([]*rdb.TableModel, 0, len(f.Tables))
	for i := range f.Tables {
		models = append(models, f.Tables[i].TableModel())
	}
	return models
}

// Table 按名称查找表
func (f *File) Table(name string) (*TableSchema, bool) {
	for i := range f.Tables {
		if f.Tables[i].Name == name {
			return &f.Tables[i], true
		}
	}
	return nil, false
}

// FromConfig 从已加载的配置中解析 schema 并校验
func FromConfig(c *cfg.Config) (*File, error) {
	var file File
	if err := c.ConvertTo(&file); err != nil {
		return nil, errors.WithMessage(err, "parse schema failed")
	}
	return &file, nil
}

// Load 按文件后缀选择解码器加载 schema 文件
func Load(path string) (*File, error) {
	c, err := cfg.NewConfig(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "load schema %s failed", path)
	}
	defer c.Close()

	return FromConfig(c)
}
