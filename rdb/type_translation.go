package rdb

import (
	"github.com/pkg/errors"
)

// FieldType 字段的声明类型，取 reflect.Type.String()
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeInt    FieldType = "int"
	FieldTypeDouble FieldType = "float64"
	FieldTypeFloat  FieldType = "float32"
	FieldTypeChar   FieldType = "int32" // rune
)

var ErrUnsupportedFieldType = errors.New("unsupported field type")

// typeTranslation 声明类型到 SQL 列类型，初始化后只读
var typeTranslation = map[FieldType]string{
	FieldTypeString: "VARCHAR(100)",
	FieldTypeInt:    "INT",
	FieldTypeDouble: "DOUBLE",
	FieldTypeFloat:  "FLOAT",
	FieldTypeChar:   "CHAR",
}

// TypeTranslation 返回类型映射表的副本
func TypeTranslation() map[FieldType]string {
	result := make(map[FieldType]string, len(typeTranslation))
	for k, v := range typeTranslation {
		result[k] = v
	}
	return result
}

// TranslateType 查询声明类型对应的 SQL 列类型
func TranslateType(t FieldType) (string, error) {
	sqlType, ok := typeTranslation[t]
	if !ok {
		return "", errors.Wrapf(ErrUnsupportedFieldType, "type %q", string(t))
	}
	return sqlType, nil
}
