package rdb

import (
	"strings"

	"github.com/pkg/errors"
)

// StatementKind 生成的语句类型
type StatementKind string

const (
	StatementCreate     StatementKind = "create"
	StatementInsert     StatementKind = "insert"
	StatementDelete     StatementKind = "delete"
	StatementSelect     StatementKind = "select"
	StatementUpdate     StatementKind = "update"
	StatementDeleteByID StatementKind = "deleteById"
	StatementSelectByID StatementKind = "selectById"
	StatementUpdateByID StatementKind = "updateById"
	StatementSelectAll  StatementKind = "selectAll"
	StatementDrop       StatementKind = "drop"
)

var ErrUnknownStatementKind = errors.New("unknown statement kind")

// Generator 按语句类型生成 SQL，Translator 和 ObservableTranslator 都实现了它
type Generator interface {
	Generate(kind StatementKind, v any) (string, error)
}

// StatementKinds 所有语句类型，按 BeanTranslator 的方法顺序
func StatementKinds() []StatementKind {
	return []StatementKind{
		StatementCreate,
		StatementInsert,
		StatementDelete,
		StatementSelect,
		StatementUpdate,
		StatementDeleteByID,
		StatementSelectByID,
		StatementUpdateByID,
		StatementSelectAll,
		StatementDrop,
	}
}

// ParseStatementKind 解析语句类型，大小写不敏感
func ParseStatementKind(s string) (StatementKind, error) {
	for _, kind := range StatementKinds() {
		if strings.EqualFold(string(kind), strings.TrimSpace(s)) {
			return kind, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownStatementKind, "%q", s)
}

// ParseStatementKinds 解析多个语句类型，为空时返回全部类型
func ParseStatementKinds(names []string) ([]StatementKind, error) {
	if len(names) == 0 {
		return StatementKinds(), nil
	}
	kinds := make([]StatementKind, 0, len(names))
	for _, name := range names {
		kind, err := ParseStatementKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// paren 生成 "( a, b )"，空列表为 "()"
func paren(items []string) string {
	if len(items) == 0 {
		return "()"
	}
	return "( " + strings.Join(items, ", ") + " )"
}

func assignments(columns []string) []string {
	result := make([]string, 0, len(columns))
	for _, c := range columns {
		result = append(result, c+" = ?")
	}
	return result
}

func placeholders(n int) []string {
	result := make([]string, n)
	for i := range result {
		result[i] = "?"
	}
	return result
}

// where 没有条件时省略 WHERE 子句
func where(columns []string) string {
	if len(columns) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(assignments(columns), " AND ")
}

func set(columns []string) string {
	if len(columns) == 0 {
		return ""
	}
	return " SET " + strings.Join(assignments(columns), ", ")
}
