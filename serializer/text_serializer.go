package serializer

import (
	"strings"

	"github.com/pkg/errors"
)

// TextSerializer 输出可以直接执行的 SQL 脚本
// 每条语句前有一行 "-- <table> <kind>" 注释，以 ";" 结尾，语句之间空一行
type TextSerializer struct{}

func NewTextSerializer() *TextSerializer {
	return &TextSerializer{}
}

func (s *TextSerializer) Serialize(from *Bundle) ([]byte, error) {
	var blocks []string
	for _, t := range from.Tables {
		for _, stmt := range t.Statements {
			blocks = append(blocks, "-- "+t.Table+" "+stmt.Kind+"\n"+stmt.SQL+";\n")
		}
	}
	return []byte(strings.Join(blocks, "\n")), nil
}

func (s *TextSerializer) Deserialize(to []byte) (*Bundle, error) {
	bundle := &Bundle{}
	content := strings.TrimSpace(string(to))
	if content == "" {
		return bundle, nil
	}

	for _, block := range strings.Split(content, ";\n\n") {
		header, sql, ok := strings.Cut(block, "\n")
		if !ok || !strings.HasPrefix(header, "-- ") {
			return nil, errors.Errorf("invalid statement block %q", block)
		}
		table, kind := "", strings.TrimSpace(strings.TrimPrefix(header, "-- "))
		if i := strings.LastIndex(kind, " "); i >= 0 {
			table, kind = kind[:i], kind[i+1:]
		}
		stmt := Statement{Kind: kind, SQL: strings.TrimSuffix(strings.TrimSpace(sql), ";")}

		if n := len(bundle.Tables); n > 0 && bundle.Tables[n-1].Table == table {
			bundle.Tables[n-1].Statements = append(bundle.Tables[n-1].Statements, stmt)
		} else {
			bundle.Tables = append(bundle.Tables, TableStatements{Table: table, Statements: []Statement{stmt}})
		}
	}
	return bundle, nil
}
