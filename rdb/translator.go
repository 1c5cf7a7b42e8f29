package rdb

import (
	"strings"

	"github.com/hatlonely/beansql/log"
	"github.com/hatlonely/beansql/log/logger"
	"github.com/hatlonely/beansql/ref"
	"github.com/pkg/errors"
)

func init() {
	ref.MustRegisterT[Translator](NewTranslatorWithOptions)
}

type TranslatorOptions struct {
	// Logger 日志器配置，为空时使用 log.Default()
	Logger *ref.TypeOptions `cfg:"logger"`
}

// Translator 把记录类型翻译成 SQL 语句
//
// 每次调用都重新解析记录的字段和键，不缓存，不修改传入的对象，可以并发使用。
// 字段名和表名原样拼接，不做转义，调用方需要保证它们是合法的标识符。
type Translator struct {
	builder *TableModelBuilder
	logger  logger.Logger
}

func NewTranslator() *Translator {
	return NewTranslatorWithLogger(log.Default())
}

func NewTranslatorWithLogger(l logger.Logger) *Translator {
	if l == nil {
		l = log.Discard()
	}
	return &Translator{
		builder: NewTableModelBuilderWithLogger(l),
		logger:  l,
	}
}

func NewTranslatorWithOptions(options *TranslatorOptions) (*Translator, error) {
	if options == nil {
		return NewTranslator(), nil
	}
	l, err := log.NewLoggerWithOptions(options.Logger)
	if err != nil {
		return nil, errors.WithMessage(err, "create logger failed")
	}
	return NewTranslatorWithLogger(l), nil
}

// Model 返回 Translator 看到的表模型
func (t *Translator) Model(v any) *TableModel {
	return t.builder.Build(v)
}

// Generate 按语句类型生成 SQL，只有 create 可能返回错误
func (t *Translator) Generate(kind StatementKind, v any) (string, error) {
	model := t.builder.Build(v)

	var sql string
	switch kind {
	case StatementCreate:
		var err error
		if sql, err = t.create(model); err != nil {
			return "", err
		}
	case StatementInsert:
		sql = insert(model)
	case StatementDelete:
		sql = "DELETE FROM " + model.Table + where(model.Columns())
	case StatementSelect:
		sql = "SELECT * FROM " + model.Table + where(model.Columns())
	case StatementUpdate:
		sql = "UPDATE " + model.Table + set(model.Columns()) + where(model.Columns())
	case StatementDeleteByID:
		sql = "DELETE FROM " + model.Table + where(keysOrColumns(model))
	case StatementSelectByID:
		sql = "SELECT * FROM " + model.Table + where(keysOrColumns(model))
	case StatementUpdateByID:
		sql = "UPDATE " + model.Table + set(model.Columns()) + where(keysOrColumns(model))
	case StatementSelectAll:
		sql = "SELECT * FROM " + model.Table
	case StatementDrop:
		sql = "DROP TABLE " + model.Table
	default:
		return "", errors.Wrapf(ErrUnknownStatementKind, "%q", string(kind))
	}

	t.logger.Debug("statement generated", "table", model.Table, "kind", string(kind), "sql", sql)
	return sql, nil
}

// CreateTable 生成建表语句，字段类型不在 TypeTranslation 中时返回 ErrUnsupportedFieldType
func (t *Translator) CreateTable(v any) (string, error) {
	return t.Generate(StatementCreate, v)
}

func (t *Translator) InsertTable(v any) string {
	return t.mustGenerate(StatementInsert, v)
}

// DeleteTable 所有字段都作为 WHERE 条件
func (t *Translator) DeleteTable(v any) string {
	return t.mustGenerate(StatementDelete, v)
}

func (t *Translator) SelectTable(v any) string {
	return t.mustGenerate(StatementSelect, v)
}

func (t *Translator) UpdateTable(v any) string {
	return t.mustGenerate(StatementUpdate, v)
}

// DeleteByIDTable 以主键作为 WHERE 条件，没有主键时等同于 DeleteTable
func (t *Translator) DeleteByIDTable(v any) string {
	return t.mustGenerate(StatementDeleteByID, v)
}

// SelectByIDTable 以主键作为 WHERE 条件，没有主键时等同于 SelectTable
func (t *Translator) SelectByIDTable(v any) string {
	return t.mustGenerate(StatementSelectByID, v)
}

// UpdateByIDTable SET 所有字段，以主键作为 WHERE 条件，没有主键时等同于 UpdateTable
func (t *Translator) UpdateByIDTable(v any) string {
	return t.mustGenerate(StatementUpdateByID, v)
}

func (t *Translator) SelectAllTable(v any) string {
	return t.mustGenerate(StatementSelectAll, v)
}

func (t *Translator) DropTable(v any) string {
	return t.mustGenerate(StatementDrop, v)
}

// mustGenerate 只用于不查类型表的语句，这些语句不会失败
func (t *Translator) mustGenerate(kind StatementKind, v any) string {
	sql, _ := t.Generate(kind, v)
	return sql
}

func (t *Translator) create(model *TableModel) (string, error) {
	lines := make([]string, 0, len(model.Fields)+1)
	for _, f := range model.Fields {
		sqlType, err := TranslateType(f.Type)
		if err != nil {
			t.logger.Warn("unsupported field type", "table", model.Table, "field", f.Name, "type", string(f.Type))
			return "", errors.WithMessagef(err, "create table %s: field %s", model.Table, f.Name)
		}
		lines = append(lines, "\t"+f.Name+" "+sqlType)
	}

	if pk := model.PrimaryKeys(); len(pk) > 0 {
		lines = append(lines, "\tPRIMARY KEY "+paren(pk))
	}
	for _, fk := range model.ForeignKeys() {
		lines = append(lines, "\tFOREIGN KEY "+paren([]string{fk.Column})+" REFERENCES "+paren([]string{fk.Table}))
	}

	if len(lines) == 0 {
		return "CREATE TABLE " + model.Table + " ()", nil
	}
	return "CREATE TABLE " + model.Table + " (\n" + strings.Join(lines, ",\n") + "\n)", nil
}

func insert(model *TableModel) string {
	columns := model.Columns()
	return "INSERT INTO " + model.Table + " " + paren(columns) + " VALUES " + paren(placeholders(len(columns)))
}

// keysOrColumns 主键列，没有主键时退化为所有列
func keysOrColumns(model *TableModel) []string {
	if pk := model.PrimaryKeys(); len(pk) > 0 {
		return pk
	}
	return model.Columns()
}
