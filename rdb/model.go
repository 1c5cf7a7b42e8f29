package rdb

// TableModel 表模型定义，由结构体或 schema 文件生成
type TableModel struct {
	Table  string // 表名
	Fields []FieldDefinition
}

// FieldDefinition 字段定义
type FieldDefinition struct {
	Name string    // 列名
	Type FieldType // 声明类型，查 TypeTranslation 得到 SQL 类型
	Key  KeyAnnotation
}

// TableModeler 可以直接提供表模型的记录类型，实现后不再通过反射解析
type TableModeler interface {
	TableModel() *TableModel
}

// TableModel 使 *TableModel 本身也可以作为记录传给 Translator
func (m *TableModel) TableModel() *TableModel {
	return m
}

// Columns 按声明顺序返回所有列名
func (m *TableModel) Columns() []string {
	columns := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		columns = append(columns, f.Name)
	}
	return columns
}

// PrimaryKeys 按声明顺序返回主键列名
func (m *TableModel) PrimaryKeys() []string {
	var keys []string
	for _, f := range m.Fields {
		if f.Key.IsPrimary() {
			keys = append(keys, f.Name)
		}
	}
	return keys
}

// ForeignKeys 按声明顺序返回外键
func (m *TableModel) ForeignKeys() []ForeignKey {
	var keys []ForeignKey
	for _, f := range m.Fields {
		if f.Key.IsForeign() {
			keys = append(keys, ForeignKey{Column: f.Name, Table: f.Key.ReferencedTable()})
		}
	}
	return keys
}

// ForeignKeyMap 外键列名到引用表名的映射
func (m *TableModel) ForeignKeyMap() map[string]string {
	result := make(map[string]string)
	for _, fk := range m.ForeignKeys() {
		result[fk.Column] = fk.Table
	}
	return result
}
