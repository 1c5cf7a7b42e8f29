package rdb

// DefaultForeignTable 外键未指定引用表时使用的占位表名
const DefaultForeignTable = "<table>"

// KeyRole 字段在表中的键角色
type KeyRole int

const (
	KeyNone KeyRole = iota
	KeyPrimary
	KeyForeign
)

func (r KeyRole) String() string {
	switch r {
	case KeyPrimary:
		return "primary"
	case KeyForeign:
		return "foreign"
	default:
		return ""
	}
}

// ParseKeyRole 解析 "primary"/"pk"/"foreign"/"fk"，空字符串为 KeyNone
func ParseKeyRole(s string) (KeyRole, bool) {
	switch s {
	case "":
		return KeyNone, true
	case "primary", "pk":
		return KeyPrimary, true
	case "foreign", "fk":
		return KeyForeign, true
	default:
		return KeyNone, false
	}
}

// KeyAnnotation 字段上的键标注
// Table 只在 Role 为 KeyForeign 时有意义
type KeyAnnotation struct {
	Role  KeyRole
	Table string
}

func PrimaryKey() KeyAnnotation {
	return KeyAnnotation{Role: KeyPrimary}
}

// ForeignKeyTo 引用 table 的外键标注，table 为空时使用 DefaultForeignTable
func ForeignKeyTo(table string) KeyAnnotation {
	if table == "" {
		table = DefaultForeignTable
	}
	return KeyAnnotation{Role: KeyForeign, Table: table}
}

func (k KeyAnnotation) IsPrimary() bool {
	return k.Role == KeyPrimary
}

func (k KeyAnnotation) IsForeign() bool {
	return k.Role == KeyForeign
}

// ReferencedTable 外键引用的表名
func (k KeyAnnotation) ReferencedTable() string {
	if k.Table == "" {
		return DefaultForeignTable
	}
	return k.Table
}

// ForeignKey 单列外键
type ForeignKey struct {
	Column string
	Table  string
}
