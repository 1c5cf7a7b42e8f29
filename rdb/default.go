package rdb

var defaultTranslator = NewTranslator()

func CreateTable(v any) (string, error) {
	return defaultTranslator.CreateTable(v)
}

func InsertTable(v any) string {
	return defaultTranslator.InsertTable(v)
}

func DeleteTable(v any) string {
	return defaultTranslator.DeleteTable(v)
}

func SelectTable(v any) string {
	return defaultTranslator.SelectTable(v)
}

func UpdateTable(v any) string {
	return defaultTranslator.UpdateTable(v)
}

func DeleteByIDTable(v any) string {
	return defaultTranslator.DeleteByIDTable(v)
}

func SelectByIDTable(v any) string {
	return defaultTranslator.SelectByIDTable(v)
}

func UpdateByIDTable(v any) string {
	return defaultTranslator.UpdateByIDTable(v)
}

func SelectAllTable(v any) string {
	return defaultTranslator.SelectAllTable(v)
}

func DropTable(v any) string {
	return defaultTranslator.DropTable(v)
}
