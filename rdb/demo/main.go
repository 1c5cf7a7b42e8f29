package main

import (
	"fmt"
	"os"

	"github.com/hatlonely/beansql/rdb"
	"github.com/hatlonely/beansql/rdb/beans"
)

func main() {
	translator := rdb.NewTranslator()

	for _, bean := range []any{&beans.Persona{}, &beans.Autore{}, &beans.Libro{}} {
		sql, err := translator.CreateTable(bean)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(sql)
		fmt.Println(translator.InsertTable(bean))
		fmt.Println(translator.DeleteTable(bean))
		fmt.Println(translator.SelectTable(bean))
		fmt.Println(translator.UpdateTable(bean))
		fmt.Println(translator.DeleteByIDTable(bean))
		fmt.Println(translator.SelectByIDTable(bean))
		fmt.Println(translator.UpdateByIDTable(bean))
		fmt.Println(translator.SelectAllTable(bean))
		fmt.Println(translator.DropTable(bean))
		fmt.Println()
	}
}
