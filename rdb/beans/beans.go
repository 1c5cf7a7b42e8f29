// Package beans 示例记录类型
package beans

type Persona struct {
	CodiceFiscale string `rdb:"codiceFiscale,primary"`
	Nome          string `rdb:"nome"`
	Cognome       string `rdb:"cognome"`
	Eta           int    `rdb:"eta"`
	Sesso         rune   `rdb:"sesso"`
}

type Autore struct {
	ID      int    `rdb:"id,primary"`
	Persona string `rdb:"persona,foreign=Persona"`
	Alias   string `rdb:"alias"`
}

type Libro struct {
	ISBN   string  `rdb:"isbn,primary"`
	Titolo string  `rdb:"titolo"`
	Prezzo float64 `rdb:"prezzo"`
	Sconto float32 `rdb:"sconto"`
	Autore int     `rdb:"autore,key=foreign,table=Autore"`
}
