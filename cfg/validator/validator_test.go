package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type field struct {
	Name string `validate:"required"`
	Key  string `validate:"omitempty,oneof=primary foreign"`
}

type table struct {
	Name   string  `validate:"required"`
	Fields []field `validate:"dive"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(&table{Name: "Item", Fields: []field{{Name: "id", Key: "primary"}, {Name: "name"}}}))
	assert.Error(t, ValidateStruct(&table{}))
	assert.Error(t, ValidateStruct(table{Name: "Item", Fields: []field{{Name: "id", Key: "index"}}}))
	assert.Error(t, ValidateStruct(&table{Name: "Item", Fields: []field{{}}}))

	var nilTable *table
	assert.NoError(t, ValidateStruct(nilTable))
	assert.NoError(t, ValidateStruct(nil))
	assert.NoError(t, ValidateStruct(42))
	assert.NoError(t, ValidateStruct(time.Now()))
}
