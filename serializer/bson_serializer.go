package serializer

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

type BSONSerializer struct{}

func NewBSONSerializer() *BSONSerializer {
	return &BSONSerializer{}
}

func (s *BSONSerializer) Serialize(from *Bundle) ([]byte, error) {
	buf, err := bson.Marshal(from)
	if err != nil {
		return nil, errors.Wrap(err, "bson.Marshal failed")
	}
	return buf, nil
}

func (s *BSONSerializer) Deserialize(to []byte) (*Bundle, error) {
	var result Bundle
	if err := bson.Unmarshal(to, &result); err != nil {
		return nil, errors.Wrap(err, "bson.Unmarshal failed")
	}
	return &result, nil
}
