package serializer

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

type MsgPackSerializer struct{}

func NewMsgPackSerializer() *MsgPackSerializer {
	return &MsgPackSerializer{}
}

func (s *MsgPackSerializer) Serialize(from *Bundle) ([]byte, error) {
	buf, err := msgpack.Marshal(from)
	if err != nil {
		return nil, errors.Wrap(err, "msgpack.Marshal failed")
	}
	return buf, nil
}

func (s *MsgPackSerializer) Deserialize(to []byte) (*Bundle, error) {
	var result Bundle
	if err := msgpack.Unmarshal(to, &result); err != nil {
		return nil, errors.Wrap(err, "msgpack.Unmarshal failed")
	}
	return &result, nil
}
