package memov1

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName content-subtype, под которым зарегистрирован JSON-кодек
const CodecName = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec сериализует сообщения memo.v1 в JSON
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}
