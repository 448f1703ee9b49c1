// Package reefv1 holds the messages and the gRPC service descriptors of the
// reef daemon API, version 1.
//
// Messages are exchanged as JSON: clients must call the services with the
// "json" content-subtype, which the helpers in this package do by default.
package reefv1

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of the reef API.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(codec{})
}

type codec struct{}

func (codec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (codec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (codec) Name() string {
	return CodecName
}
