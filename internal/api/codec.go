// Package api defines the wire contract of the accountkeeper gRPC service:
// message types, the protobuf codec they travel in, the service descriptor
// and a typed client. accountkeeper.proto describes the messages.
package api

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype the messages are carried in
// (application/grpc+accountkeeper). The payload is protobuf wire format;
// grpc's built-in "proto" codec only accepts proto.Message values.
const CodecName = "accountkeeper"

// Codec marshals the messages of this package in protobuf wire format.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(wireMessage)
	if !ok {
		return nil, fmt.Errorf("api codec: cannot marshal %T", v)
	}
	return m.appendWire(nil), nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(wireMessage)
	if !ok {
		return fmt.Errorf("api codec: cannot unmarshal into %T", v)
	}
	if err := m.unmarshalWire(data); err != nil {
		return fmt.Errorf("api codec: %T: %w", v, err)
	}
	return nil
}

func (Codec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(Codec{})
}
