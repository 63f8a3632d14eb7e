// Package proto defines the DocuSage gRPC contract: request and response
// messages, the service descriptor and a typed client. Messages travel as
// JSON using the "json" codec registered here, selected on each call with
// the content-subtype CodecName.
package proto

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of the DocuSage service.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return CodecName }

// envelopeReserve covers field names, metadata and the filename of a file message.
const envelopeReserve = 64 << 10

// MaxMessageSize is the gRPC message limit needed to carry maxContent bytes
// of file content, which the JSON codec encodes as base64.
func MaxMessageSize(maxContent int64) int {
	return int((maxContent+2)/3*4) + envelopeReserve
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
