package api

import (
	"connectrpc.com/connect"
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Codec marshals plain Go messages as JSON. It registers under the name
// "json", replacing Connect's protobuf JSON codec.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return jsonAPI.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body decodes as the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return jsonAPI.Unmarshal(data, msg)
}

// codecOption is prepended to every handler and client built by this package.
var codecOption = connect.WithCodec(Codec{})
