package upstream

import (
	"bytes"
	"encoding/json"
)

// unmarshalStrict rejects unknown fields so a malformed or mis-versioned
// webhook payload fails loudly instead of half-parsing.
func unmarshalStrict(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}
