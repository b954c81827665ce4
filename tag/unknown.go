package tag

import (
	"fmt"

	"github.com/simonhull/swfkit/internal/stream"
)

// Unknown holds a record whose code has no dedicated implementation.
// The payload is kept verbatim and written back unchanged.
type Unknown struct {
	code    Code
	payload []byte
}

// NewUnknown returns a raw record with the given code and a copy of payload.
func NewUnknown(code Code, payload []byte) (*Unknown, error) {
	if code > MaxCode {
		return nil, fmt.Errorf("code %d does not fit in a record header", code)
	}
	if code.Known() {
		return nil, fmt.Errorf("code %d is %s, not an unknown record", code, code)
	}
	return &Unknown{code: code, payload: append([]byte(nil), payload...)}, nil
}

// Code returns the record's original code.
func (u *Unknown) Code() Code { return u.code }

// Name returns "Unknown" for every code.
func (u *Unknown) Name() string { return "Unknown" }

// Payload returns a copy of the raw payload.
func (u *Unknown) Payload() []byte {
	return append([]byte(nil), u.payload...)
}

// PayloadLength returns the raw payload size.
func (u *Unknown) PayloadLength() int { return len(u.payload) }

func (u *Unknown) encodePayload(w *stream.SafeWriter) error {
	return w.WriteBytes(u.payload)
}

func (u *Unknown) decodePayload(r *stream.Reader, length int) error {
	payload, err := r.ReadBytes(length, fmt.Sprintf("%s payload", u.code))
	if err != nil {
		return err
	}
	u.payload = payload
	return nil
}
