// Package payload decodes JSON request bodies while remembering which keys
// the client actually sent. The update endpoints branch on key presence
// ("id" given or not, unknown keys), which a plain struct decode loses.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
)

const maxBodyBytes = 1 << 20

var (
	ErrEmptyBody = errors.New("request body is empty")
	ErrNotObject = errors.New("request body must be a JSON object")
)

// Payload maps each top-level key to its undecoded value.
type Payload map[string]json.RawMessage

// Decode reads the request body as a JSON object.
func Decode(w http.ResponseWriter, r *http.Request) (Payload, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var p Payload
	err := json.NewDecoder(body).Decode(&p)
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyBody
	}
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotObject
		}
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	// A literal null decodes into a nil map.
	if p == nil {
		return nil, ErrNotObject
	}
	return p, nil
}

// Has reports whether key was sent, whatever its value.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// OnlyKeys reports whether every key in p is one of allowed.
func (p Payload) OnlyKeys(allowed []string) bool {
	for key := range p {
		if !slices.Contains(allowed, key) {
			return false
		}
	}
	return true
}

// Bind decodes the payload into v using v's json tags. Keys v does not
// declare are ignored.
func (p Payload) Bind(v any) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("re-encode payload: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

// ID returns the integer value of the "id" key. ok is false when the key
// is absent, null, or does not hold an integer.
func (p Payload) ID() (id int64, ok bool) {
	raw, found := p["id"]
	if !found || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, false
	}
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, false
	}
	return id, true
}
