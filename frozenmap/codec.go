package frozenmap

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// wireEntry carries one key/value pair on the wire. Interface-typed fields
// require the concrete types to be gob-registered; the common scalar kinds
// are registered below, applications register their own.
type wireEntry struct {
	K, V any
}

func init() {
	gob.Register(int(0))
	gob.Register(int64(0))
	gob.Register(uint64(0))
	gob.Register(float64(0))
	gob.Register("")
	gob.Register(false)
	gob.Register([]byte(nil))
	gob.Register([]any(nil))
}

// MarshalBinary encodes the mapping for serialization. Entry order on the
// wire is unspecified and carries no meaning.
func (m *Map) MarshalBinary() ([]byte, error) {
	s := m.s.Load()
	entries := make([]wireEntry, 0, len(s.items))
	for k, v := range s.items {
		entries = append(entries, wireEntry{K: k, V: v})
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entries); err != nil {
		return nil, fmt.Errorf("frozenmap: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores a mapping produced by MarshalBinary. The result
// is again a frozen mapping, equal to the original.
func (m *Map) UnmarshalBinary(data []byte) error {
	var entries []wireEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entries); err != nil {
		return fmt.Errorf("frozenmap: decode: %w", err)
	}
	kvs := make([][2]any, len(entries))
	for i, e := range entries {
		kvs[i] = [2]any{e.K, e.V}
	}
	restored, err := fromPairs(kvs)
	if err != nil {
		return err
	}
	m.s.Store(restored.s.Load())
	return nil
}
