package store

import (
	"bytes"
	"encoding/json"
	"sort"
)

// The stores and dist files are committed to git and hand-reviewed, so the
// encoder guarantees a fixed key order: the schema's declared order first,
// then any remaining keys lexically. Two-space indent, no HTML escaping,
// matching the files as they already exist.

// encodeRecord encodes one record compactly with the given key order.
func encodeRecord(r Record, keyOrder []string) []byte {
	if r == nil {
		return []byte("null")
	}
	keys := make([]string, 0, len(r))
	seen := make(map[string]bool, len(r))
	for _, k := range keyOrder {
		if _, ok := r[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(r))
	for k := range r {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return encodeOrdered(map[string]any(r), append(keys, rest...))
}

// encodeOrdered encodes m compactly, emitting keys in the given order.
func encodeOrdered(m map[string]any, keys []string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(encodeValue(m[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// encodeValue encodes a single value without HTML escaping.
func encodeValue(v any) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return []byte("null")
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// indentJSON pretty-prints compact JSON with the repository's two-space
// indent, preserving key order.
func indentJSON(compact []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
