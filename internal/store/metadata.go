package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/plantfolio/plantkit/internal/atomicfile"
	"github.com/plantfolio/plantkit/internal/schema"
)

// metadataHeaderKey is the reserved top-level key carrying store metadata.
const metadataHeaderKey = "_metadata"

// MetadataHeader is the store-level header object.
type MetadataHeader struct {
	Version    string
	PlantCount int
	extra      map[string]any
}

// MetadataStore is the locale-independent store: one record per identifier.
type MetadataStore struct {
	Path    string
	Header  *MetadataHeader
	Records map[string]Record
}

// LoadMetadata reads and loosely decodes the metadata store. A non-object
// file is a StructuralError.
func LoadMetadata(path string) (*MetadataStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata store: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &StructuralError{Path: path, Err: errors.New("expected a JSON object keyed by plant id")}
	}

	s := &MetadataStore{Path: path, Records: make(map[string]Record, len(raw))}
	for key, msg := range raw {
		if key == metadataHeaderKey {
			s.Header = decodeMetadataHeader(msg)
			continue
		}
		var rec Record
		if err := json.Unmarshal(msg, &rec); err != nil {
			// Entry isn't an object; keep it so the validator can flag it.
			s.Records[key] = nil
			continue
		}
		s.Records[key] = rec
	}
	return s, nil
}

func decodeMetadataHeader(msg json.RawMessage) *MetadataHeader {
	var m map[string]any
	if err := json.Unmarshal(msg, &m); err != nil {
		return &MetadataHeader{}
	}
	h := &MetadataHeader{extra: m}
	if v, ok := m["version"].(string); ok {
		h.Version = v
	}
	if n, ok := m["plantCount"].(float64); ok {
		h.PlantCount = int(n)
	}
	return h
}

// IDs returns identifiers in lexical order.
func (s *MetadataStore) IDs() []string {
	ids := make([]string, 0, len(s.Records))
	for id := range s.Records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IDSet returns the identifier set for cross-reference checks.
func (s *MetadataStore) IDSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Records))
	for id := range s.Records {
		set[id] = struct{}{}
	}
	return set
}

// SortedIDs returns identifiers in canonical order: category position first,
// then id. Unknown categories sort last.
func (s *MetadataStore) SortedIDs() []string {
	ids := s.IDs()
	sort.SliceStable(ids, func(i, j int) bool {
		ci, cj := s.categoryRank(ids[i]), s.categoryRank(ids[j])
		if ci != cj {
			return ci < cj
		}
		return strings.ToLower(ids[i]) < strings.ToLower(ids[j])
	})
	return ids
}

func (s *MetadataStore) categoryRank(id string) int {
	rec := s.Records[id]
	if rec == nil {
		return len(schema.CategoryOrder)
	}
	if idx, ok := schema.CategoryIndex(rec.String("category")); ok {
		return idx
	}
	return len(schema.CategoryOrder)
}

// Save writes the store in canonical order with the plantCount header kept
// in step with the record count. The write is atomic.
func (s *MetadataStore) Save() error {
	var buf strings.Builder
	buf.WriteByte('{')

	first := true
	writeKey := func(key string, value []byte) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
	}

	if s.Header != nil {
		s.Header.PlantCount = len(s.Records)
		writeKey(metadataHeaderKey, encodeMetadataHeader(s.Header))
	}
	for _, id := range s.SortedIDs() {
		writeKey(id, encodeRecord(s.Records[id], schema.MetadataKeyOrder))
	}
	buf.WriteByte('}')

	pretty, err := indentJSON([]byte(buf.String()))
	if err != nil {
		return fmt.Errorf("encode metadata store: %w", err)
	}
	return atomicfile.WriteFile(s.Path, pretty, 0)
}

func encodeMetadataHeader(h *MetadataHeader) []byte {
	m := map[string]any{}
	for k, v := range h.extra {
		m[k] = v
	}
	if h.Version != "" {
		m["version"] = h.Version
	}
	m["plantCount"] = h.PlantCount
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return encodeOrdered(m, keys)
}
