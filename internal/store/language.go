package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/plantfolio/plantkit/internal/atomicfile"
	"github.com/plantfolio/plantkit/internal/schema"
)

// LanguageHeader is the locale-scoped header: the optional first array
// element carrying version info and the translated category list.
type LanguageHeader struct {
	Version    string
	PlantCount int
	Categories []string // translated names, positional against schema.CategoryOrder
	raw        map[string]any
}

// LanguageStore is one locale's ordered sequence of language records.
type LanguageStore struct {
	Path    string
	Locale  schema.Locale
	Header  *LanguageHeader
	Entries []Record
}

// LoadLanguage reads and loosely decodes a language store. A non-array file
// is a StructuralError. The header element may appear anywhere but is
// conventionally first; entries keep their file order.
func LoadLanguage(path string, locale schema.Locale) (*LanguageStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read language store: %w", err)
	}

	var raw []Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &StructuralError{Path: path, Err: errors.New("expected a JSON array of language records")}
	}

	s := &LanguageStore{Path: path, Locale: locale}
	for _, entry := range raw {
		if meta, ok := entry[metadataHeaderKey]; ok {
			if s.Header == nil {
				s.Header = decodeLanguageHeader(meta)
			}
			continue
		}
		s.Entries = append(s.Entries, entry)
	}
	return s, nil
}

func decodeLanguageHeader(v any) *LanguageHeader {
	m, _ := v.(map[string]any)
	h := &LanguageHeader{raw: m}
	if m == nil {
		return h
	}
	if s, ok := m["version"].(string); ok {
		h.Version = s
	}
	if n, ok := m["plantCount"].(float64); ok {
		h.PlantCount = int(n)
	}
	if sorting, ok := m["sorting"].(map[string]any); ok {
		if cats, ok := sorting["categories"].([]any); ok {
			for _, c := range cats {
				if s, ok := c.(string); ok {
					h.Categories = append(h.Categories, s)
				}
			}
		}
	}
	return h
}

// IDSet returns the identifier set of all entries that carry an id.
func (s *LanguageStore) IDSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		if id := e.ID(); id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// ByID indexes entries by identifier. Entries without an id are skipped.
func (s *LanguageStore) ByID() map[string]Record {
	m := make(map[string]Record, len(s.Entries))
	for _, e := range s.Entries {
		if id := e.ID(); id != "" {
			m[id] = e
		}
	}
	return m
}

// Sort reorders entries to the canonical order given by rank (identifier →
// position). Identifiers missing from rank keep their relative order at the
// end.
func (s *LanguageStore) Sort(rank map[string]int) {
	sort.SliceStable(s.Entries, func(i, j int) bool {
		return entryRank(s.Entries[i], rank, len(rank)) < entryRank(s.Entries[j], rank, len(rank))
	})
}

func entryRank(e Record, rank map[string]int, max int) int {
	if r, ok := rank[e.ID()]; ok {
		return r
	}
	return max
}

// Save writes the store: header element first (if present, with plantCount
// refreshed), then entries in their current order. The write is atomic.
func (s *LanguageStore) Save() error {
	elements := make([][]byte, 0, len(s.Entries)+1)
	if s.Header != nil {
		s.Header.PlantCount = len(s.Entries)
		elements = append(elements, encodeLanguageHeader(s.Header))
	}
	for _, e := range s.Entries {
		elements = append(elements, encodeRecord(e, schema.LanguageKeyOrder))
	}

	pretty, err := indentArray(elements)
	if err != nil {
		return fmt.Errorf("encode language store: %w", err)
	}
	return atomicfile.WriteFile(s.Path, pretty, 0)
}

func encodeLanguageHeader(h *LanguageHeader) []byte {
	inner := map[string]any{}
	for k, v := range h.raw {
		inner[k] = v
	}
	if h.Version != "" {
		inner["version"] = h.Version
	}
	inner["plantCount"] = h.PlantCount
	if h.Categories != nil {
		sorting, _ := inner["sorting"].(map[string]any)
		if sorting == nil {
			sorting = map[string]any{}
		}
		cats := make([]any, len(h.Categories))
		for i, c := range h.Categories {
			cats[i] = c
		}
		sorting["categories"] = cats
		inner["sorting"] = sorting
	}

	keys := make([]string, 0, len(inner))
	for k := range inner {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteString(`{"_metadata":`)
	buf.Write(encodeOrdered(inner, keys))
	buf.WriteByte('}')
	return buf.Bytes()
}

// indentArray assembles pre-encoded elements into a pretty-printed array.
func indentArray(elements [][]byte) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('[')
	for i, e := range elements {
		if i > 0 {
			compact.WriteByte(',')
		}
		compact.Write(e)
	}
	compact.WriteByte(']')
	return indentJSON(compact.Bytes())
}

// MarshalRecords pretty-prints records as a JSON array using the given key
// order. Used for dist output and category extracts.
func MarshalRecords(records []Record, keyOrder []string) ([]byte, error) {
	elements := make([][]byte, len(records))
	for i, r := range records {
		elements[i] = encodeRecord(r, keyOrder)
	}
	return indentArray(elements)
}

// MarshalRecordsWithHeader is MarshalRecords with a _metadata header element
// prepended, for dist consumers that fetch the file directly.
func MarshalRecordsWithHeader(header *LanguageHeader, records []Record, keyOrder []string) ([]byte, error) {
	elements := make([][]byte, 0, len(records)+1)
	if header != nil {
		elements = append(elements, encodeLanguageHeader(header))
	}
	for _, r := range records {
		elements = append(elements, encodeRecord(r, keyOrder))
	}
	return indentArray(elements)
}
