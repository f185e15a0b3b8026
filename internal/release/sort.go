package release

import (
	"errors"
	"io/fs"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

// SortResult reports what the canonical sort rewrote.
type SortResult struct {
	Plants  int            `json:"plants"`
	Locales map[string]int `json:"locales"`
}

// Sort rewrites the metadata store and every language store into canonical
// order: category position first, then lowercase id. Language entries whose
// id is unknown to the metadata store keep their relative order at the end.
// Missing language files are skipped.
func Sort(ds store.Dataset) (*SortResult, error) {
	meta, err := store.LoadMetadata(ds.MetadataPath())
	if err != nil {
		return nil, err
	}
	if err := meta.Save(); err != nil {
		return nil, err
	}

	rank := make(map[string]int, len(meta.Records))
	for i, id := range meta.SortedIDs() {
		rank[id] = i
	}

	res := &SortResult{Plants: len(rank), Locales: make(map[string]int)}
	for _, loc := range schema.Locales {
		lang, err := store.LoadLanguage(ds.LanguagePath(loc), loc)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lang.Sort(rank)
		if err := lang.Save(); err != nil {
			return nil, err
		}
		res.Locales[loc.Code] = len(lang.Entries)
	}
	return res, nil
}
