// Package index maintains a SQLite index of merged plant records for fast
// querying and statistics without re-reading the JSON stores.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

// Database is the SQLite index handle.
type Database struct {
	db *sql.DB
}

var (
	// ErrPlantNotFound indicates the requested id is not in the index.
	ErrPlantNotFound = errors.New("plant not found in index")
	// ErrIndexLocked indicates another process is rebuilding the index.
	ErrIndexLocked = errors.New("index is locked for rebuild")
)

// CurrentDBVersion is the index schema version. Bump it when the plants
// table shape changes; mismatching databases are deleted and rebuilt.
const CurrentDBVersion = 2

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Open opens or creates the index database under the dataset's state dir.
func Open(ds store.Dataset) (*Database, error) {
	stateDir := ds.StateDir()
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	dbPath := filepath.Join(stateDir, "index.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// OpenWithRebuild opens the index, deleting and recreating it when the
// on-disk schema version does not match. Returns (database, wasReset, error).
func OpenWithRebuild(ds store.Dataset) (*Database, bool, error) {
	stateDir := ds.StateDir()
	dbPath := filepath.Join(stateDir, "index.db")

	lock, err := acquireIndexLock(stateDir)
	if err != nil {
		return nil, false, err
	}
	defer lock.Release()

	if _, err := os.Stat(dbPath); err == nil {
		db, err := sql.Open("sqlite", dbPath)
		if err == nil {
			if !isSchemaCompatible(db) {
				db.Close()
				if err := removeDatabaseFiles(dbPath); err != nil {
					return nil, false, err
				}
				fresh, err := Open(ds)
				return fresh, true, err
			}
			db.Close()
		}
	}

	db, err := Open(ds)
	return db, false, err
}

// OpenInMemory opens an in-memory index (for testing).
func OpenInMemory() (*Database, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

type indexLock struct {
	file *os.File
}

func acquireIndexLock(stateDir string) (*indexLock, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	lockPath := filepath.Join(stateDir, "index.lock")
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open index lock: %w", err)
	}

	if err := lockFileExclusiveNonBlocking(lockFile); err != nil {
		lockFile.Close()
		if isWouldBlockError(err) {
			return nil, ErrIndexLocked
		}
		return nil, fmt.Errorf("failed to acquire index lock: %w", err)
	}

	return &indexLock{file: lockFile}, nil
}

func (l *indexLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}

func removeDatabaseFiles(dbPath string) error {
	paths := []string{dbPath, dbPath + "-wal", dbPath + "-shm"}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

func isSchemaCompatible(db *sql.DB) bool {
	var version int
	if err := db.QueryRow("SELECT version FROM meta LIMIT 1").Scan(&version); err != nil {
		return false
	}
	return version == CurrentDBVersion
}

func (d *Database) initialize() error {
	ddl := `
	CREATE TABLE IF NOT EXISTS meta (
		version INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plants (
		id TEXT NOT NULL,
		locale TEXT NOT NULL,
		type_name TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		common_examples TEXT NOT NULL DEFAULT '',
		care_tips TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		category_idx INTEGER NOT NULL DEFAULT 0,
		toxicity TEXT NOT NULL DEFAULT '',
		light TEXT NOT NULL DEFAULT '',
		humidity TEXT NOT NULL DEFAULT '',
		watering TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (id, locale)
	);

	CREATE INDEX IF NOT EXISTS idx_plants_category ON plants(locale, category);
	CREATE INDEX IF NOT EXISTS idx_plants_toxicity ON plants(locale, toxicity);

	PRAGMA journal_mode = WAL;
	PRAGMA synchronous = NORMAL;
	`
	if _, err := d.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create index schema: %w", err)
	}

	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM meta").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := d.db.Exec("INSERT INTO meta (version) VALUES (?)", CurrentDBVersion); err != nil {
			return err
		}
	}
	return nil
}

// Rebuild reindexes the dataset: every (id, locale) pair present in both the
// metadata store and that locale's language store becomes one row. Returns
// the number of rows indexed.
func (d *Database) Rebuild(ds store.Dataset) (int, error) {
	meta, err := store.LoadMetadata(ds.MetadataPath())
	if err != nil {
		return 0, err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM plants"); err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO plants (id, locale, type_name, description, common_examples,
			care_tips, category, category_idx, toxicity, light, humidity, watering)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	total := 0
	for _, loc := range schema.Locales {
		lang, err := store.LoadLanguage(ds.LanguagePath(loc), loc)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return 0, err
		}
		for _, e := range lang.Entries {
			id := e.ID()
			rec := meta.Records[id]
			if rec == nil {
				continue
			}
			category := rec.String("category")
			idx, ok := schema.CategoryIndex(category)
			if !ok {
				idx = len(schema.CategoryOrder)
			}
			if _, err := stmt.Exec(
				id, loc.Code,
				e.String("typeName"), e.String("description"),
				e.String("commonExamples"), e.String("careTips"),
				category, idx,
				rec.String("plantToxicity"), rec.String("lightPreference"),
				rec.String("humidityPreference"), rec.String("wateringMethod"),
			); err != nil {
				return 0, err
			}
			total++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}

// Analyze runs SQLite's ANALYZE to refresh query planner statistics. Call it
// after a rebuild.
func (d *Database) Analyze() error {
	_, err := d.db.Exec("ANALYZE")
	return err
}
