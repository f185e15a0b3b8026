package index

import (
	"database/sql"
	"fmt"
	"strings"
)

// Stats summarizes the indexed dataset.
type Stats struct {
	Plants     int            `json:"plants"`
	Rows       int            `json:"rows"`
	Locales    map[string]int `json:"locales"`
	Categories map[string]int `json:"categories"`
	Toxicity   map[string]int `json:"toxicity"`
}

// Stats computes index statistics. Category and toxicity breakdowns count
// distinct plants, not per-locale rows.
func (d *Database) Stats() (*Stats, error) {
	s := &Stats{
		Locales:    make(map[string]int),
		Categories: make(map[string]int),
		Toxicity:   make(map[string]int),
	}

	if err := d.db.QueryRow("SELECT COUNT(DISTINCT id) FROM plants").Scan(&s.Plants); err != nil {
		return nil, err
	}
	if err := d.db.QueryRow("SELECT COUNT(*) FROM plants").Scan(&s.Rows); err != nil {
		return nil, err
	}

	if err := d.countInto(s.Locales, "SELECT locale, COUNT(*) FROM plants GROUP BY locale"); err != nil {
		return nil, err
	}
	if err := d.countInto(s.Categories, "SELECT category, COUNT(DISTINCT id) FROM plants GROUP BY category"); err != nil {
		return nil, err
	}
	if err := d.countInto(s.Toxicity, "SELECT toxicity, COUNT(DISTINCT id) FROM plants GROUP BY toxicity"); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *Database) countInto(dest map[string]int, query string) error {
	rows, err := d.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		dest[key] = n
	}
	return rows.Err()
}

// Plant is one indexed row.
type Plant struct {
	ID             string `json:"id"`
	Locale         string `json:"locale"`
	TypeName       string `json:"typeName"`
	Description    string `json:"description"`
	CommonExamples string `json:"commonExamples"`
	CareTips       string `json:"careTips"`
	Category       string `json:"category"`
	Toxicity       string `json:"toxicity"`
	Light          string `json:"light"`
}

// QueryOptions filter a plant query. Zero values mean "no filter"; Match is
// a case-insensitive substring search over name, description, and examples.
type QueryOptions struct {
	Locale   string
	Category string
	Toxicity string
	Light    string
	Match    string
	Limit    int
}

// Query returns matching plants in canonical order (category position, then
// id).
func (d *Database) Query(opts QueryOptions) ([]Plant, error) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		conds = append(conds, cond)
		args = append(args, arg)
	}
	if opts.Locale != "" {
		add("locale = ?", opts.Locale)
	}
	if opts.Category != "" {
		add("category = ?", opts.Category)
	}
	if opts.Toxicity != "" {
		add("toxicity = ?", opts.Toxicity)
	}
	if opts.Light != "" {
		add("light = ?", opts.Light)
	}
	if opts.Match != "" {
		pattern := "%" + strings.ToLower(opts.Match) + "%"
		conds = append(conds, "(LOWER(type_name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(common_examples) LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	query := `SELECT id, locale, type_name, description, common_examples,
		care_tips, category, toxicity, light FROM plants`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY category_idx, LOWER(id), locale"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []Plant
	for rows.Next() {
		var p Plant
		if err := rows.Scan(&p.ID, &p.Locale, &p.TypeName, &p.Description,
			&p.CommonExamples, &p.CareTips, &p.Category, &p.Toxicity, &p.Light); err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	return plants, rows.Err()
}

// Get returns one plant row by id and locale.
func (d *Database) Get(id, locale string) (*Plant, error) {
	row := d.db.QueryRow(`SELECT id, locale, type_name, description,
		common_examples, care_tips, category, toxicity, light
		FROM plants WHERE id = ? AND locale = ?`, id, locale)

	var p Plant
	err := row.Scan(&p.ID, &p.Locale, &p.TypeName, &p.Description,
		&p.CommonExamples, &p.CareTips, &p.Category, &p.Toxicity, &p.Light)
	if err == sql.ErrNoRows {
		return nil, ErrPlantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
