package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/refsift/refsift/internal/reference"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection. The database is a disposable cache:
// the JSONL file is the source of truth and the cache can be rebuilt from it
// at any time with RebuildFromJSONL.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Scalar columns for exact and range filters; ref_json carries the
		-- full nested reference so no field is lost in the round trip.
		CREATE TABLE IF NOT EXISTS refs (
			id TEXT PRIMARY KEY,
			work_type TEXT,
			doi TEXT,
			url TEXT,
			pub_year INTEGER,
			container TEXT,
			ref_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_refs_doi ON refs(doi) WHERE doi IS NOT NULL AND doi != '';

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS refs_fts USING fts5(
			id,
			title,
			container,
			authors_text,
			pub_year
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	refs, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM refs"); err != nil {
		return 0, fmt.Errorf("clearing refs table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM refs_fts"); err != nil {
		return 0, fmt.Errorf("clearing refs_fts table: %w", err)
	}

	refsStmt, err := d.db.Prepare(`
		INSERT INTO refs (id, work_type, doi, url, pub_year, container, ref_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing refs insert: %w", err)
	}
	defer refsStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO refs_fts (id, title, container, authors_text, pub_year)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, ref := range refs {
		if err := insertRef(refsStmt, ftsStmt, ref); err != nil {
			return 0, err
		}
	}

	return len(refs), nil
}

// Insert adds a single reference to the cache.
func (d *DB) Insert(ref reference.Reference) error {
	refsStmt, err := d.db.Prepare(`
		INSERT INTO refs (id, work_type, doi, url, pub_year, container, ref_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing refs insert: %w", err)
	}
	defer refsStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO refs_fts (id, title, container, authors_text, pub_year)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	return insertRef(refsStmt, ftsStmt, ref)
}

func insertRef(refsStmt, ftsStmt *sql.Stmt, ref reference.Reference) error {
	data, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("encoding reference %s: %w", ref.ID, err)
	}

	container := containerTitle(ref)
	_, err = refsStmt.Exec(
		ref.ID, string(ref.Type),
		nullableStringValue(ref.DOI), nullableStringValue(ref.URL),
		nullableYear(ref.Year()), nullableStringValue(container),
		string(data),
	)
	if err != nil {
		return fmt.Errorf("inserting ref %s: %w", ref.ID, err)
	}

	authorsText := formatAuthorsText(ref.Authors)
	_, err = ftsStmt.Exec(ref.ID, ref.Title.String(), container, authorsText, strconv.Itoa(ref.Year()))
	if err != nil {
		return fmt.Errorf("inserting fts for %s: %w", ref.ID, err)
	}
	return nil
}

// containerTitle returns the title of the containing work, if any.
func containerTitle(ref reference.Reference) string {
	if ref.IsPartOf == nil {
		return ""
	}
	return ref.IsPartOf.Title.String()
}

// formatAuthorsText creates a searchable text representation of authors.
func formatAuthorsText(authors []reference.Author) string {
	var names []string
	for _, a := range authors {
		names = append(names, a.DisplayName())
	}
	return strings.Join(names, ", ")
}

// GetByID retrieves a reference by its ID. Returns nil when not found.
func (d *DB) GetByID(id string) (*reference.Reference, error) {
	row := d.db.QueryRow(`SELECT ref_json FROM refs WHERE id = ?`, id)
	return scanReference(row)
}

// GetByDOI retrieves a reference by its DOI. Returns nil when not found.
func (d *DB) GetByDOI(doi string) (*reference.Reference, error) {
	row := d.db.QueryRow(`SELECT ref_json FROM refs WHERE doi = ?`, doi)
	return scanReference(row)
}

// Search performs a full-text search and returns matching references.
func (d *DB) Search(query string, limit int) ([]reference.Reference, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT ref_json
		FROM refs
		WHERE id IN (SELECT id FROM refs_fts WHERE refs_fts MATCH ?)
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// SearchField performs a search on a specific field.
func (d *DB) SearchField(field, value string, limit int) ([]reference.Reference, error) {
	var ftsQuery string

	switch field {
	case "author":
		ftsQuery = "authors_text:" + prepareAuthorQuery(value)
	case "title":
		ftsQuery = "title:" + prepareFTSQuery(value)
	case "container":
		ftsQuery = "container:" + prepareFTSQuery(value)
	default:
		return nil, fmt.Errorf("unknown search field: %s", field)
	}

	rows, err := d.db.Query(`
		SELECT ref_json
		FROM refs
		WHERE id IN (SELECT id FROM refs_fts WHERE refs_fts MATCH ?)
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", field, err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// SearchFilters contains optional filters for SearchWithFilters.
type SearchFilters struct {
	Keyword   string   // General keyword search across all fields
	Authors   []string // Author names to search for (AND logic, fuzzy prefix matching)
	YearFrom  int      // Minimum publication year (0 = no minimum)
	YearTo    int      // Maximum publication year (0 = no maximum)
	Title     string   // Search in title only (FTS)
	Container string   // Search in the containing work's title (FTS)
	Type      string   // Filter by work type (SQL, exact)
	DOI       string   // Exact DOI match (SQL)
}

// SearchWithFilters performs a search with multiple optional filters.
// Returns references matching ALL specified criteria (AND logic).
func (d *DB) SearchWithFilters(filters SearchFilters, limit int) ([]reference.Reference, error) {
	var ftsTerms []string
	var args []interface{}

	if filters.Keyword != "" {
		ftsTerms = append(ftsTerms, prepareFTSQuery(filters.Keyword))
	}
	if filters.Title != "" {
		ftsTerms = append(ftsTerms, "title:"+prepareFTSQuery(filters.Title))
	}
	if filters.Container != "" {
		ftsTerms = append(ftsTerms, "container:"+prepareFTSQuery(filters.Container))
	}
	for _, author := range filters.Authors {
		if author != "" {
			ftsTerms = append(ftsTerms, "authors_text:"+prepareAuthorQuery(author))
		}
	}

	var query string
	if len(ftsTerms) > 0 {
		ftsQuery := strings.Join(ftsTerms, " AND ")
		query = `SELECT ref_json
			FROM refs
			WHERE id IN (SELECT id FROM refs_fts WHERE refs_fts MATCH ?)`
		args = append(args, ftsQuery)
	} else {
		query = `SELECT ref_json FROM refs WHERE 1=1`
	}

	if filters.YearFrom > 0 {
		query += " AND pub_year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		query += " AND pub_year <= ?"
		args = append(args, filters.YearTo)
	}
	if filters.Type != "" {
		query += " AND work_type = ?"
		args = append(args, filters.Type)
	}
	if filters.DOI != "" {
		query += " AND doi = ?"
		args = append(args, filters.DOI)
	}

	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching with filters: %w", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// prepareAuthorQuery prepares an author name for FTS5 search with prefix matching.
// It adds a wildcard (*) to enable fuzzy matching (e.g., "Tim" matches "Timothy").
func prepareAuthorQuery(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return author
	}

	parts := strings.Fields(author)
	var terms []string
	for _, part := range parts {
		escaped := strings.ReplaceAll(part, "\"", "\"\"")
		terms = append(terms, "\""+escaped+"\"*")
	}

	// Use OR for multi-word author queries (match any part)
	return "(" + strings.Join(terms, " OR ") + ")"
}

// ListAll returns all references, optionally limited.
func (d *DB) ListAll(limit int) ([]reference.Reference, error) {
	query := `SELECT ref_json FROM refs ORDER BY id`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing refs: %w", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// Count returns the total number of references.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM refs").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReference(s scanner) (*reference.Reference, error) {
	var data string
	if err := s.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var ref reference.Reference
	if err := json.Unmarshal([]byte(data), &ref); err != nil {
		return nil, fmt.Errorf("parsing stored reference: %w", err)
	}
	return &ref, nil
}

func scanReferences(rows *sql.Rows) ([]reference.Reference, error) {
	var refs []reference.Reference
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			refs = append(refs, *ref)
		}
	}
	return refs, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableYear(y int) sql.NullInt64 {
	if y == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(y), Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	// FTS5 uses double quotes for phrase matching
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
