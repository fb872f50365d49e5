package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	driver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
	"github.com/cognicore/gematrix/pkg/gematrix/internalerr"
	"github.com/cognicore/gematrix/pkg/gematrix/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema when missing.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &sqliteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// cipherColumns are the per-cipher score columns, in score order.
var cipherColumns = cipher.Names()

func initSchema(ctx context.Context, db *sql.DB) error {
	var cols strings.Builder
	for _, name := range cipherColumns {
		fmt.Fprintf(&cols, "\t%s INTEGER NOT NULL DEFAULT 0,\n", name)
	}

	schema := `
CREATE TABLE IF NOT EXISTS phrases (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	phrase TEXT UNIQUE NOT NULL,
` + cols.String() + `	approved INTEGER NOT NULL DEFAULT 1,
	created_at TEXT,
	updated_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_phrases_english ON phrases(english_gematria);
CREATE INDEX IF NOT EXISTS idx_phrases_simple ON phrases(simple_gematria);
CREATE INDEX IF NOT EXISTS idx_phrases_jewish ON phrases(jewish_gematria);

CREATE TABLE IF NOT EXISTS news_sources (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	base_url TEXT,
	rss_url TEXT,
	locale TEXT NOT NULL DEFAULT 'en',
	enabled INTEGER NOT NULL DEFAULT 1,
	weight INTEGER NOT NULL DEFAULT 100,
	last_checked_at TEXT,
	last_error TEXT,
	created_at TEXT,
	UNIQUE(name, rss_url)
);

CREATE TABLE IF NOT EXISTS news_headlines (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	news_source_id INTEGER REFERENCES news_sources(id) ON DELETE SET NULL,
	headline TEXT NOT NULL,
	headline_normalized TEXT NOT NULL,
	url TEXT,
	url_hash TEXT UNIQUE NOT NULL,
	published_at TEXT,
	headline_date TEXT NOT NULL,
	locale TEXT NOT NULL DEFAULT 'en',
	english_gematria INTEGER NOT NULL DEFAULT 0,
	scores TEXT,
	created_at TEXT,
	updated_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_headlines_normalized ON news_headlines(headline_normalized);
CREATE INDEX IF NOT EXISTS idx_headlines_source_date ON news_headlines(news_source_id, headline_date);

CREATE TABLE IF NOT EXISTS crawler_runs (
	id TEXT PRIMARY KEY,
	crawler_name TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'running',
	started_at TEXT,
	finished_at TEXT,
	current_item TEXT,
	processed_count INTEGER NOT NULL DEFAULT 0,
	inserted_count INTEGER NOT NULL DEFAULT 0,
	error_message TEXT,
	meta TEXT
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	phraseSelect = "SELECT id, phrase, " + strings.Join(cipherColumns, ", ") + ", approved, created_at, updated_at FROM phrases"
	phraseUpsert = buildPhraseUpsert()
)

func buildPhraseUpsert() string {
	cols := append([]string{"phrase"}, cipherColumns...)
	cols = append(cols, "approved", "created_at", "updated_at")
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")

	updates := make([]string, 0, len(cipherColumns)+2)
	for _, c := range cipherColumns {
		updates = append(updates, c+"=excluded."+c)
	}
	updates = append(updates, "approved=excluded.approved", "updated_at=excluded.updated_at")

	return fmt.Sprintf(`INSERT INTO phrases (%s) VALUES (%s)
ON CONFLICT(phrase) DO UPDATE SET %s`,
		strings.Join(cols, ", "), placeholders, strings.Join(updates, ", "))
}

func upsertPhrase(ctx context.Context, ex execer, p store.Phrase, now time.Time) (bool, error) {
	var id int64
	err := ex.QueryRowContext(ctx, `SELECT id FROM phrases WHERE phrase = ?`, p.Phrase).Scan(&id)
	created := errors.Is(err, sql.ErrNoRows)
	if err != nil && !created {
		return false, err
	}

	args := make([]any, 0, len(cipherColumns)+4)
	args = append(args, p.Phrase)
	for _, v := range p.Scores {
		args = append(args, v)
	}
	stamp := formatTime(now)
	args = append(args, boolInt(p.Approved), stamp, stamp)

	if _, err := ex.ExecContext(ctx, phraseUpsert, args...); err != nil {
		return false, err
	}
	return created, nil
}

// UpsertPhrase inserts or rescores a phrase
func (s *sqliteStore) UpsertPhrase(ctx context.Context, p store.Phrase) (bool, error) {
	if p.Phrase == "" {
		return false, fmt.Errorf("%w: empty phrase", internalerr.ErrInvalidInput)
	}
	return upsertPhrase(ctx, s.db, p, s.now())
}

// UpsertPhrases writes a batch of phrases in a single transaction
func (s *sqliteStore) UpsertPhrases(ctx context.Context, ps []store.Phrase) error {
	if len(ps) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now()
	for _, p := range ps {
		if p.Phrase == "" {
			continue
		}
		if _, err := upsertPhrase(ctx, tx, p, now); err != nil {
			return fmt.Errorf("upsert %q: %w", p.Phrase, err)
		}
	}
	return tx.Commit()
}

// GetPhrase loads a phrase by its text
func (s *sqliteStore) GetPhrase(ctx context.Context, phrase string) (store.Phrase, error) {
	rows, err := s.db.QueryContext(ctx, phraseSelect+" WHERE phrase = ?", phrase)
	if err != nil {
		return store.Phrase{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return store.Phrase{}, err
		}
		return store.Phrase{}, fmt.Errorf("phrase %q: %w", phrase, internalerr.ErrNotFound)
	}
	return scanPhrase(rows)
}

// DeletePhrase removes a phrase; missing phrases are not an error
func (s *sqliteStore) DeletePhrase(ctx context.Context, phrase string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM phrases WHERE phrase = ?`, phrase)
	return err
}

// FindPhrases returns approved phrases matching any lexical or score condition
func (s *sqliteStore) FindPhrases(ctx context.Context, q store.PhraseQuery) ([]store.Phrase, error) {
	var conds []string
	var args []any

	for _, token := range q.Contains {
		if token == "" {
			continue
		}
		conds = append(conds, `phrase LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(token)+"%")
	}

	ciphers := make([]cipher.Cipher, 0, len(q.Scores))
	for c := range q.Scores {
		if c.Valid() {
			ciphers = append(ciphers, c)
		}
	}
	sort.Slice(ciphers, func(i, j int) bool { return ciphers[i] < ciphers[j] })
	for _, c := range ciphers {
		conds = append(conds, c.String()+" = ?")
		args = append(args, q.Scores[c])
	}

	if len(conds) == 0 {
		return nil, nil
	}

	query := phraseSelect + " WHERE approved = 1 AND (" + strings.Join(conds, " OR ") + ")"
	if q.Exclude != "" {
		query += " AND phrase != ?"
		args = append(args, q.Exclude)
	}
	query += " ORDER BY english_gematria, phrase"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Phrase
	for rows.Next() {
		p, err := scanPhrase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountPhrases returns the number of stored phrases
func (s *sqliteStore) CountPhrases(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM phrases`).Scan(&n)
	return n, err
}

func scanPhrase(rows *sql.Rows) (store.Phrase, error) {
	var p store.Phrase
	var approved int
	var created, updated sql.NullString

	dest := make([]any, 0, len(cipherColumns)+5)
	dest = append(dest, &p.ID, &p.Phrase)
	for i := range p.Scores {
		dest = append(dest, &p.Scores[i])
	}
	dest = append(dest, &approved, &created, &updated)

	if err := rows.Scan(dest...); err != nil {
		return store.Phrase{}, err
	}
	p.Approved = approved != 0
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

// EnsureSource returns the source named s.Name, creating it when absent
func (s *sqliteStore) EnsureSource(ctx context.Context, src store.Source) (store.Source, bool, error) {
	if src.Name == "" {
		return store.Source{}, false, fmt.Errorf("%w: source name required", internalerr.ErrInvalidInput)
	}

	existing, err := s.sourceByName(ctx, src.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, internalerr.ErrNotFound) {
		return store.Source{}, false, err
	}

	res, err := s.db.ExecContext(ctx, `
INSERT INTO news_sources (name, base_url, rss_url, locale, enabled, weight, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		src.Name, nullString(src.BaseURL), nullString(src.RSSURL), src.Locale,
		boolInt(src.Enabled), src.Weight, formatTime(s.now()))
	if err != nil {
		return store.Source{}, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return store.Source{}, false, err
	}

	created, err := s.sourceByID(ctx, id)
	return created, true, err
}

const sourceSelect = `SELECT id, name, base_url, rss_url, locale, enabled, weight, last_checked_at, last_error, created_at FROM news_sources`

func (s *sqliteStore) sourceByName(ctx context.Context, name string) (store.Source, error) {
	return s.loadSource(ctx, sourceSelect+" WHERE name = ? ORDER BY id LIMIT 1", name)
}

func (s *sqliteStore) sourceByID(ctx context.Context, id int64) (store.Source, error) {
	return s.loadSource(ctx, sourceSelect+" WHERE id = ?", id)
}

func (s *sqliteStore) loadSource(ctx context.Context, query string, args ...any) (store.Source, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return store.Source{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return store.Source{}, err
		}
		return store.Source{}, internalerr.ErrNotFound
	}
	return scanSource(rows)
}

func scanSource(rows *sql.Rows) (store.Source, error) {
	var src store.Source
	var baseURL, rssURL, checked, lastErr, created sql.NullString
	var enabled int
	if err := rows.Scan(&src.ID, &src.Name, &baseURL, &rssURL, &src.Locale, &enabled, &src.Weight, &checked, &lastErr, &created); err != nil {
		return store.Source{}, err
	}
	src.BaseURL = baseURL.String
	src.RSSURL = rssURL.String
	src.Enabled = enabled != 0
	src.LastCheckedAt = parseTime(checked)
	src.LastError = lastErr.String
	src.CreatedAt = parseTime(created)
	return src, nil
}

// ListSources returns sources ordered by weight descending, then name
func (s *sqliteStore) ListSources(ctx context.Context, f store.SourceFilter) ([]store.Source, error) {
	var conds []string
	var args []any
	if f.EnabledOnly {
		conds = append(conds, "enabled = 1")
	}
	if len(f.IDs) > 0 {
		conds = append(conds, "id IN ("+strings.TrimSuffix(strings.Repeat("?,", len(f.IDs)), ",")+")")
		for _, id := range f.IDs {
			args = append(args, id)
		}
	}

	query := sourceSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY weight DESC, name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, rows.Err()
}

// UpdateSourceStatus records the outcome of the latest fetch
func (s *sqliteStore) UpdateSourceStatus(ctx context.Context, id int64, checkedAt time.Time, lastError string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE news_sources SET last_checked_at = ?, last_error = ? WHERE id = ?`,
		formatTime(checkedAt), nullString(lastError), id)
	return err
}

// UpsertHeadline inserts or updates a headline keyed by url_hash
func (s *sqliteStore) UpsertHeadline(ctx context.Context, h store.Headline) (bool, error) {
	if h.URLHash == "" {
		return false, fmt.Errorf("%w: url hash required", internalerr.ErrInvalidInput)
	}
	scores, err := json.Marshal(h.Scores)
	if err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM news_headlines WHERE url_hash = ?`, h.URLHash).Scan(&id)
	created := errors.Is(err, sql.ErrNoRows)
	if err != nil && !created {
		return false, err
	}

	stamp := formatTime(s.now())
	_, err = tx.ExecContext(ctx, `
INSERT INTO news_headlines (news_source_id, headline, headline_normalized, url, url_hash,
	published_at, headline_date, locale, english_gematria, scores, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(url_hash) DO UPDATE SET
	news_source_id=excluded.news_source_id,
	headline=excluded.headline,
	headline_normalized=excluded.headline_normalized,
	url=excluded.url,
	published_at=excluded.published_at,
	headline_date=excluded.headline_date,
	locale=excluded.locale,
	english_gematria=excluded.english_gematria,
	scores=excluded.scores,
	updated_at=excluded.updated_at`,
		nullID(h.SourceID), h.Headline, h.Normalized, nullString(h.URL), h.URLHash,
		formatTime(h.PublishedAt), h.HeadlineDate, h.Locale,
		h.Scores.Get(cipher.EnglishGematria), string(scores), stamp, stamp)
	if err != nil {
		return false, err
	}
	return created, tx.Commit()
}

// HeadlinesAfter pages through headlines in id order
func (s *sqliteStore) HeadlinesAfter(ctx context.Context, afterID int64, limit int) ([]store.Headline, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT h.id, h.news_source_id, COALESCE(src.name, ''), h.headline, h.headline_normalized, h.url,
	h.url_hash, h.published_at, h.headline_date, h.locale, h.scores, h.created_at, h.updated_at
FROM news_headlines h
LEFT JOIN news_sources src ON src.id = h.news_source_id
WHERE h.id > ?
ORDER BY h.id
LIMIT ?`, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Headline
	for rows.Next() {
		var h store.Headline
		var sourceID sql.NullInt64
		var url, published, scores, created, updated sql.NullString
		if err := rows.Scan(&h.ID, &sourceID, &h.SourceName, &h.Headline, &h.Normalized, &url,
			&h.URLHash, &published, &h.HeadlineDate, &h.Locale, &scores, &created, &updated); err != nil {
			return nil, err
		}
		h.SourceID = sourceID.Int64
		h.URL = url.String
		h.PublishedAt = parseTime(published)
		h.CreatedAt = parseTime(created)
		h.UpdatedAt = parseTime(updated)
		if scores.Valid && scores.String != "" {
			if err := json.Unmarshal([]byte(scores.String), &h.Scores); err != nil {
				return nil, fmt.Errorf("headline %d scores: %w", h.ID, err)
			}
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// HashTaken reports whether another headline already owns hash
func (s *sqliteStore) HashTaken(ctx context.Context, hash string, exceptID int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM news_headlines WHERE url_hash = ? AND id != ?`, hash, exceptID).Scan(&n)
	return n > 0, err
}

// UpdateHeadline rewrites the cleaned text, hash and scores of a headline
func (s *sqliteStore) UpdateHeadline(ctx context.Context, h store.Headline) error {
	scores, err := json.Marshal(h.Scores)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE news_headlines
SET headline = ?, headline_normalized = ?, url_hash = ?, english_gematria = ?, scores = ?, updated_at = ?
WHERE id = ?`,
		h.Headline, h.Normalized, h.URLHash, h.Scores.Get(cipher.EnglishGematria), string(scores),
		formatTime(s.now()), h.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("headline %d: url hash %s: %w", h.ID, h.URLHash, internalerr.ErrDuplicate)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("headline %d: %w", h.ID, internalerr.ErrNotFound)
	}
	return nil
}

// DeleteHeadline removes a headline by id
func (s *sqliteStore) DeleteHeadline(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM news_headlines WHERE id = ?`, id)
	return err
}

// NormalizedInUse reports whether a headline still carries this normalized text
func (s *sqliteStore) NormalizedInUse(ctx context.Context, normalized string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM news_headlines WHERE headline_normalized = ?`, normalized).Scan(&n)
	return n > 0, err
}

// CountHeadlines returns the number of stored headlines
func (s *sqliteStore) CountHeadlines(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news_headlines`).Scan(&n)
	return n, err
}

// CreateRun inserts a crawler run
func (s *sqliteStore) CreateRun(ctx context.Context, r store.CrawlerRun) error {
	meta, err := json.Marshal(r.Meta)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO crawler_runs (id, crawler_name, status, started_at, finished_at, current_item,
	processed_count, inserted_count, error_message, meta)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CrawlerName, r.Status, formatTime(r.StartedAt), formatTime(r.FinishedAt),
		nullString(r.CurrentItem), r.Processed, r.Inserted, nullString(r.ErrorMessage), string(meta))
	return err
}

// UpdateRun rewrites the mutable fields of a run
func (s *sqliteStore) UpdateRun(ctx context.Context, r store.CrawlerRun) error {
	meta, err := json.Marshal(r.Meta)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE crawler_runs
SET status = ?, finished_at = ?, current_item = ?, processed_count = ?, inserted_count = ?,
	error_message = ?, meta = ?
WHERE id = ?`,
		r.Status, formatTime(r.FinishedAt), nullString(r.CurrentItem), r.Processed, r.Inserted,
		nullString(r.ErrorMessage), string(meta), r.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", r.ID, internalerr.ErrNotFound)
	}
	return nil
}

// GetRun loads a crawler run by id
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.CrawlerRun, error) {
	var r store.CrawlerRun
	var started, finished, current, errMsg, meta sql.NullString
	err := s.db.QueryRowContext(ctx, `
SELECT id, crawler_name, status, started_at, finished_at, current_item,
	processed_count, inserted_count, error_message, meta
FROM crawler_runs WHERE id = ?`, id).Scan(
		&r.ID, &r.CrawlerName, &r.Status, &started, &finished, &current,
		&r.Processed, &r.Inserted, &errMsg, &meta)
	if errors.Is(err, sql.ErrNoRows) {
		return store.CrawlerRun{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.CrawlerRun{}, err
	}
	r.StartedAt = parseTime(started)
	r.FinishedAt = parseTime(finished)
	r.CurrentItem = current.String
	r.ErrorMessage = errMsg.String
	if meta.Valid && meta.String != "" {
		if err := json.Unmarshal([]byte(meta.String), &r.Meta); err != nil {
			return store.CrawlerRun{}, fmt.Errorf("run %s meta: %w", id, err)
		}
	}
	return r, nil
}

func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v sql.NullString) time.Time {
	if !v.Valid || v.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func isUniqueViolation(err error) bool {
	var se *driver.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(se.Error(), "UNIQUE")
	}
	return false
}
