package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"

	"github.com/questdeck/questdeck/internal/adaptive"
	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/narrative"
	"github.com/questdeck/questdeck/internal/rubric"
	"github.com/questdeck/questdeck/internal/synth"
)

// SQLiteRepo implements Repo backed by a SQLite database.
type SQLiteRepo struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

// Open creates a SQLiteRepo at dsn, applying the recommended pragmas and
// running migration.
func Open(dsn string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	r := &SQLiteRepo{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return r, nil
}

// Close closes the database connection.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (r *SQLiteRepo) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		narrative  TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rubrics (
		session_id    TEXT NOT NULL REFERENCES sessions(id),
		stage         TEXT NOT NULL,
		subject       TEXT NOT NULL,
		build_order   INTEGER NOT NULL,
		skill         TEXT NOT NULL,
		story         TEXT NOT NULL,
		shape         TEXT NOT NULL,
		prompt        TEXT NOT NULL,
		adaptation    TEXT NOT NULL,
		generated     TEXT,
		performance   TEXT,
		completed_seq INTEGER,
		PRIMARY KEY (session_id, stage, subject)
	);
	CREATE INDEX IF NOT EXISTS idx_rubrics_completed
		ON rubrics(session_id, completed_seq);

	CREATE TABLE IF NOT EXISTS audit_events (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		kind       TEXT NOT NULL,
		code       TEXT NOT NULL,
		message    TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_session ON audit_events(session_id, id);

	CREATE TABLE IF NOT EXISTS synth_calls (
		id            TEXT PRIMARY KEY,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms    INTEGER NOT NULL,
		success       INTEGER NOT NULL,
		error_message TEXT,
		created_at    TEXT NOT NULL
	);`
	_, err := r.db.Exec(schema)
	return err
}

func (r *SQLiteRepo) newID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), r.entropy).String()
}

// SaveSession persists a session's narrative context.
func (r *SQLiteRepo) SaveSession(ctx context.Context, nc *narrative.Context) error {
	blob, err := json.Marshal(nc)
	if err != nil {
		return fmt.Errorf("marshal narrative: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, narrative, created_at) VALUES (?, ?, ?)`,
		nc.SessionID, string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetSession loads a session's narrative context.
func (r *SQLiteRepo) GetSession(ctx context.Context, sessionID string) (*narrative.Context, error) {
	var blob string
	err := r.db.QueryRowContext(ctx,
		`SELECT narrative FROM sessions WHERE id = ?`, sessionID).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	var nc narrative.Context
	if err := json.Unmarshal([]byte(blob), &nc); err != nil {
		return nil, fmt.Errorf("unmarshal narrative: %w", err)
	}
	return &nc, nil
}

// SaveRubrics persists a freshly built rubric set in build order.
func (r *SQLiteRepo) SaveRubrics(ctx context.Context, rubrics []*rubric.DataRubric) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i, rb := range rubrics {
		cols, err := marshalRubric(rb)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rubrics
				(session_id, stage, subject, build_order, skill, story, shape, prompt, adaptation, generated, performance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rb.SessionID, string(rb.Stage), string(rb.Subject), i,
			cols.skill, cols.story, cols.shape, cols.prompt, cols.adaptation,
			cols.generated, cols.performance)
		if err != nil {
			return fmt.Errorf("insert rubric %s: %w", rb.Key(), err)
		}
	}

	return tx.Commit()
}

// GetRubrics loads the full rubric set for a session in build order.
func (r *SQLiteRepo) GetRubrics(ctx context.Context, sessionID string) ([]*rubric.DataRubric, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, stage, subject, skill, story, shape, prompt, adaptation, generated, performance
		FROM rubrics WHERE session_id = ? ORDER BY build_order`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query rubrics: %w", err)
	}
	defer rows.Close()

	var result []*rubric.DataRubric
	for rows.Next() {
		rb, err := scanRubric(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rb)
	}
	return result, rows.Err()
}

// UpdateRubric persists an adaptation or generated-content write.
func (r *SQLiteRepo) UpdateRubric(ctx context.Context, rb *rubric.DataRubric) error {
	cols, err := marshalRubric(rb)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE rubrics SET adaptation = ?, generated = ?, performance = ?
		WHERE session_id = ? AND stage = ? AND subject = ?`,
		cols.adaptation, cols.generated, cols.performance,
		rb.SessionID, string(rb.Stage), string(rb.Subject))
	if err != nil {
		return fmt.Errorf("update rubric %s: %w", rb.Key(), err)
	}
	return requireRow(res, rb)
}

// CompleteRubric persists a performance write and assigns the next
// completion sequence number within the session.
func (r *SQLiteRepo) CompleteRubric(ctx context.Context, rb *rubric.DataRubric) error {
	cols, err := marshalRubric(rb)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE rubrics SET performance = ?, completed_seq =
			(SELECT COALESCE(MAX(completed_seq), 0) + 1 FROM rubrics WHERE session_id = ?)
		WHERE session_id = ? AND stage = ? AND subject = ?`,
		cols.performance, rb.SessionID,
		rb.SessionID, string(rb.Stage), string(rb.Subject))
	if err != nil {
		return fmt.Errorf("complete rubric %s: %w", rb.Key(), err)
	}
	return requireRow(res, rb)
}

// CompletedMetrics returns completed-unit metrics in completion order.
func (r *SQLiteRepo) CompletedMetrics(ctx context.Context, sessionID string) ([]adaptive.Metrics, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT performance FROM rubrics
		WHERE session_id = ? AND completed_seq IS NOT NULL
		ORDER BY completed_seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query completed metrics: %w", err)
	}
	defer rows.Close()

	var result []adaptive.Metrics
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var m adaptive.Metrics
		if err := json.Unmarshal([]byte(blob), &m); err != nil {
			return nil, fmt.Errorf("unmarshal metrics: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// AppendAudit records an audit event, assigning its ID and timestamp.
func (r *SQLiteRepo) AppendAudit(ctx context.Context, ev AuditEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, session_id, kind, code, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.newID(), ev.SessionID, ev.Kind, ev.Code, ev.Message,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListAudit returns a session's audit trail in append order. ULIDs sort
// lexicographically by creation time.
func (r *SQLiteRepo) ListAudit(ctx context.Context, sessionID string) ([]AuditEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, kind, code, message, created_at
		FROM audit_events WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var result []AuditEvent
	for rows.Next() {
		var ev AuditEvent
		var created string
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Kind, &ev.Code, &ev.Message, &created); err != nil {
			return nil, err
		}
		ev.CreatedAt, _ = time.Parse(time.RFC3339, created)
		result = append(result, ev)
	}
	return result, rows.Err()
}

// RecordSynthCall records one synthesizer call.
func (r *SQLiteRepo) RecordSynthCall(ctx context.Context, rec synth.CallRecord) error {
	success := 0
	if rec.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO synth_calls
			(id, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.newID(), rec.Provider, rec.Model, rec.Purpose,
		rec.InputTokens, rec.OutputTokens, rec.LatencyMs, success, rec.ErrorMessage,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert synth call: %w", err)
	}
	return nil
}

type rubricColumns struct {
	skill, story, shape, prompt, adaptation string
	generated, performance                  sql.NullString
}

func marshalRubric(rb *rubric.DataRubric) (*rubricColumns, error) {
	cols := &rubricColumns{}
	for _, f := range []struct {
		dst *string
		src any
	}{
		{&cols.skill, rb.Skill},
		{&cols.story, rb.Story},
		{&cols.shape, rb.Shape},
		{&cols.prompt, rb.Prompt},
		{&cols.adaptation, rb.Adaptation},
	} {
		blob, err := json.Marshal(f.src)
		if err != nil {
			return nil, fmt.Errorf("marshal rubric %s: %w", rb.Key(), err)
		}
		*f.dst = string(blob)
	}
	if rb.Generated != nil {
		blob, err := json.Marshal(rb.Generated)
		if err != nil {
			return nil, fmt.Errorf("marshal generated content %s: %w", rb.Key(), err)
		}
		cols.generated = sql.NullString{String: string(blob), Valid: true}
	}
	if rb.Performance != nil {
		blob, err := json.Marshal(rb.Performance)
		if err != nil {
			return nil, fmt.Errorf("marshal performance %s: %w", rb.Key(), err)
		}
		cols.performance = sql.NullString{String: string(blob), Valid: true}
	}
	return cols, nil
}

func scanRubric(rows *sql.Rows) (*rubric.DataRubric, error) {
	rb := &rubric.DataRubric{}
	var stage, subject string
	var skill, story, shape, prompt, adaptation string
	var generated, performance sql.NullString

	if err := rows.Scan(&rb.SessionID, &stage, &subject,
		&skill, &story, &shape, &prompt, &adaptation,
		&generated, &performance); err != nil {
		return nil, fmt.Errorf("scan rubric: %w", err)
	}
	rb.Stage = catalog.Stage(stage)
	rb.Subject = catalog.Subject(subject)

	for _, f := range []struct {
		blob string
		dst  any
	}{
		{skill, &rb.Skill},
		{story, &rb.Story},
		{shape, &rb.Shape},
		{prompt, &rb.Prompt},
		{adaptation, &rb.Adaptation},
	} {
		if err := json.Unmarshal([]byte(f.blob), f.dst); err != nil {
			return nil, fmt.Errorf("unmarshal rubric %s: %w", rb.Key(), err)
		}
	}
	if generated.Valid {
		rb.Generated = &rubric.GeneratedContent{}
		if err := json.Unmarshal([]byte(generated.String), rb.Generated); err != nil {
			return nil, fmt.Errorf("unmarshal generated content %s: %w", rb.Key(), err)
		}
	}
	if performance.Valid {
		rb.Performance = &adaptive.Metrics{}
		if err := json.Unmarshal([]byte(performance.String), rb.Performance); err != nil {
			return nil, fmt.Errorf("unmarshal performance %s: %w", rb.Key(), err)
		}
	}
	return rb, nil
}

func requireRow(res sql.Result, rb *rubric.DataRubric) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("rubric %s: %w", rb.Key(), ErrNotFound)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUESTDECK_DB environment variable
// 2. $XDG_DATA_HOME/questdeck/questdeck.db
// 3. ~/.local/share/questdeck/questdeck.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUESTDECK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "questdeck", "questdeck.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it does not exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
