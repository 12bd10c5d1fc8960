package replay

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store persists replay sessions in SQLite
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies
type Store struct {
	db *sql.DB
}

// SessionInfo summarizes a stored session for listings
type SessionInfo struct {
	ID          int64
	Header      Header
	RecordCount int
}

// Open creates or opens a replay database at the given path
// Parent directories are created if needed; the schema is migrated in place
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("replay: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("replay: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("replay: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("replay: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			fixed_dt_ns INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS records (
			session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (session_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_records_tick ON records(session_id, tick);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSession writes a session and returns its id
func (s *Store) SaveSession(sess Session) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("replay: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO sessions (fixed_dt_ns, seed, created_at) VALUES (?, ?, ?)`,
		int64(sess.Header.FixedDt), int64(sess.Header.Seed), sess.Header.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("replay: insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("replay: session id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO records (session_id, seq, tick, payload) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("replay: prepare records: %w", err)
	}
	defer stmt.Close()

	for seq, rec := range sess.Records {
		if _, err := stmt.Exec(id, seq, int64(rec.Tick), []byte(rec.Payload)); err != nil {
			return 0, fmt.Errorf("replay: insert record %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("replay: commit: %w", err)
	}
	return id, nil
}

// LoadSession reads a full session by id
func (s *Store) LoadSession(id int64) (Session, error) {
	var sess Session
	var dtNs, seed int64
	var created time.Time

	err := s.db.QueryRow(
		`SELECT fixed_dt_ns, seed, created_at FROM sessions WHERE id = ?`, id,
	).Scan(&dtNs, &seed, &created)
	if err != nil {
		return sess, fmt.Errorf("replay: load session %d: %w", id, err)
	}
	sess.Header = Header{
		FixedDt:   time.Duration(dtNs),
		Seed:      uint64(seed),
		CreatedAt: created,
	}

	rows, err := s.db.Query(
		`SELECT tick, payload FROM records WHERE session_id = ? ORDER BY seq`, id)
	if err != nil {
		return sess, fmt.Errorf("replay: load records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tick int64
		var payload []byte
		if err := rows.Scan(&tick, &payload); err != nil {
			return sess, fmt.Errorf("replay: scan record: %w", err)
		}
		sess.Records = append(sess.Records, Record{Tick: uint64(tick), Payload: payload})
	}
	return sess, rows.Err()
}

// ListSessions returns stored sessions, newest first
func (s *Store) ListSessions() ([]SessionInfo, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.fixed_dt_ns, s.seed, s.created_at, COUNT(r.session_id)
		FROM sessions s
		LEFT JOIN records r ON r.session_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("replay: list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var dtNs, seed int64
		if err := rows.Scan(&info.ID, &dtNs, &seed, &info.Header.CreatedAt, &info.RecordCount); err != nil {
			return nil, fmt.Errorf("replay: scan session: %w", err)
		}
		info.Header.FixedDt = time.Duration(dtNs)
		info.Header.Seed = uint64(seed)
		out = append(out, info)
	}
	return out, rows.Err()
}

// DeleteSession removes a session and its records
func (s *Store) DeleteSession(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM records WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("replay: delete records: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("replay: delete session: %w", err)
	}
	return nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}
