// Package store persists the tool catalog and the query history in a SQLite
// database. Embeddings are stored as fixed-width little-endian float32 blobs.
package store

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/pkg/vector"
	"github.com/doeshing/pls-go/internal/ports"
)

// SQLiteStore implements the ToolStore port.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open creates (or opens) the database at path and ensures the schema.
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS tools (
		name TEXT PRIMARY KEY,
		path TEXT,
		description TEXT,
		synopsis TEXT,
		examples TEXT,
		flags TEXT,
		embedding BLOB,
		source TEXT,
		updated_at INTEGER
	);`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT,
		commands TEXT,
		executed INTEGER,
		succeeded INTEGER,
		output_sample TEXT,
		timestamp INTEGER
	);`)
	return err
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// UpsertTool implements ports.ToolStore. Last write wins per tool name.
func (s *SQLiteStore) UpsertTool(tool domain.Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT OR REPLACE INTO tools
		(name, path, description, synopsis, examples, flags, embedding, source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tool.Name,
		tool.Path,
		tool.Description,
		tool.Synopsis,
		tool.Examples,
		tool.Flags,
		vector.Encode(tool.Embedding),
		string(tool.Source),
		time.Now().Unix(),
	)
	return err
}

// LoadAllTools implements ports.ToolStore. Rows with an undecodable embedding
// blob are returned without an embedding so the retriever can skip them.
func (s *SQLiteStore) LoadAllTools() ([]domain.Tool, error) {
	rows, err := s.db.Query(`SELECT name, path, description, synopsis, examples, flags, embedding, source
		FROM tools ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []domain.Tool
	for rows.Next() {
		var t domain.Tool
		var blob []byte
		var source string
		if err := rows.Scan(&t.Name, &t.Path, &t.Description, &t.Synopsis, &t.Examples, &t.Flags, &blob, &source); err != nil {
			return nil, err
		}
		t.Source = domain.DocSource(source)
		if emb, err := vector.Decode(blob); err == nil {
			t.Embedding = emb
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

// CountTools implements ports.ToolStore.
func (s *SQLiteStore) CountTools() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM tools").Scan(&n)
	return n, err
}

// AppendHistory implements ports.ToolStore.
func (s *SQLiteStore) AppendHistory(entry domain.HistoryEntry) error {
	commands, err := json.Marshal(entry.Commands)
	if err != nil {
		return err
	}
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`INSERT INTO history (query, commands, executed, succeeded, output_sample, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Query,
		string(commands),
		boolToInt(entry.Executed),
		boolToInt(entry.Succeeded),
		entry.OutputSample,
		ts.Unix(),
	)
	return err
}

// RecentHistory implements ports.ToolStore, newest first.
func (s *SQLiteStore) RecentHistory(limit int) ([]domain.HistoryEntry, error) {
	rows, err := s.db.Query(`SELECT query, commands, executed, succeeded, output_sample, timestamp
		FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		var commands string
		var executed, succeeded int
		var ts int64
		if err := rows.Scan(&e.Query, &commands, &executed, &succeeded, &e.OutputSample, &ts); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(commands), &e.Commands); err != nil {
			e.Commands = nil
		}
		e.Executed = executed == 1
		e.Succeeded = succeeded == 1
		e.Timestamp = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LastExecutedCommand implements ports.ToolStore. The second return value is
// false when no executed command exists yet.
func (s *SQLiteStore) LastExecutedCommand() (string, bool, error) {
	var commands string
	err := s.db.QueryRow(`SELECT commands FROM history WHERE executed = 1 ORDER BY id DESC LIMIT 1`).Scan(&commands)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	var decoded []string
	if err := json.Unmarshal([]byte(commands), &decoded); err != nil || len(decoded) == 0 {
		return "", false, nil
	}
	return decoded[0], true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.ToolStore = (*SQLiteStore)(nil)
