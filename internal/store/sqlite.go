package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ashureev/sketch-labs/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS threads (
		thread_id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		deleted INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS generation_nodes (
		node_id TEXT PRIMARY KEY,
		thread_id TEXT NOT NULL,
		parent_id TEXT,
		kind TEXT NOT NULL,
		prompt TEXT,
		code TEXT NOT NULL,
		png BLOB NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_nodes_thread ON generation_nodes(thread_id);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateNode appends a generation node. Retries with exponential backoff
// when SQLite reports the database busy, since node writes from
// concurrent threads share one file.
func (s *SQLiteStore) CreateNode(ctx context.Context, node *domain.GenerationNode) error {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		err := s.createNodeOnce(ctx, node)
		if err == nil {
			return nil
		}
		if isBusyError(err) && i < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<i)
			slog.Debug("CreateNode hit SQLITE_BUSY, retrying",
				"node_id", node.ID,
				"attempt", i+1,
				"delay", delay)
			time.Sleep(delay)
			continue
		}
		return fmt.Errorf("create node %s: %w", node.ID, err)
	}
	return nil
}

func (s *SQLiteStore) createNodeOnce(ctx context.Context, node *domain.GenerationNode) error {
	query := `
	INSERT INTO generation_nodes (node_id, thread_id, parent_id, kind, prompt, code, png, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	var parentID interface{}
	if node.ParentID != nil {
		parentID = *node.ParentID
	}
	var prompt interface{}
	if node.Prompt != nil {
		prompt = *node.Prompt
	}

	_, err := s.db.ExecContext(ctx, query,
		node.ID, node.ThreadID, parentID, string(node.Kind),
		prompt, node.Code, node.PNG, node.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert node: %w", err)
	}
	return nil
}

// GetNode retrieves a node by id.
func (s *SQLiteStore) GetNode(ctx context.Context, nodeID string) (*domain.GenerationNode, error) {
	query := `
		SELECT node_id, thread_id, parent_id, kind, prompt, code, png, created_at
		FROM generation_nodes WHERE node_id = ?`

	row := s.db.QueryRowContext(ctx, query, nodeID)
	node, err := scanNode(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan node row: %w", err)
	}
	return node, nil
}

// RetagFinal flips a node's kind from debug to final.
func (s *SQLiteStore) RetagFinal(ctx context.Context, nodeID string) error {
	query := `UPDATE generation_nodes SET kind = ? WHERE node_id = ?`
	result, err := s.db.ExecContext(ctx, query, string(domain.NodeFinal), nodeID)
	if err != nil {
		return fmt.Errorf("retag node: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("node %s not found", nodeID)
	}
	return nil
}

// GetThread retrieves a thread by id.
func (s *SQLiteStore) GetThread(ctx context.Context, threadID string) (*domain.Thread, error) {
	query := `SELECT thread_id, status, deleted, created_at, updated_at FROM threads WHERE thread_id = ?`
	row := s.db.QueryRowContext(ctx, query, threadID)

	var thread domain.Thread
	var status string
	var deleted int
	var createdAt, updatedAt int64

	err := row.Scan(&thread.ID, &status, &deleted, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan thread row: %w", err)
	}

	thread.Status = domain.ThreadStatus(status)
	thread.Deleted = deleted != 0
	thread.CreatedAt = time.Unix(createdAt, 0)
	thread.UpdatedAt = time.Unix(updatedAt, 0)
	return &thread, nil
}

// SetThreadStatus creates the thread if needed and sets its status.
func (s *SQLiteStore) SetThreadStatus(ctx context.Context, threadID string, status domain.ThreadStatus) error {
	now := time.Now().Unix()
	query := `
	INSERT INTO threads (thread_id, status, deleted, created_at, updated_at)
	VALUES (?, ?, 0, ?, ?)
	ON CONFLICT(thread_id) DO UPDATE SET
		status = excluded.status,
		updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query, threadID, string(status), now, now)
	if err != nil {
		return fmt.Errorf("set thread status: %w", err)
	}
	return nil
}

// DeleteThread soft-deletes a thread; its nodes remain inspectable.
func (s *SQLiteStore) DeleteThread(ctx context.Context, threadID string) error {
	query := `UPDATE threads SET deleted = 1, updated_at = ? WHERE thread_id = ?`
	result, err := s.db.ExecContext(ctx, query, time.Now().Unix(), threadID)
	if err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		slog.Warn("DeleteThread affected 0 rows", "thread_id", threadID)
	}
	return nil
}

// ListNodes returns a thread's nodes in persisted order.
func (s *SQLiteStore) ListNodes(ctx context.Context, threadID string) ([]*domain.GenerationNode, error) {
	query := `
		SELECT node_id, thread_id, parent_id, kind, prompt, code, png, created_at
		FROM generation_nodes WHERE thread_id = ? ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close node rows", "error", closeErr)
		}
	}()

	var nodes []*domain.GenerationNode
	for rows.Next() {
		node, err := scanNode(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan node row: %w", err)
		}
		nodes = append(nodes, node)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return nodes, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func scanNode(scan func(...interface{}) error) (*domain.GenerationNode, error) {
	var node domain.GenerationNode
	var parentID, prompt sql.NullString
	var kind string
	var createdAt int64

	err := scan(&node.ID, &node.ThreadID, &parentID, &kind, &prompt, &node.Code, &node.PNG, &createdAt)
	if err != nil {
		return nil, err
	}

	node.Kind = domain.NodeKind(kind)
	node.CreatedAt = time.Unix(createdAt, 0)
	if parentID.Valid {
		node.ParentID = &parentID.String
	}
	if prompt.Valid {
		node.Prompt = &prompt.String
	}
	return &node, nil
}

// isBusyError reports whether err is a SQLite concurrency error that
// warrants a retry.
func isBusyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
