// Package indexdb keeps a queryable sqlite index of incidents next to the
// compressed journal, so a run can be inspected without decompressing
// anything. Writes go through a single goroutine; the sim thread never
// blocks on the database.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite"

	"brickton.sim/internal/sim/npc"
)

type SQLiteIndex struct {
	db *sql.DB

	ch     chan npc.Incident
	wg     sync.WaitGroup
	closed atomic.Bool

	dropped atomic.Int64
}

func Open(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		// Buffered so a burst of incidents (a riot) doesn't stall the sim.
		ch: make(chan npc.Incident, 8192),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL suits the append-only workload; NORMAL is enough durability for
	// a secondary index.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS incidents (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			agent TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			z REAL NOT NULL,
			detail TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_incidents_kind ON incidents(kind);`,
		`CREATE INDEX IF NOT EXISTS idx_incidents_tick ON incidents(tick);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Record queues an incident for indexing. Never blocks; if the writer is
// behind, the incident is dropped and counted.
func (s *SQLiteIndex) Record(inc npc.Incident) {
	if s.closed.Load() {
		return
	}
	select {
	case s.ch <- inc:
	default:
		s.dropped.Add(1)
	}
}

// Dropped reports how many incidents were discarded under backpressure.
func (s *SQLiteIndex) Dropped() int64 { return s.dropped.Load() }

func (s *SQLiteIndex) loop() {
	for inc := range s.ch {
		_, _ = s.db.Exec(
			`INSERT INTO incidents (tick, kind, agent, x, y, z, detail) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			int64(inc.Tick), inc.Kind, inc.Agent, inc.Pos.X, inc.Pos.Y, inc.Pos.Z, inc.Detail,
		)
	}
}

// CountByKind tallies indexed incidents of one kind.
func (s *SQLiteIndex) CountByKind(kind string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM incidents WHERE kind = ?`, kind).Scan(&n)
	return n, err
}

func (s *SQLiteIndex) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	close(s.ch)
	s.wg.Wait()
	return s.db.Close()
}
