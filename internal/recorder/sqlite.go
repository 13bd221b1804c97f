package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists update history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the update pipeline.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS update_cycles (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			run_id       TEXT NOT NULL,
			symbol       TEXT,
			label        TEXT,
			price        INTEGER,
			series_len   INTEGER,
			merge_action TEXT,
			alert_count  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_ts ON update_cycles(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			run_id     TEXT NOT NULL,
			kind       TEXT,
			period     INTEGER,
			price      INTEGER,
			ref_price  INTEGER,
			pct        REAL,
			message    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCycle(rec *CycleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO update_cycles
		(timestamp, run_id, symbol, label, price, series_len, merge_action, alert_count)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.RunID, rec.Symbol, rec.Label,
		rec.Price, rec.SeriesLen, rec.MergeAction, rec.AlertCount,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(rec *AlertRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := rec.Alert
	_, err := r.db.Exec(`INSERT INTO alerts
		(timestamp, run_id, kind, period, price, ref_price, pct, message)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.RunID, string(a.Kind), a.Period,
		a.Price, a.RefPrice, a.Pct, a.Message,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
