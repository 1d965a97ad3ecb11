// Package store persists settings, debts, bills and the run log in a local
// SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/snowball/internal/dates"
	"github.com/theirongolddev/snowball/internal/model"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a log entry does not exist.
var ErrNotFound = errors.New("not found")

// Store is a SQLite-backed State repository.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the XDG-compliant database location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "snowball", "snowball.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "snowball", "snowball.db")
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	log.WithField("path", dbPath).Debug("opened store")
	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full state. The bool is false when nothing has been saved
// yet, in which case the returned state is empty.
func (s *Store) Load() (model.State, bool, error) {
	var st model.State

	err := s.db.QueryRow("SELECT groceries, buffer, lump_rule FROM settings WHERE id = 1").
		Scan(&st.Settings.Groceries, &st.Settings.Buffer, &st.Settings.LumpRule)
	if errors.Is(err, sql.ErrNoRows) {
		return st, false, nil
	}
	if err != nil {
		return st, false, fmt.Errorf("loading settings: %w", err)
	}

	if st.Debts, err = s.loadDebts(); err != nil {
		return st, true, fmt.Errorf("loading debts: %w", err)
	}
	if st.Bills, err = s.loadBills(); err != nil {
		return st, true, fmt.Errorf("loading bills: %w", err)
	}
	if st.Log, err = s.Log(); err != nil {
		return st, true, fmt.Errorf("loading log: %w", err)
	}
	return st, true, nil
}

func (s *Store) loadDebts() ([]model.Debt, error) {
	rows, err := s.db.Query("SELECT name, balance, min_payment FROM debts ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	debts := []model.Debt{}
	for rows.Next() {
		var d model.Debt
		if err := rows.Scan(&d.Name, &d.Balance, &d.MinimumPayment); err != nil {
			return nil, err
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (s *Store) loadBills() ([]model.Bill, error) {
	rows, err := s.db.Query("SELECT name, amount, frequency, due_day FROM bills ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	bills := []model.Bill{}
	for rows.Next() {
		var b model.Bill
		var freq string
		if err := rows.Scan(&b.Name, &b.Amount, &freq, &b.DueDay); err != nil {
			return nil, err
		}
		b.Frequency = model.Frequency(freq)
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// Save replaces settings, debts and bills with those in st, keeping list
// order. The run log is not touched.
func (s *Store) Save(st model.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveLists(tx, st); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"debts": len(st.Debts), "bills": len(st.Bills)}).Debug("saved state")
	return nil
}

func saveLists(tx execer, st model.State) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := tx.Exec(`INSERT OR REPLACE INTO settings (id, groceries, buffer, lump_rule, updated_at)
		VALUES (1, ?, ?, ?, ?)`,
		st.Settings.Groceries, st.Settings.Buffer, st.Settings.LumpRule, now)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM debts"); err != nil {
		return err
	}
	for i, d := range st.Debts {
		_, err = tx.Exec(`INSERT INTO debts (position, name, balance, min_payment) VALUES (?, ?, ?, ?)`,
			i, d.Name, d.Balance, d.MinimumPayment)
		if err != nil {
			return fmt.Errorf("saving debt %q: %w", d.Name, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM bills"); err != nil {
		return err
	}
	for i, b := range st.Bills {
		_, err = tx.Exec(`INSERT INTO bills (position, name, amount, frequency, due_day) VALUES (?, ?, ?, ?, ?)`,
			i, b.Name, b.Amount, string(b.Frequency), b.DueDay)
		if err != nil {
			return fmt.Errorf("saving bill %q: %w", b.Name, err)
		}
	}
	return nil
}

// SaveAll saves st including its run log, replacing the stored log. Nothing
// is written unless every part succeeds.
func (s *Store) SaveAll(st model.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveLists(tx, st); err != nil {
		return err
	}
	if err := replaceLog(tx, st.Log); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"debts": len(st.Debts), "bills": len(st.Bills), "runs": len(st.Log)}).Debug("saved state and log")
	return nil
}

// Log returns every log entry, oldest first.
func (s *Store) Log() ([]model.LogEntry, error) {
	rows, err := s.db.Query(`SELECT id, run_date, pay, bills, groceries, extra, target, target_payment, created_at
		FROM run_log ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := []model.LogEntry{}
	for rows.Next() {
		var e model.LogEntry
		var runDate, createdAt string
		err := rows.Scan(&e.ID, &runDate, &e.Pay, &e.Bills, &e.Groceries, &e.Extra,
			&e.Target, &e.TargetPayment, &createdAt)
		if err != nil {
			return nil, err
		}
		e.RunDate, _ = time.ParseInLocation(dates.ISO, runDate, time.Local)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AppendLog adds e after the existing entries.
func (s *Store) AppendLog(e model.LogEntry) error {
	return appendLog(s.db, e)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func appendLog(db execer, e model.LogEntry) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := db.Exec(`INSERT INTO run_log
		(id, seq, run_date, pay, bills, groceries, extra, target, target_payment, created_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM run_log), ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.RunDate.Format(dates.ISO), e.Pay, e.Bills, e.Groceries, e.Extra,
		e.Target, e.TargetPayment, created.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("appending log entry: %w", err)
	}
	return nil
}

// ReplaceLog discards the stored log and writes entries in order.
func (s *Store) ReplaceLog(entries []model.LogEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := replaceLog(tx, entries); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceLog(tx execer, entries []model.LogEntry) error {
	if _, err := tx.Exec("DELETE FROM run_log"); err != nil {
		return err
	}
	for _, e := range entries {
		if err := appendLog(tx, e); err != nil {
			return err
		}
	}
	return nil
}

// DeleteLog removes a single log entry.
func (s *Store) DeleteLog(id string) error {
	res, err := s.db.Exec("DELETE FROM run_log WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("log entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// ClearLog removes every log entry.
func (s *Store) ClearLog() error {
	_, err := s.db.Exec("DELETE FROM run_log")
	return err
}
