package repository

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// MetricsRepository records which commands users invoke
type MetricsRepository interface {
	RecordCommandUsage(userID int64, command string) error
	UsageReport() (UsageReport, error)
	Close() error
}

// CommandCount is the usage count for one command
type CommandCount struct {
	Command string
	Count   int
}

// UsageReport summarizes recorded command usage
type UsageReport struct {
	TotalUsers    int
	TotalCommands int
	Commands      []CommandCount // Sorted by count, most used first
}

// SQLiteMetricsRepository implements MetricsRepository using SQLite
type SQLiteMetricsRepository struct {
	db     *sql.DB
	DBPath string
}

// NewSQLiteMetricsRepository creates and initializes a new SQLite metrics
// repository.
func NewSQLiteMetricsRepository(dbPath string) (*SQLiteMetricsRepository, error) {
	if dbPath == "" {
		dbDir := "data"
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %v", err)
		}
		dbPath = filepath.Join(dbDir, "metrics.db")
	} else if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %v", err)
		}
	}

	log.Printf("Opening metrics database at %s", dbPath)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS command_usage (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		command TEXT NOT NULL,
		used_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_command ON command_usage(command);
	CREATE INDEX IF NOT EXISTS idx_user ON command_usage(user_id);`

	_, err = db.Exec(createTableSQL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return &SQLiteMetricsRepository{
		db:     db,
		DBPath: dbPath,
	}, nil
}

// Close closes the database connection
func (r *SQLiteMetricsRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// RecordCommandUsage stores one command invocation
func (r *SQLiteMetricsRepository) RecordCommandUsage(userID int64, command string) error {
	_, err := r.db.Exec(
		"INSERT INTO command_usage(user_id, command) VALUES(?, ?)",
		userID, command,
	)
	if err != nil {
		return fmt.Errorf("failed to record usage of %s: %v", command, err)
	}
	return nil
}

// UsageReport aggregates recorded usage across all users
func (r *SQLiteMetricsRepository) UsageReport() (UsageReport, error) {
	var report UsageReport

	err := r.db.QueryRow("SELECT COUNT(DISTINCT user_id), COUNT(*) FROM command_usage").
		Scan(&report.TotalUsers, &report.TotalCommands)
	if err != nil {
		return UsageReport{}, fmt.Errorf("failed to count users: %v", err)
	}

	rows, err := r.db.Query(`
		SELECT command, COUNT(*) AS uses
		FROM command_usage
		GROUP BY command
		ORDER BY uses DESC, command`)
	if err != nil {
		return UsageReport{}, fmt.Errorf("failed to query command usage: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc CommandCount
		if err := rows.Scan(&cc.Command, &cc.Count); err != nil {
			return UsageReport{}, fmt.Errorf("failed to scan row: %v", err)
		}
		report.Commands = append(report.Commands, cc)
	}
	if err := rows.Err(); err != nil {
		return UsageReport{}, fmt.Errorf("error during row iteration: %v", err)
	}

	return report, nil
}
