package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"tse2e/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tse2e_runs (
		run_id CHAR(36) NOT NULL PRIMARY KEY,
		created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		total_cases INT NOT NULL,
		passed_cases INT NOT NULL,
		failed_cases INT NOT NULL,
		duration VARCHAR(64) NOT NULL,
		duration_seconds DOUBLE NOT NULL,
		workers INT NOT NULL,
		seed BIGINT NOT NULL,
		backend VARCHAR(64) NOT NULL,
		run_timestamp VARCHAR(64) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tse2e_failures (
		run_id CHAR(36) NOT NULL,
		position INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		error TEXT NOT NULL,
		duration VARCHAR(64) NOT NULL,
		resolved BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (run_id, position)
	)`,
}

// MySQLStorage keeps a history of runs in a MySQL database.
type MySQLStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenMySQL connects to the database named by dsn, creating the database
// and its tables if they don't exist yet.
func OpenMySQL(ctx context.Context, dsn string, logger *zap.Logger) (*MySQLStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid results DSN: %w", err)
	}
	if !isValidDatabaseName(cfg.DBName) {
		return nil, fmt.Errorf("invalid database name in results DSN: %q", cfg.DBName)
	}

	if err := ensureDatabase(ctx, cfg); err != nil {
		return nil, err
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure database connection: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.DBName, err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create results tables: %w", err)
		}
	}

	logger.Debug("connected to results database", zap.String("database", cfg.DBName), zap.String("addr", cfg.Addr))
	return &MySQLStorage{db: db, logger: logger}, nil
}

// ensureDatabase connects to the server without selecting a database and
// creates the configured one if needed.
func ensureDatabase(ctx context.Context, cfg *mysql.Config) error {
	serverCfg := cfg.Clone()
	serverCfg.DBName = ""

	connector, err := mysql.NewConnector(serverCfg)
	if err != nil {
		return fmt.Errorf("failed to configure database server connection: %w", err)
	}
	db := sql.OpenDB(connector)
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	if err := db.QueryRowContext(ctx, query, cfg.DBName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check database %s: %w", cfg.DBName, err)
	}
	if exists {
		return nil
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", cfg.DBName)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.DBName, err)
	}
	return nil
}

// isValidDatabaseName validates a database name before it is interpolated
// into DDL.
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	invalid := []string{"'", "\"", "`", ";", "--", "/*", "*/", " ", "DROP", "DELETE", "TRUNCATE"}
	upper := strings.ToUpper(name)
	for _, s := range invalid {
		if strings.Contains(upper, s) {
			return false
		}
	}
	return true
}

// Close releases the database connection.
func (s *MySQLStorage) Close() error {
	return s.db.Close()
}

// SaveOutput upserts the run and replaces its failure rows.
func (s *MySQLStorage) SaveOutput(output *domain.RunOutput) (err error) {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	m := output.Meta
	_, err = tx.ExecContext(ctx, `INSERT INTO tse2e_runs
		(run_id, total_cases, passed_cases, failed_cases, duration, duration_seconds, workers, seed, backend, run_timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			total_cases = VALUES(total_cases),
			passed_cases = VALUES(passed_cases),
			failed_cases = VALUES(failed_cases),
			duration = VALUES(duration),
			duration_seconds = VALUES(duration_seconds)`,
		m.RunID, m.TotalCases, m.PassedCases, m.FailedCases, m.Duration, m.DurationSeconds,
		m.Workers, m.Seed, m.Backend, m.Timestamp)
	if err != nil {
		return fmt.Errorf("save run %s: %w", m.RunID, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM tse2e_failures WHERE run_id = ?", m.RunID); err != nil {
		return fmt.Errorf("clear failures of run %s: %w", m.RunID, err)
	}
	for i, f := range output.Details {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO tse2e_failures (run_id, position, name, error, duration, resolved) VALUES (?, ?, ?, ?, ?, ?)",
			m.RunID, i, f.Name, f.Error, f.Duration, f.Resolved)
		if err != nil {
			return fmt.Errorf("save failure %s: %w", f.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", m.RunID, err)
	}
	s.logger.Debug("run recorded", zap.String("run_id", m.RunID), zap.Int("failures", len(output.Details)))
	return nil
}

// Load returns the most recently recorded run.
func (s *MySQLStorage) Load() (*domain.RunOutput, error) {
	ctx := context.Background()
	var m domain.RunMeta
	err := s.db.QueryRowContext(ctx, `SELECT run_id, total_cases, passed_cases, failed_cases, duration,
			duration_seconds, workers, seed, backend, run_timestamp
		FROM tse2e_runs ORDER BY created_at DESC LIMIT 1`).
		Scan(&m.RunID, &m.TotalCases, &m.PassedCases, &m.FailedCases, &m.Duration,
			&m.DurationSeconds, &m.Workers, &m.Seed, &m.Backend, &m.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no runs recorded")
	}
	if err != nil {
		return nil, fmt.Errorf("load latest run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT name, error, duration, resolved FROM tse2e_failures WHERE run_id = ? ORDER BY position", m.RunID)
	if err != nil {
		return nil, fmt.Errorf("load failures of run %s: %w", m.RunID, err)
	}
	defer rows.Close()

	output := &domain.RunOutput{Meta: m}
	for rows.Next() {
		var f domain.CaseFailure
		if err := rows.Scan(&f.Name, &f.Error, &f.Duration, &f.Resolved); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		output.Details = append(output.Details, f)
	}
	return output, rows.Err()
}
