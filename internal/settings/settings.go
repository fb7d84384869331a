// Package settings persists the dashboard's key/value settings in SQLite.
package settings

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("setting not found")

// Setting is one stored key/value pair.
type Setting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Repository reads and writes settings.
type Repository struct {
	dbConn *sqlx.DB
	now    func() time.Time
}

// Open connects to the SQLite file at path and applies pending migrations.
func Open(path string) (*Repository, error) {
	db, err := sqlx.Connect("sqlite", fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("connecting to db : %w", err)
	}
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting dialect for migrations : %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migration : %w", err)
	}
	return &Repository{dbConn: db, now: time.Now}, nil
}

// Close terminates the database connection.
func (repo *Repository) Close() error {
	if err := repo.dbConn.Close(); err != nil {
		return fmt.Errorf("closing settings db : %w", err)
	}
	return nil
}

func validKey(key string) error {
	if strings.TrimSpace(key) == "" || len(key) > 128 {
		return fmt.Errorf("invalid setting key %q", key)
	}
	return nil
}

// Get returns the value stored under key.
func (repo *Repository) Get(key string) (Setting, error) {
	var s Setting
	err := repo.dbConn.Get(&s, `SELECT key, value, updated_at FROM setting WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return Setting{}, ErrNotFound
	}
	if err != nil {
		return Setting{}, fmt.Errorf("getting setting %s: %w", key, err)
	}
	return s, nil
}

// Set stores value under key, replacing any previous value.
func (repo *Repository) Set(key, value string) (Setting, error) {
	if err := validKey(key); err != nil {
		return Setting{}, err
	}
	s := Setting{Key: key, Value: value, UpdatedAt: repo.now().UTC()}
	query := `INSERT INTO setting (key, value, updated_at) VALUES (:key, :value, :updated_at)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := repo.dbConn.NamedExec(query, s); err != nil {
		return Setting{}, fmt.Errorf("setting %s: %w", key, err)
	}
	return s, nil
}

// All returns every setting ordered by key.
func (repo *Repository) All() ([]Setting, error) {
	list := []Setting{}
	if err := repo.dbConn.Select(&list, `SELECT key, value, updated_at FROM setting ORDER BY key`); err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	return list, nil
}

// Delete removes key. Deleting a missing key returns ErrNotFound.
func (repo *Repository) Delete(key string) error {
	result, err := repo.dbConn.Exec(`DELETE FROM setting WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("fetching rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
