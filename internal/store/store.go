package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/sqlb/internal/exec"
)

// Supported driver names.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// ErrUnknownDriver is returned for a driver name other than mysql or sqlite3.
var ErrUnknownDriver = errors.New("unknown database driver")

// Options describes how to reach a database.
// DSN, when set, is passed to the driver verbatim. Otherwise mysql
// assembles one from the connection fields and sqlite3 uses Path.
type Options struct {
	Driver   string
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Path     string
	Timeout  time.Duration
}

// NormalizeDriver maps accepted spellings to a registered driver name.
func NormalizeDriver(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql", "mariadb":
		return DriverMySQL, nil
	case "sqlite3", "sqlite":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
}

// DataSource returns the driver name and DSN for o.
func (o Options) DataSource() (driver, dsn string, err error) {
	driver, err = NormalizeDriver(o.Driver)
	if err != nil {
		return "", "", err
	}
	if o.DSN != "" {
		return driver, o.DSN, nil
	}

	switch driver {
	case DriverSQLite:
		if o.Path == "" {
			return "", "", errors.New("sqlite3: database path is required")
		}
		return driver, o.Path, nil
	default:
		return driver, o.mysqlDSN(), nil
	}
}

// mysqlDSN assembles a go-sql-driver DSN from the connection fields.
func (o Options) mysqlDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = o.User
	cfg.Passwd = o.Password
	cfg.Net = "tcp"
	host := o.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := o.Port
	if port == 0 {
		port = 3306
	}
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	cfg.DBName = o.Name
	cfg.Timeout = o.Timeout
	return cfg.FormatDSN()
}

// Store owns one database handle.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the database described by o and verifies the
// connection. SQLite databases are created if missing and configured with
// the pragmas listed in the package documentation.
func Open(o Options) (*Store, error) {
	driver, dsn, err := o.DataSource()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite only supports one writer at a time, so limit connections
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragmas: %w", err)
		}
	}

	return &Store{db: db, driver: driver}, nil
}

// OpenSQLite opens (or creates) a SQLite database file at path.
func OpenSQLite(path string) (*Store, error) {
	return Open(Options{Driver: DriverSQLite, Path: path})
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver returns the registered driver name in use.
func (s *Store) Driver() string {
	return s.driver
}

// Executor returns an executor bound to this store's handle.
func (s *Store) Executor() *exec.DB {
	return exec.New(s.db)
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
