package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
)

// Supported values for Options.Driver.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func init() {
	// sqlx only knows the cgo driver name; modernc registers as "sqlite".
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)

	// SQLite's built-in lower() only folds ASCII.  Searches compare
	// LOWER(name) against a keyword lowered with strings.ToLower, so both
	// sides must fold the same way.
	if err := sqlite.RegisterDeterministicScalarFunction("lower", 1, foldCase); err != nil {
		panic(fmt.Sprintf("register sqlite lower: %v", err))
	}
}

func foldCase(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Options describes how to reach the booking store.  Host, Port, User,
// Pass and Name are used by MySQL; Path is the SQLite file (or
// ":memory:").
type Options struct {
	Driver       string
	User         string
	Pass         string
	Host         string
	Port         string
	Name         string
	Path         string
	MaxOpenConns int
}

// Open connects to the configured store and verifies the connection.
func Open(opts Options) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch opts.Driver {
	case DriverMySQL, "":
		db, err = sqlx.Open(DriverMySQL, mysqlDSN(opts))
		if err != nil {
			return nil, err
		}
		// Pool settings
		maxOpen := opts.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = 25
		}
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen)
		db.SetConnMaxLifetime(30 * time.Minute)
	case DriverSQLite:
		db, err = sqlx.Open(DriverSQLite, sqliteDSN(opts.Path))
		if err != nil {
			return nil, err
		}
		// One connection: an in-memory database lives and dies with its
		// connection, and SQLite serialises writers anyway.
		db.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func mysqlDSN(opts Options) string {
	auth := opts.User
	if opts.Pass != "" {
		auth = fmt.Sprintf("%s:%s", opts.User, opts.Pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, opts.Host, opts.Port, opts.Name)
}

func sqliteDSN(path string) string {
	if path == "" {
		path = ":memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	// foreign_keys is per connection in SQLite; without it the cascade
	// from venues/artists to shows is silently skipped.
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
