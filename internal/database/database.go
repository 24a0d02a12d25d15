package database

import (
	"database/sql"
	_ "embed"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// InitDB initializes and returns a database connection
func InitDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}

	// ":memory:" databases exist per connection; one connection keeps a
	// single database for the lifetime of the pool.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err = loadSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// loadSchema executes the embedded SQL schema
func loadSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
