package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/user-registration/app/internal/models"
)

var errNotEnsured = errors.New("database not initialized")

// SQLiteStore keeps the collection in the users table of a SQLite database.
type SQLiteStore struct {
	dsn string
	db  *sql.DB
}

// NewSQLiteStore returns a store for the given DSN. The database is opened by Ensure.
func NewSQLiteStore(dataSourceName string) *SQLiteStore {
	return &SQLiteStore{dsn: dataSourceName}
}

// Ensure opens the database and applies the schema.
func (s *SQLiteStore) Ensure(ctx context.Context) error {
	if s.db != nil {
		return nil
	}
	db, err := InitDB(s.dsn)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.db = db
	return nil
}

// Load retrieves all users in insertion order.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.User, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, errNotEnsured)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name, email, password_hash FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Name, &u.Email, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	return users, nil
}

// Save replaces the contents of the users table in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, users []models.User) error {
	if s.db == nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, errNotEnsured)
	}
	if err := s.replaceAll(ctx, users); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	return nil
}

func (s *SQLiteStore) replaceAll(ctx context.Context, users []models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM users"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO users(name, email, password_hash) VALUES(?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range users {
		if _, err := stmt.ExecContext(ctx, u.Name, u.Email, u.PasswordHash); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close closes the database if Ensure opened it.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
