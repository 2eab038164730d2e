// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"hedgeviz/internal/book"
	apperrors "hedgeviz/internal/errors"
	"hedgeviz/internal/models"
)

// SQLiteStore implements SessionStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based session store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Books table: one row per named working session
	CREATE TABLE IF NOT EXISTS books (
		name TEXT PRIMARY KEY,
		symbol TEXT NOT NULL DEFAULT '',
		current_price REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Legs table: ordered strategy legs per book
	CREATE TABLE IF NOT EXISTS legs (
		id TEXT PRIMARY KEY,
		book TEXT NOT NULL,
		seq INTEGER NOT NULL,
		qty INTEGER NOT NULL,
		action TEXT NOT NULL,
		option_type TEXT NOT NULL,
		strike REAL NOT NULL,
		expiration DATETIME,
		price REAL NOT NULL,
		fees REAL NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(book, seq),
		FOREIGN KEY (book) REFERENCES books(name)
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_legs_book_seq ON legs(book, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Book Methods
// ============================================================================

// LoadBook loads the named book with its legs in append order. A name
// that was never saved comes back as a fresh empty book.
func (s *SQLiteStore) LoadBook(ctx context.Context, name string) (*book.Book, error) {
	b := book.New(name)

	symbol, price, err := s.getBookMeta(ctx, name)
	switch {
	case err == nil:
		b.SetSymbol(symbol)
		b.SetCurrentPrice(price)
	case apperrors.Is(err, apperrors.ErrDataNotFound):
		return b, nil
	default:
		return nil, apperrors.NewDatabaseError("load book", err)
	}

	legs, err := s.getLegs(ctx, name)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load book", err)
	}
	for _, leg := range legs {
		if _, err := b.AddLeg(leg); err != nil {
			return nil, apperrors.NewDatabaseError("load book", fmt.Errorf("restoring leg %s: %w", leg.ID, err))
		}
	}

	return b, nil
}

// AppendLeg adds a leg to the end of the named book inside a single
// transaction, creating the book row on first use.
func (s *SQLiteStore) AppendLeg(ctx context.Context, name string, leg models.Leg) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewDatabaseError("append leg", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO books (name) VALUES (?)`, name); err != nil {
		return apperrors.NewDatabaseError("append leg", fmt.Errorf("failed to ensure book: %w", err))
	}

	var seq int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM legs WHERE book = ?`, name).Scan(&seq); err != nil {
		return apperrors.NewDatabaseError("append leg", fmt.Errorf("failed to compute sequence: %w", err))
	}

	var expiration interface{}
	if !leg.Expiration.IsZero() {
		expiration = leg.Expiration
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO legs (id, book, seq, qty, action, option_type, strike, expiration, price, fees, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, leg.ID, name, seq, leg.Qty, string(leg.Action), string(leg.Type), leg.Strike, expiration, leg.Price, leg.Fees, leg.Notes, leg.CreatedAt)
	if err != nil {
		return apperrors.NewDatabaseError("append leg", fmt.Errorf("failed to insert leg: %w", err))
	}

	if _, err := tx.ExecContext(ctx, `UPDATE books SET updated_at = CURRENT_TIMESTAMP WHERE name = ?`, name); err != nil {
		return apperrors.NewDatabaseError("append leg", fmt.Errorf("failed to touch book: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewDatabaseError("append leg", fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// ClearLegs removes every leg from the named book. The book row and
// its metadata stay.
func (s *SQLiteStore) ClearLegs(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM legs WHERE book = ?`, name); err != nil {
		return apperrors.NewDatabaseError("clear legs", fmt.Errorf("failed to delete legs: %w", err))
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE books SET updated_at = CURRENT_TIMESTAMP WHERE name = ?`, name); err != nil {
		return apperrors.NewDatabaseError("clear legs", fmt.Errorf("failed to touch book: %w", err))
	}
	return nil
}

// SaveMeta upserts the book's symbol and working price.
func (s *SQLiteStore) SaveMeta(ctx context.Context, name, symbol string, currentPrice float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewDatabaseError("save meta", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO books (name) VALUES (?)`, name); err != nil {
		return apperrors.NewDatabaseError("save meta", fmt.Errorf("failed to ensure book: %w", err))
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE books SET symbol = ?, current_price = ?, updated_at = CURRENT_TIMESTAMP WHERE name = ?
	`, symbol, currentPrice, name); err != nil {
		return apperrors.NewDatabaseError("save meta", fmt.Errorf("failed to update book: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewDatabaseError("save meta", fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// ListBooks returns a summary row per saved book, ordered by name.
func (s *SQLiteStore) ListBooks(ctx context.Context) ([]BookInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.name, b.symbol, b.current_price, b.updated_at, COUNT(l.id)
		FROM books b
		LEFT JOIN legs l ON l.book = b.name
		GROUP BY b.name
		ORDER BY b.name ASC
	`)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list books", fmt.Errorf("failed to query books: %w", err))
	}
	defer rows.Close()

	var infos []BookInfo
	for rows.Next() {
		var info BookInfo
		if err := rows.Scan(&info.Name, &info.Symbol, &info.CurrentPrice, &info.UpdatedAt, &info.LegCount); err != nil {
			return nil, apperrors.NewDatabaseError("list books", fmt.Errorf("failed to scan book: %w", err))
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("list books", fmt.Errorf("error iterating books: %w", err))
	}

	return infos, nil
}

// ============================================================================
// Internal Helpers
// ============================================================================

// getBookMeta returns the symbol and working price of a saved book, or
// ErrDataNotFound when the name has never been saved.
func (s *SQLiteStore) getBookMeta(ctx context.Context, name string) (string, float64, error) {
	var symbol string
	var price float64
	err := s.db.QueryRowContext(ctx, `
		SELECT symbol, current_price FROM books WHERE name = ?
	`, name).Scan(&symbol, &price)
	if err == sql.ErrNoRows {
		return "", 0, apperrors.ErrDataNotFound
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to query book: %w", err)
	}
	return symbol, price, nil
}

// getLegs returns the legs of a book in append order.
func (s *SQLiteStore) getLegs(ctx context.Context, name string) ([]models.Leg, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, qty, action, option_type, strike, expiration, price, fees, notes, created_at
		FROM legs
		WHERE book = ?
		ORDER BY seq ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query legs: %w", err)
	}
	defer rows.Close()

	var legs []models.Leg
	for rows.Next() {
		var leg models.Leg
		var action, optionType string
		var expiration sql.NullTime
		if err := rows.Scan(&leg.ID, &leg.Qty, &action, &optionType, &leg.Strike, &expiration, &leg.Price, &leg.Fees, &leg.Notes, &leg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leg: %w", err)
		}
		leg.Action = models.LegAction(action)
		leg.Type = models.OptionType(optionType)
		if expiration.Valid {
			leg.Expiration = expiration.Time
		}
		legs = append(legs, leg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating legs: %w", err)
	}

	return legs, nil
}
