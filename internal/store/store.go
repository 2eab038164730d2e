// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"hedgeviz/internal/book"
	"hedgeviz/internal/models"
)

// SessionStore persists working books between command invocations. A
// book named here is the unit the CLI loads, mutates and re-saves; the
// store keeps no history beyond the current state of each book.
type SessionStore interface {
	// LoadBook returns the named book, or a fresh empty one when the
	// name has never been saved.
	LoadBook(ctx context.Context, name string) (*book.Book, error)

	// AppendLeg adds a validated leg to the end of the named book,
	// creating the book row on first use.
	AppendLeg(ctx context.Context, name string, leg models.Leg) error

	// ClearLegs removes every leg from the named book. Symbol and
	// price metadata survive.
	ClearLegs(ctx context.Context, name string) error

	// SaveMeta upserts the book's symbol and working price.
	SaveMeta(ctx context.Context, name, symbol string, currentPrice float64) error

	// ListBooks returns a summary row per saved book.
	ListBooks(ctx context.Context) ([]BookInfo, error)

	// Lifecycle
	Close() error
}

// BookInfo is a summary row for a saved book.
type BookInfo struct {
	Name         string
	Symbol       string
	CurrentPrice float64
	LegCount     int
	UpdatedAt    time.Time
}
