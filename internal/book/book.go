// Package book holds the mutable working state of a hedging session:
// the underlying symbol, the working spot price, and the ordered legs
// of the strategy under construction.
package book

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hedgeviz/internal/models"
)

// Book is the session context every command operates on. Callers own it
// explicitly; nothing in this repository keeps package-level state.
type Book struct {
	mu           sync.RWMutex
	name         string
	symbol       string
	currentPrice float64
	legs         []models.Leg
}

// New creates an empty book with the given session name.
func New(name string) *Book {
	return &Book{name: name}
}

// Name returns the session name the book was created under.
func (b *Book) Name() string {
	return b.name
}

// AddLeg validates the leg and appends it. Invalid legs are rejected
// here, at the intake boundary, and never reach the engine or the
// store. A missing ID and CreatedAt are stamped on the way in; the
// stamped leg is returned so callers can persist it.
func (b *Book) AddLeg(leg models.Leg) (models.Leg, error) {
	if err := leg.Validate(); err != nil {
		return models.Leg{}, err
	}
	if leg.ID == "" {
		leg.ID = uuid.NewString()
	}
	if leg.CreatedAt.IsZero() {
		leg.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.legs = append(b.legs, leg)
	b.mu.Unlock()
	return leg, nil
}

// Legs returns a copy of the legs in insertion order.
func (b *Book) Legs() []models.Leg {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.Leg, len(b.legs))
	copy(out, b.legs)
	return out
}

// Len returns the number of legs in the book.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.legs)
}

// Clear removes every leg. The symbol and working price survive a
// clear.
func (b *Book) Clear() {
	b.mu.Lock()
	b.legs = nil
	b.mu.Unlock()
}

// SetSymbol stores the underlying symbol, uppercased.
func (b *Book) SetSymbol(symbol string) {
	b.mu.Lock()
	b.symbol = strings.ToUpper(strings.TrimSpace(symbol))
	b.mu.Unlock()
}

// Symbol returns the underlying symbol, which may be empty.
func (b *Book) Symbol() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.symbol
}

// SetCurrentPrice stores the working spot price. Values at or below
// zero mean "no price": charts omit the marker and payoff domains fall
// back to strikes alone.
func (b *Book) SetCurrentPrice(price float64) {
	b.mu.Lock()
	b.currentPrice = price
	b.mu.Unlock()
}

// CurrentPrice returns the working spot price, zero when unset.
func (b *Book) CurrentPrice() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.currentPrice
}
