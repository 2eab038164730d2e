package store

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"hedgeviz/internal/models"
)

// Property: for any sequence of valid legs, appending them to a book
// and loading it back produces equivalent legs in the same order
// (round-trip consistency).
func TestProperty_LegRoundTripConsistency(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "property.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	// Generator for leg count (1-12 legs)
	countGen := gen.IntRange(1, 12)

	properties.Property("Leg round-trip: append then load produces equivalent legs", prop.ForAll(
		func(count int, baseStrike, basePrice, baseFees float64) bool {
			ctx := context.Background()

			// Unique book name per run to avoid conflicts between cases
			bookName := fmt.Sprintf("book_%s", uuid.NewString())

			legs := generateTestLegs(count, baseStrike, basePrice, baseFees)
			for _, leg := range legs {
				if err := store.AppendLeg(ctx, bookName, leg); err != nil {
					t.Logf("Failed to append leg: %v", err)
					return false
				}
			}

			loaded, err := store.LoadBook(ctx, bookName)
			if err != nil {
				t.Logf("Failed to load book: %v", err)
				return false
			}

			got := loaded.Legs()
			if len(got) != len(legs) {
				t.Logf("Count mismatch: expected %d, got %d", len(legs), len(got))
				return false
			}

			for i, orig := range legs {
				if !legsEqual(orig, got[i]) {
					t.Logf("Leg mismatch at index %d: original=%+v, loaded=%+v", i, orig, got[i])
					return false
				}
			}

			return true
		},
		countGen,
		gen.Float64Range(1, 900),
		gen.Float64Range(0, 50),
		gen.Float64Range(0, 5),
	))

	properties.Property("Clearing a book always empties it", prop.ForAll(
		func(count int, baseStrike float64) bool {
			ctx := context.Background()
			bookName := fmt.Sprintf("clear_%s", uuid.NewString())

			for _, leg := range generateTestLegs(count, baseStrike, 1.5, 0.65) {
				if err := store.AppendLeg(ctx, bookName, leg); err != nil {
					t.Logf("Failed to append leg: %v", err)
					return false
				}
			}
			if err := store.ClearLegs(ctx, bookName); err != nil {
				t.Logf("Failed to clear legs: %v", err)
				return false
			}

			loaded, err := store.LoadBook(ctx, bookName)
			if err != nil {
				t.Logf("Failed to load book: %v", err)
				return false
			}
			return loaded.Len() == 0
		},
		countGen,
		gen.Float64Range(1, 900),
	))

	properties.TestingRun(t)
}

// generateTestLegs creates valid legs for testing, cycling through the
// action and type sets.
func generateTestLegs(count int, baseStrike, basePrice, baseFees float64) []models.Leg {
	actions := models.AllLegActions()
	baseTime := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

	legs := make([]models.Leg, count)
	for i := 0; i < count; i++ {
		typ := models.OptionCall
		if i%2 == 1 {
			typ = models.OptionPut
		}
		legs[i] = models.Leg{
			ID:         uuid.NewString(),
			Qty:        1 + i%9,
			Action:     actions[i%len(actions)],
			Type:       typ,
			Strike:     roundToDecimal(baseStrike+float64(i)*2.5, 2),
			Expiration: baseTime.AddDate(0, 0, 30+i),
			Price:      roundToDecimal(basePrice, 2),
			Fees:       roundToDecimal(baseFees, 2),
			Notes:      fmt.Sprintf("leg %d", i),
			CreatedAt:  baseTime.Add(time.Duration(i) * time.Minute),
		}
	}
	return legs
}

// roundToDecimal rounds a float to specified decimal places
func roundToDecimal(val float64, places int) float64 {
	multiplier := math.Pow(10, float64(places))
	return math.Round(val*multiplier) / multiplier
}

// legsEqual compares two legs for equality with floating point tolerance.
func legsEqual(a, b models.Leg) bool {
	const tolerance = 1e-9

	if a.ID != b.ID || a.Qty != b.Qty || a.Action != b.Action || a.Type != b.Type {
		return false
	}
	if !floatEqual(a.Strike, b.Strike, tolerance) {
		return false
	}
	if !floatEqual(a.Price, b.Price, tolerance) {
		return false
	}
	if !floatEqual(a.Fees, b.Fees, tolerance) {
		return false
	}
	if !a.Expiration.Equal(b.Expiration) {
		return false
	}
	if a.Notes != b.Notes {
		return false
	}
	return true
}

// floatEqual compares two floats with a tolerance.
func floatEqual(a, b, tolerance float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
