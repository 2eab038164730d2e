package models

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: fees always reduce cash, whichever side the leg is on.
func TestProperty_FeesAlwaysReduceCash(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("leg with fees banks less than the same leg without", prop.ForAll(
		func(qty int, actionIdx int, price, fees float64) bool {
			action := AllLegActions()[actionIdx]
			withFees := Leg{Qty: qty, Action: action, Type: OptionCall, Strike: 100, Price: price, Fees: fees}
			noFees := withFees
			noFees.Fees = 0

			diff := noFees.NetCashFlow() - withFees.NetCashFlow()
			if math.Abs(diff-fees) > 1e-9 {
				t.Logf("fee impact %v, want %v (action %s)", diff, fees, action)
				return false
			}
			return true
		},
		gen.IntRange(1, 100),
		gen.IntRange(0, 3),
		gen.Float64Range(0, 100),
		gen.Float64Range(0.01, 25),
	))

	properties.TestingRun(t)
}

// Property: premium cash is linear in quantity once fees are out of the
// picture, and its sign follows the action table.
func TestProperty_PremiumScalesWithQuantity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("doubling qty doubles fee-free premium cash", prop.ForAll(
		func(qty int, actionIdx int, price float64) bool {
			action := AllLegActions()[actionIdx]
			one := Leg{Qty: qty, Action: action, Type: OptionPut, Strike: 50, Price: price}
			two := one
			two.Qty = qty * 2

			if math.Abs(two.NetCashFlow()-2*one.NetCashFlow()) > 1e-6 {
				t.Logf("qty %d cash %v, qty %d cash %v", qty, one.NetCashFlow(), qty*2, two.NetCashFlow())
				return false
			}
			return true
		},
		gen.IntRange(1, 50),
		gen.IntRange(0, 3),
		gen.Float64Range(0, 200),
	))

	properties.Property("cash sign matches the action table", prop.ForAll(
		func(qty int, actionIdx int, price float64) bool {
			action := AllLegActions()[actionIdx]
			leg := Leg{Qty: qty, Action: action, Type: OptionCall, Strike: 75, Price: price}

			cash := leg.NetCashFlow()
			switch action.CashSign() {
			case 1:
				return cash >= 0
			case -1:
				return cash <= 0
			}
			return false
		},
		gen.IntRange(1, 50),
		gen.IntRange(0, 3),
		gen.Float64Range(0.01, 200),
	))

	properties.TestingRun(t)
}

// Property: intrinsic value is never negative and puts cap at the
// strike.
func TestProperty_IntrinsicValueBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("intrinsic value stays within [0, bound]", prop.ForAll(
		func(strike, spot float64, isPut bool) bool {
			typ := OptionCall
			if isPut {
				typ = OptionPut
			}
			leg := Leg{Qty: 1, Action: ActionBuyToOpen, Type: typ, Strike: strike, Price: 1}

			iv := leg.IntrinsicValue(spot)
			if iv < 0 {
				t.Logf("negative intrinsic %v (strike %v, spot %v)", iv, strike, spot)
				return false
			}
			if isPut && iv > strike {
				t.Logf("put intrinsic %v above strike %v", iv, strike)
				return false
			}
			return true
		},
		gen.Float64Range(0.5, 1000),
		gen.Float64Range(0, 2000),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
