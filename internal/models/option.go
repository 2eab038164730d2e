package models

import "strings"

// OptionType represents the contract type of a leg.
type OptionType string

const (
	OptionCall OptionType = "CALL"
	OptionPut  OptionType = "PUT"
)

// Valid reports whether the option type is a known member.
func (t OptionType) Valid() bool {
	return t == OptionCall || t == OptionPut
}

// Label returns the display form of the option type.
func (t OptionType) Label() string {
	switch t {
	case OptionCall:
		return "Call"
	case OptionPut:
		return "Put"
	}
	return string(t)
}

// ParseOptionType parses user input into an OptionType.
// Accepts "call", "put" and the single-letter forms, case-insensitive.
func ParseOptionType(s string) (OptionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c", "calls":
		return OptionCall, true
	case "put", "p", "puts":
		return OptionPut, true
	}
	return "", false
}

// LegAction represents how a leg was entered. The set is closed: every
// action maps to a cash-flow sign and a position direction through the
// effect table below, and anything outside the set is rejected at intake.
type LegAction string

const (
	ActionBuyToOpen   LegAction = "BUY_TO_OPEN"
	ActionSellToOpen  LegAction = "SELL_TO_OPEN"
	ActionBuyToClose  LegAction = "BUY_TO_CLOSE"
	ActionSellToClose LegAction = "SELL_TO_CLOSE"
)

// legEffect captures everything the math needs to know about an action.
type legEffect struct {
	cashSign  int // +1 premium received, -1 premium paid
	direction int // +1 long exposure, -1 short exposure
	label     string
}

// legEffects is the single source of truth for per-action behavior.
// Close actions carry the same arithmetic as their open counterparts;
// there is no netting against existing positions.
var legEffects = map[LegAction]legEffect{
	ActionBuyToOpen:   {cashSign: -1, direction: +1, label: "Buy to Open"},
	ActionSellToOpen:  {cashSign: +1, direction: -1, label: "Sell to Open"},
	ActionBuyToClose:  {cashSign: -1, direction: +1, label: "Buy to Close"},
	ActionSellToClose: {cashSign: +1, direction: -1, label: "Sell to Close"},
}

// Valid reports whether the action is a known member.
func (a LegAction) Valid() bool {
	_, ok := legEffects[a]
	return ok
}

// CashSign returns +1 when the action collects premium and -1 when it
// pays premium. Unknown actions return 0; they never pass intake.
func (a LegAction) CashSign() int {
	return legEffects[a].cashSign
}

// Direction returns +1 for long exposure and -1 for short exposure.
// Unknown actions return 0; they never pass intake.
func (a LegAction) Direction() int {
	return legEffects[a].direction
}

// Label returns the display form of the action.
func (a LegAction) Label() string {
	if e, ok := legEffects[a]; ok {
		return e.label
	}
	return string(a)
}

// ParseLegAction parses user input into a LegAction. Accepts the long
// forms with spaces, dashes or underscores and the usual abbreviations
// (bto, sto, btc, stc), case-insensitive.
func ParseLegAction(s string) (LegAction, bool) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.ReplaceAll(n, "-", "_")
	n = strings.ReplaceAll(n, " ", "_")
	switch n {
	case "buy_to_open", "bto":
		return ActionBuyToOpen, true
	case "sell_to_open", "sto":
		return ActionSellToOpen, true
	case "buy_to_close", "btc":
		return ActionBuyToClose, true
	case "sell_to_close", "stc":
		return ActionSellToClose, true
	}
	return "", false
}

// AllLegActions lists the closed action set in display order.
func AllLegActions() []LegAction {
	return []LegAction{ActionBuyToOpen, ActionSellToOpen, ActionBuyToClose, ActionSellToClose}
}
