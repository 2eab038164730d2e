// Package models provides domain models for the payoff engine.
package models

// ContractMultiplier is the number of underlying shares one standard
// equity option contract controls.
const ContractMultiplier float64 = 100
