package domain

import (
	"fmt"
	"math"
)

// Asset is a native asset identified by its policy id and asset name, both
// hex-encoded.
type Asset struct {
	PolicyID string
	Name     string
	Quantity uint64
}

// Unit returns the concatenation of policy id and asset name, the usual way
// to refer to a native asset with a single string.
func (a Asset) Unit() string {
	return a.PolicyID + a.Name
}

// Is returns whether the given asset has the same identity, quantity apart.
func (a Asset) Is(policyID, name string) bool {
	return a.PolicyID == policyID && a.Name == name
}

func (a Asset) String() string {
	return fmt.Sprintf("%s.%s: %d", a.PolicyID, a.Name, a.Quantity)
}

// Assets is an ordered list of assets with unique identity.
type Assets []Asset

// IndexOf returns the position of the asset with the given identity, or -1.
func (a Assets) IndexOf(policyID, name string) int {
	for i, asset := range a {
		if asset.Is(policyID, name) {
			return i
		}
	}
	return -1
}

// QuantityOf returns the quantity held for the given asset, 0 if missing.
func (a Assets) QuantityOf(policyID, name string) uint64 {
	if i := a.IndexOf(policyID, name); i >= 0 {
		return a[i].Quantity
	}
	return 0
}

// Token is an entry of a mint bundle. A negative quantity means burning.
type Token struct {
	PolicyID string
	Name     string
	Quantity int64
}

// TokenBundle collects the tokens minted or burnt by a transaction.
// Adding the same token twice sums up the quantities.
type TokenBundle struct {
	tokens []Token
}

func NewTokenBundle() *TokenBundle {
	return &TokenBundle{}
}

// AddToken adds the given quantity of a token to the bundle.
func (b *TokenBundle) AddToken(policyID, name string, quantity int64) *TokenBundle {
	for i, t := range b.tokens {
		if t.PolicyID == policyID && t.Name == name {
			b.tokens[i].Quantity += quantity
			return b
		}
	}
	b.tokens = append(b.tokens, Token{policyID, name, quantity})
	return b
}

// Build returns the tokens of the bundle in insertion order.
func (b *TokenBundle) Build() []Token {
	if b == nil {
		return nil
	}
	tokens := make([]Token, len(b.tokens))
	copy(tokens, b.tokens)
	return tokens
}

// absQuantity returns |q| as unsigned, math.MinInt64 included.
func absQuantity(q int64) uint64 {
	if q >= 0 {
		return uint64(q)
	}
	if q == math.MinInt64 {
		return uint64(math.MaxInt64) + 1
	}
	return uint64(-q)
}
