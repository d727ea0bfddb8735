package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Resource is one of the fixed kinds of quantity a member can hold.
type Resource string

const (
	Money     Resource = "money"
	Food      Resource = "food"
	Coal      Resource = "coal"
	Oil       Resource = "oil"
	Uranium   Resource = "uranium"
	Lead      Resource = "lead"
	Iron      Resource = "iron"
	Bauxite   Resource = "bauxite"
	Gasoline  Resource = "gasoline"
	Munitions Resource = "munitions"
	Steel     Resource = "steel"
	Aluminum  Resource = "aluminum"
)

// AllResources lists every resource in canonical order.
// The order is also the column order of the account and treasury tables.
var AllResources = []Resource{
	Money, Food, Coal, Oil, Uranium, Lead, Iron, Bauxite, Gasoline, Munitions, Steel, Aluminum,
}

var resourceIndex = func() map[Resource]int {
	m := make(map[Resource]int, len(AllResources))
	for i, r := range AllResources {
		m[r] = i
	}
	return m
}()

// ParseResource validates a resource name (case-insensitive).
func ParseResource(s string) (Resource, error) {
	r := Resource(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := resourceIndex[r]; !ok {
		return "", fmt.Errorf("unknown resource %q", s)
	}
	return r, nil
}

// Valid reports whether r is a known resource.
func (r Resource) Valid() bool {
	_, ok := resourceIndex[r]
	return ok
}

// Bag holds a quantity per resource. Missing entries are zero.
// Operations return new bags and never keep zero entries.
type Bag map[Resource]decimal.Decimal

// NewBag builds a bag from resource/amount pairs, dropping zeros.
func NewBag(amounts map[Resource]decimal.Decimal) Bag {
	b := make(Bag, len(amounts))
	for r, v := range amounts {
		if !v.IsZero() {
			b[r] = v
		}
	}
	return b
}

// Get returns the quantity of r, zero when absent.
func (b Bag) Get(r Resource) decimal.Decimal {
	if v, ok := b[r]; ok {
		return v
	}
	return decimal.Zero
}

// Add returns the per-resource sum of b and other.
func (b Bag) Add(other Bag) Bag {
	out := make(Bag, len(b)+len(other))
	for r, v := range b {
		out[r] = v
	}
	for r, v := range other {
		out[r] = out.Get(r).Add(v)
	}
	for r, v := range out {
		if v.IsZero() {
			delete(out, r)
		}
	}
	return out
}

// Neg returns b with every quantity negated.
func (b Bag) Neg() Bag {
	out := make(Bag, len(b))
	for r, v := range b {
		if !v.IsZero() {
			out[r] = v.Neg()
		}
	}
	return out
}

// IsZero reports whether every quantity is zero.
func (b Bag) IsZero() bool {
	for _, v := range b {
		if !v.IsZero() {
			return false
		}
	}
	return true
}

// AllNonNegative reports whether no quantity is below zero.
func (b Bag) AllNonNegative() bool {
	for _, v := range b {
		if v.IsNegative() {
			return false
		}
	}
	return true
}

// HasPositive reports whether at least one quantity is above zero.
func (b Bag) HasPositive() bool {
	for _, v := range b {
		if v.IsPositive() {
			return true
		}
	}
	return false
}

// Positive returns only the strictly positive entries.
func (b Bag) Positive() Bag {
	out := make(Bag)
	for r, v := range b {
		if v.IsPositive() {
			out[r] = v
		}
	}
	return out
}

// Shortfall returns, per resource, how much b exceeds balance.
// An empty result means balance covers b.
func (b Bag) Shortfall(balance Bag) Bag {
	out := make(Bag)
	for r, v := range b {
		if diff := v.Sub(balance.Get(r)); diff.IsPositive() {
			out[r] = diff
		}
	}
	return out
}

// Equal compares quantities numerically.
func (b Bag) Equal(other Bag) bool {
	for _, r := range AllResources {
		if !b.Get(r).Equal(other.Get(r)) {
			return false
		}
	}
	return true
}

// Resources returns the non-zero resources of b in canonical order.
func (b Bag) Resources() []Resource {
	out := make([]Resource, 0, len(b))
	for _, r := range AllResources {
		if v, ok := b[r]; ok && !v.IsZero() {
			out = append(out, r)
		}
	}
	return out
}

// StringMap renders quantities as decimal strings keyed by resource name.
func (b Bag) StringMap() map[string]string {
	out := make(map[string]string, len(b))
	for _, r := range b.Resources() {
		out[string(r)] = b[r].String()
	}
	return out
}

// Full returns a bag-shaped slice with every resource, used to bind table columns.
func (b Bag) Full() []decimal.Decimal {
	out := make([]decimal.Decimal, len(AllResources))
	for i, r := range AllResources {
		out[i] = b.Get(r)
	}
	return out
}

// UnmarshalJSON rejects unknown resource names.
func (b *Bag) UnmarshalJSON(data []byte) error {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Bag, len(raw))
	for k, v := range raw {
		r, err := ParseResource(k)
		if err != nil {
			return err
		}
		if !v.IsZero() {
			out[r] = out.Get(r).Add(v)
		}
	}
	*b = out
	return nil
}
