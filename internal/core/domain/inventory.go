package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Item struct {
	Name     string
	Quantity decimal.Decimal
}

// Stock maps item names to positive quantities and remembers insertion
// order. It is not safe for concurrent use.
type Stock struct {
	order      []string
	quantities map[string]decimal.Decimal
}

func NewStock() *Stock {
	return &Stock{quantities: make(map[string]decimal.Decimal)}
}

// Add increases the quantity of item by qty and returns the new total.
// Adding zero to an absent item leaves the stock untouched.
func (s *Stock) Add(item string, qty decimal.Decimal) (decimal.Decimal, error) {
	if item == "" {
		return decimal.Zero, ErrEmptyItemName
	}
	if qty.IsNegative() {
		return decimal.Zero, fmt.Errorf("add %s of %q: %w", qty, item, ErrNegativeQuantity)
	}

	current, ok := s.quantities[item]
	if !ok && qty.IsZero() {
		return decimal.Zero, nil
	}
	total := current.Add(qty)
	s.set(item, total)
	return total, nil
}

// Remove decreases the quantity of item by qty and returns what is left.
// The entry is deleted once nothing remains.
func (s *Stock) Remove(item string, qty decimal.Decimal) (decimal.Decimal, error) {
	if item == "" {
		return decimal.Zero, ErrEmptyItemName
	}
	if !qty.IsPositive() {
		return decimal.Zero, fmt.Errorf("remove %s of %q: %w", qty, item, ErrNonPositiveQuantity)
	}

	current, ok := s.quantities[item]
	if !ok {
		return decimal.Zero, fmt.Errorf("remove %q: %w", item, ErrItemNotFound)
	}
	if current.LessThan(qty) {
		return current, fmt.Errorf("remove %s of %q (have %s): %w", qty, item, current, ErrInsufficientStock)
	}

	left := current.Sub(qty)
	if !left.IsPositive() {
		s.delete(item)
		return decimal.Zero, nil
	}
	s.quantities[item] = left
	return left, nil
}

// Quantity returns the stored quantity of item, or zero when absent.
func (s *Stock) Quantity(item string) (decimal.Decimal, error) {
	if item == "" {
		return decimal.Zero, ErrEmptyItemName
	}
	return s.quantities[item], nil
}

// LowItems returns, in insertion order, the items whose quantity is strictly
// below threshold.
func (s *Stock) LowItems(threshold decimal.Decimal) []string {
	low := make([]string, 0)
	for _, name := range s.order {
		if s.quantities[name].LessThan(threshold) {
			low = append(low, name)
		}
	}
	return low
}

func (s *Stock) Items() []Item {
	items := make([]Item, 0, len(s.order))
	for _, name := range s.order {
		items = append(items, Item{Name: name, Quantity: s.quantities[name]})
	}
	return items
}

// Replace clears the stock and inserts items in order. Entries that would
// break the positive-quantity invariant are dropped.
func (s *Stock) Replace(items []Item) {
	s.order = s.order[:0]
	clear(s.quantities)
	for _, it := range items {
		if it.Name == "" || !it.Quantity.IsPositive() {
			continue
		}
		s.set(it.Name, it.Quantity)
	}
}

func (s *Stock) Len() int {
	return len(s.order)
}

func (s *Stock) set(item string, qty decimal.Decimal) {
	if _, ok := s.quantities[item]; !ok {
		s.order = append(s.order, item)
	}
	s.quantities[item] = qty
}

func (s *Stock) delete(item string) {
	delete(s.quantities, item)
	for i, name := range s.order {
		if name == item {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
