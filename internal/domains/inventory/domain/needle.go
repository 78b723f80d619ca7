// Package domain models the needle inventory of the knitting floor.
// Needles are consumables: every replacement on a loom is logged so
// consumption per machine and per size can be tracked.
package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyLoom       = errors.New("loom is required")
	ErrEmptySize       = errors.New("needle size is required")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// NeedleChange is one replacement event on a loom.
type NeedleChange struct {
	ID       int64
	Loom     string
	Size     string
	Quantity int
	Employee string
	Date     time.Time
}

// NewNeedleChange builds a replacement record. A zero quantity defaults
// to a single needle, the common case on the floor.
func NewNeedleChange(loom, size string, quantity int, employee string, date time.Time) (*NeedleChange, error) {
	loom = strings.TrimSpace(loom)
	if loom == "" {
		return nil, ErrEmptyLoom
	}
	size = strings.TrimSpace(size)
	if size == "" {
		return nil, ErrEmptySize
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity == 0 {
		quantity = 1
	}
	return &NeedleChange{
		Loom:     loom,
		Size:     size,
		Quantity: quantity,
		Employee: strings.TrimSpace(employee),
		Date:     date,
	}, nil
}

// Clone returns a copy of the change record.
func (n *NeedleChange) Clone() *NeedleChange {
	clone := *n
	return &clone
}
