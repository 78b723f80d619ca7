package domain

import (
	"errors"
	"strings"
)

var ErrEmptySectorName = errors.New("sector name is required")

// Sector is a production area of the plant. Assets, requests, and orders
// reference sectors by name.
type Sector struct {
	ID          int64
	Name        string
	Description string
	Active      bool
}

// NewSector builds an active sector.
func NewSector(name, description string) (*Sector, error) {
	sector := &Sector{
		Description: strings.TrimSpace(description),
		Active:      true,
	}
	if err := sector.SetName(name); err != nil {
		return nil, err
	}
	return sector, nil
}

// SetName trims and validates the sector name.
func (s *Sector) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptySectorName
	}
	s.Name = name
	return nil
}

// Update replaces the editable fields.
func (s *Sector) Update(name, description string, active bool) error {
	if err := s.SetName(name); err != nil {
		return err
	}
	s.Description = strings.TrimSpace(description)
	s.Active = active
	return nil
}

// Clone returns a copy of the sector.
func (s *Sector) Clone() *Sector {
	clone := *s
	return &clone
}
