package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName     = errors.New("asset name is required")
	ErrEmptyNumber   = errors.New("asset number is required")
	ErrInvalidStatus = errors.New("unknown asset status")
	ErrRetired       = errors.New("asset is retired")
)

// Status tracks whether a machine is available for production.
type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusRetired:
		return true
	}
	return false
}

// Asset represents a machine or piece of equipment on the factory floor.
type Asset struct {
	ID           int64
	Name         string
	Type         string
	Number       string
	Model        string
	SerialNumber string
	Sector       string
	Status       Status
}

// NewAsset builds an asset in active state.
func NewAsset(name, assetType, number, model, serialNumber, sector string) (*Asset, error) {
	asset := &Asset{
		Type:         strings.TrimSpace(assetType),
		Model:        strings.TrimSpace(model),
		SerialNumber: strings.TrimSpace(serialNumber),
		Sector:       strings.TrimSpace(sector),
		Status:       StatusActive,
	}
	if err := asset.SetName(name); err != nil {
		return nil, err
	}
	if err := asset.SetNumber(number); err != nil {
		return nil, err
	}
	return asset, nil
}

// SetName trims and validates the display name.
func (a *Asset) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	a.Name = name
	return nil
}

// SetNumber trims and validates the internal inventory number.
func (a *Asset) SetNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrEmptyNumber
	}
	a.Number = number
	return nil
}

// UpdateDetails applies optional descriptive fields.
func (a *Asset) UpdateDetails(assetType, model, serialNumber, sector string) {
	a.Type = strings.TrimSpace(assetType)
	a.Model = strings.TrimSpace(model)
	a.SerialNumber = strings.TrimSpace(serialNumber)
	a.Sector = strings.TrimSpace(sector)
}

// SendToMaintenance flags the asset as out of production.
func (a *Asset) SendToMaintenance() error {
	if a.Status == StatusRetired {
		return ErrRetired
	}
	a.Status = StatusMaintenance
	return nil
}

// Reactivate returns the asset to production.
func (a *Asset) Reactivate() error {
	if a.Status == StatusRetired {
		return ErrRetired
	}
	a.Status = StatusActive
	return nil
}

// Retire permanently decommissions the asset.
func (a *Asset) Retire() {
	a.Status = StatusRetired
}

// Validate re-applies core invariants for persistence.
func (a *Asset) Validate() error {
	if err := a.SetName(a.Name); err != nil {
		return err
	}
	if err := a.SetNumber(a.Number); err != nil {
		return err
	}
	if !a.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
