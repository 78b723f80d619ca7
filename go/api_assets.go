package maintenanceserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	assetdomain "github.com/azaconnect/maintenance-api/internal/domains/assets/domain"
	assetports "github.com/azaconnect/maintenance-api/internal/domains/assets/ports"
	apierrors "github.com/azaconnect/maintenance-api/internal/shared/errors"
)

// AssetAPI wires HTTP transport with the assets bounded context service.
type AssetAPI struct {
	service assetports.Service
}

// NewAssetAPI creates an AssetAPI backed by the provided service.
func NewAssetAPI(service assetports.Service) AssetAPI {
	return AssetAPI{service: service}
}

// Asset is the HTTP representation of a registered machine.
type Asset struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	Number       string `json:"number"`
	Model        string `json:"model,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty"`
	Sector       string `json:"sector,omitempty"`
	Status       string `json:"status,omitempty"`
}

func fromDomainAsset(a *assetdomain.Asset) Asset {
	return Asset{
		ID:           a.ID,
		Name:         a.Name,
		Type:         a.Type,
		Number:       a.Number,
		Model:        a.Model,
		SerialNumber: a.SerialNumber,
		Sector:       a.Sector,
		Status:       string(a.Status),
	}
}

// Post /v1/assets
// Register a new machine
func (api *AssetAPI) CreateAsset(c *gin.Context) {
	var payload Asset
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	asset, err := assetdomain.NewAsset(payload.Name, payload.Type, payload.Number, payload.Model, payload.SerialNumber, payload.Sector)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.CreateAsset(c.Request.Context(), asset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainAsset(created))
}

// Get /v1/assets
// List machines, optionally filtered by sector or status
func (api *AssetAPI) ListAssets(c *gin.Context) {
	filter := assetports.ListFilter{
		Sector: c.Query("sector"),
		Status: assetdomain.Status(c.Query("status")),
	}
	assets, err := api.service.ListAssets(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := make([]Asset, 0, len(assets))
	for _, a := range assets {
		resp = append(resp, fromDomainAsset(a))
	}
	c.JSON(http.StatusOK, resp)
}

// Get /v1/assets/:assetId
// Find a machine by ID
func (api *AssetAPI) GetAsset(c *gin.Context) {
	id, ok := parseIDParam(c, "assetId")
	if !ok {
		return
	}
	asset, err := api.service.GetAsset(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainAsset(asset))
}

// Put /v1/assets/:assetId
// Update a machine's registration details
func (api *AssetAPI) UpdateAsset(c *gin.Context) {
	id, ok := parseIDParam(c, "assetId")
	if !ok {
		return
	}
	var payload Asset
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated := &assetdomain.Asset{
		Name:         payload.Name,
		Type:         payload.Type,
		Number:       payload.Number,
		Model:        payload.Model,
		SerialNumber: payload.SerialNumber,
		Sector:       payload.Sector,
		Status:       assetdomain.Status(payload.Status),
	}
	saved, err := api.service.UpdateAsset(c.Request.Context(), id, updated)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainAsset(saved))
}

// Post /v1/assets/:assetId/status
// Move a machine between active, maintenance, and retired
func (api *AssetAPI) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "assetId")
	if !ok {
		return
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	asset, err := api.service.ChangeStatus(c.Request.Context(), id, assetdomain.Status(payload.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainAsset(asset))
}

// Delete /v1/assets/:assetId
// Remove a machine from the registry
func (api *AssetAPI) DeleteAsset(c *gin.Context) {
	id, ok := parseIDParam(c, "assetId")
	if !ok {
		return
	}
	if err := api.service.DeleteAsset(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Sector is the HTTP representation of a production area.
type Sector struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

func fromDomainSector(s *assetdomain.Sector) Sector {
	return Sector{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Active:      s.Active,
	}
}

// Post /v1/sectors
// Register a production sector
func (api *AssetAPI) CreateSector(c *gin.Context) {
	var payload Sector
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.CreateSector(c.Request.Context(), payload.Name, payload.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainSector(created))
}

// Get /v1/sectors
// List the sector registry
func (api *AssetAPI) ListSectors(c *gin.Context) {
	sectors, err := api.service.ListSectors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := make([]Sector, 0, len(sectors))
	for _, s := range sectors {
		resp = append(resp, fromDomainSector(s))
	}
	c.JSON(http.StatusOK, resp)
}

// Put /v1/sectors/:sectorId
// Update a sector's name, description, or active flag
func (api *AssetAPI) UpdateSector(c *gin.Context) {
	id, ok := parseIDParam(c, "sectorId")
	if !ok {
		return
	}
	var payload Sector
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateSector(c.Request.Context(), id, payload.Name, payload.Description, payload.Active)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainSector(updated))
}

// Delete /v1/sectors/:sectorId
// Remove a sector from the registry
func (api *AssetAPI) DeleteSector(c *gin.Context) {
	id, ok := parseIDParam(c, "sectorId")
	if !ok {
		return
	}
	if err := api.service.DeleteSector(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// assetProblems classifies assets service errors.
func assetProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, assetports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, assetdomain.ErrRetired):
		return apierrors.NewConflictProblem(err.Error()), true
	case errors.Is(err, assetdomain.ErrEmptyName),
		errors.Is(err, assetdomain.ErrEmptyNumber),
		errors.Is(err, assetdomain.ErrEmptySectorName),
		errors.Is(err, assetdomain.ErrInvalidStatus):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
