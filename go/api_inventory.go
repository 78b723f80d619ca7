package maintenanceserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	inventorydomain "github.com/azaconnect/maintenance-api/internal/domains/inventory/domain"
	inventoryports "github.com/azaconnect/maintenance-api/internal/domains/inventory/ports"
	apierrors "github.com/azaconnect/maintenance-api/internal/shared/errors"
)

// InventoryAPI wires HTTP transport with the needle inventory service.
type InventoryAPI struct {
	service inventoryports.Service
}

// NewInventoryAPI creates an InventoryAPI backed by the provided service.
func NewInventoryAPI(service inventoryports.Service) InventoryAPI {
	return InventoryAPI{service: service}
}

// NeedleChange is the HTTP representation of a needle replacement record.
type NeedleChange struct {
	ID       int64      `json:"id,omitempty"`
	Loom     string     `json:"loom"`
	Size     string     `json:"size"`
	Quantity int        `json:"quantity,omitempty"`
	Employee string     `json:"employee,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

func fromDomainNeedleChange(n *inventorydomain.NeedleChange) NeedleChange {
	date := n.Date
	return NeedleChange{
		ID:       n.ID,
		Loom:     n.Loom,
		Size:     n.Size,
		Quantity: n.Quantity,
		Employee: n.Employee,
		Date:     &date,
	}
}

// Post /v1/inventory/needle-changes
// Log a needle replacement on a loom
func (api *InventoryAPI) RecordNeedleChange(c *gin.Context) {
	var payload NeedleChange
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := inventoryports.RecordChangeInput{
		Loom:     payload.Loom,
		Size:     payload.Size,
		Quantity: payload.Quantity,
		Employee: payload.Employee,
	}
	if payload.Date != nil {
		input.Date = *payload.Date
	}
	change, err := api.service.RecordChange(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainNeedleChange(change))
}

// Get /v1/inventory/needle-changes
// List the needle log newest first, optionally scoped to one loom
func (api *InventoryAPI) ListNeedleChanges(c *gin.Context) {
	changes, err := api.service.ListChanges(c.Request.Context(), c.Query("loom"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := make([]NeedleChange, 0, len(changes))
	for _, change := range changes {
		resp = append(resp, fromDomainNeedleChange(change))
	}
	c.JSON(http.StatusOK, resp)
}

// Delete /v1/inventory/needle-changes/:changeId
// Remove a mistaken log entry
func (api *InventoryAPI) DeleteNeedleChange(c *gin.Context) {
	id, ok := parseIDParam(c, "changeId")
	if !ok {
		return
	}
	if err := api.service.DeleteChange(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// inventoryProblems classifies inventory service errors.
func inventoryProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, inventoryports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, inventorydomain.ErrEmptyLoom),
		errors.Is(err, inventorydomain.ErrEmptySize),
		errors.Is(err, inventorydomain.ErrInvalidQuantity):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
