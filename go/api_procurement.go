package maintenanceserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	procurementmapper "github.com/azaconnect/maintenance-api/internal/domains/procurement/adapters/http/mapper"
	procurementapp "github.com/azaconnect/maintenance-api/internal/domains/procurement/application"
	procurementports "github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
	apierrors "github.com/azaconnect/maintenance-api/internal/shared/errors"
)

// ProcurementAPI wires HTTP transport with the procurement bounded context service.
type ProcurementAPI struct {
	service procurementports.Service
}

// NewProcurementAPI creates a ProcurementAPI backed by the provided service.
func NewProcurementAPI(service procurementports.Service) ProcurementAPI {
	return ProcurementAPI{service: service}
}

// Post /v1/orders
// Place a new accessory order
func (api *ProcurementAPI) CreateOrder(c *gin.Context) {
	var payload procurementmapper.MutationOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), procurementmapper.ToCreateOrderInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, procurementmapper.FromDomainOrder(order))
}

// Get /v1/orders
// List all accessory orders
func (api *ProcurementAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, procurementmapper.FromDomainOrderList(orders))
}

// Get /v1/orders/:orderId
// Find an order by ID
func (api *ProcurementAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, procurementmapper.FromDomainOrder(order))
}

// Post /v1/orders/:orderId/cancel
// Cancel an order and all its open items
func (api *ProcurementAPI) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.CancelOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, procurementmapper.FromDomainOrder(order))
}

// Post /v1/orders/:orderId/refresh-status
// Recompute the order status from its items
func (api *ProcurementAPI) RefreshOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	status, err := api.service.RefreshOrderStatus(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(status)})
}

// Get /v1/items/:itemId
// Find an order item by ID
func (api *ProcurementAPI) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	item, err := api.service.GetItem(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, procurementmapper.FromDomainItem(item))
}

// Post /v1/items/:itemId/approve
// Approve an item, optionally reducing the quantity
func (api *ProcurementAPI) ApproveItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var payload procurementmapper.ApproveItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil && c.Request.ContentLength > 0 {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := api.service.ApproveItem(c.Request.Context(), id, payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, procurementmapper.FromDomainItem(item))
}

// Post /v1/items/:itemId/reject
// Reject an item
func (api *ProcurementAPI) RejectItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	item, err := api.service.RejectItem(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, procurementmapper.FromDomainItem(item))
}

// Post /v1/items/:itemId/purchase
// Mark an approved item as purchased
func (api *ProcurementAPI) PurchaseItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	item, err := api.service.PurchaseItem(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, procurementmapper.FromDomainItem(item))
}

// Post /v1/items/:itemId/cancel
// Cancel a single item
func (api *ProcurementAPI) CancelItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	item, err := api.service.CancelItem(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, procurementmapper.FromDomainItem(item))
}

// Post /v1/items/:itemId/receipts
// Record a full or partial receipt against an item
func (api *ProcurementAPI) ReceiveItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var payload procurementmapper.ReceiveItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := api.service.ReceiveItem(c.Request.Context(), procurementmapper.ToReceiveItemInput(id, payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, procurementmapper.FromDomainItem(item))
}

// Delete /v1/items/:itemId/receipts
// Undo the receipt of a fully received item
func (api *ProcurementAPI) UndoReceive(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	item, err := api.service.UndoReceive(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, procurementmapper.FromDomainItem(item))
}

// Patch /v1/items/:itemId/approved-quantity
// Replace the approved quantity of an approved or purchased item
func (api *ProcurementAPI) EditApprovedQuantity(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var payload procurementmapper.EditQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := api.service.EditApprovedQuantity(c.Request.Context(), id, payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, procurementmapper.FromDomainItem(item))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

// procurementProblems classifies procurement service errors. The
// application layer wraps domain state violations in ErrConflictState,
// so the transport never has to know individual domain sentinels.
func procurementProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, procurementports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, procurementapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, procurementapp.ErrConflictState),
		errors.Is(err, procurementapp.ErrRetriesExhausted),
		errors.Is(err, procurementports.ErrConflict):
		return apierrors.NewConflictProblem(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
