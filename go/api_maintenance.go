package maintenanceserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	maintenancemapper "github.com/azaconnect/maintenance-api/internal/domains/maintenance/adapters/http/mapper"
	maintenancedomain "github.com/azaconnect/maintenance-api/internal/domains/maintenance/domain"
	maintenanceports "github.com/azaconnect/maintenance-api/internal/domains/maintenance/ports"
	apierrors "github.com/azaconnect/maintenance-api/internal/shared/errors"
)

// MaintenanceAPI wires HTTP transport with the maintenance bounded context
// service, covering both corrective requests and preventive schedules.
type MaintenanceAPI struct {
	service maintenanceports.Service
}

// NewMaintenanceAPI creates a MaintenanceAPI backed by the provided service.
func NewMaintenanceAPI(service maintenanceports.Service) MaintenanceAPI {
	return MaintenanceAPI{service: service}
}

// Post /v1/maintenance/requests
// Open a corrective maintenance request
func (api *MaintenanceAPI) CreateRequest(c *gin.Context) {
	var payload maintenancemapper.MutationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	request, err := api.service.CreateRequest(c.Request.Context(), maintenancemapper.ToCreateRequestInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, maintenancemapper.FromDomainRequest(request))
}

// Get /v1/maintenance/requests
// List requests, optionally filtered by asset, status, or sector
func (api *MaintenanceAPI) ListRequests(c *gin.Context) {
	filter := maintenanceports.RequestFilter{
		Status: maintenancedomain.RequestStatus(c.Query("status")),
		Sector: c.Query("sector"),
	}
	if raw := c.Query("assetId"); raw != "" {
		assetID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		filter.AssetID = assetID
	}
	requests, err := api.service.ListRequests(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenancemapper.FromDomainRequestList(requests))
}

// Get /v1/maintenance/requests/:requestId
// Find a request by ID
func (api *MaintenanceAPI) GetRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}
	request, err := api.service.GetRequest(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenancemapper.FromDomainRequest(request))
}

// Post /v1/maintenance/requests/:requestId/assign
// Assign a request to a technician
func (api *MaintenanceAPI) AssignRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}
	var payload maintenancemapper.AssignRequestBody
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	request, err := api.service.AssignRequest(c.Request.Context(), id, payload.Technician)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenancemapper.FromDomainRequest(request))
}

// Post /v1/maintenance/requests/:requestId/complete
// Close a request with a resolution summary
func (api *MaintenanceAPI) CompleteRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}
	var payload maintenancemapper.CompleteRequestBody
	if err := c.ShouldBindJSON(&payload); err != nil && c.Request.ContentLength > 0 {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	request, err := api.service.CompleteRequest(c.Request.Context(), id, payload.Resolution)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenancemapper.FromDomainRequest(request))
}

// Post /v1/maintenance/requests/:requestId/cancel
// Cancel an open request
func (api *MaintenanceAPI) CancelRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}
	request, err := api.service.CancelRequest(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenancemapper.FromDomainRequest(request))
}

// Post /v1/maintenance/schedules
// Create a preventive maintenance schedule
func (api *MaintenanceAPI) CreateSchedule(c *gin.Context) {
	var payload maintenancemapper.MutationSchedule
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	schedule, err := api.service.CreateSchedule(c.Request.Context(), maintenancemapper.ToCreateScheduleInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, maintenancemapper.FromDomainSchedule(schedule))
}

// Get /v1/maintenance/schedules
// List schedules, optionally scoped to one asset
func (api *MaintenanceAPI) ListSchedules(c *gin.Context) {
	var assetID int64
	if raw := c.Query("assetId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		assetID = parsed
	}
	schedules, err := api.service.ListSchedules(c.Request.Context(), assetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenancemapper.FromDomainScheduleList(schedules))
}

// Get /v1/maintenance/schedules/:scheduleId
// Find a schedule by ID
func (api *MaintenanceAPI) GetSchedule(c *gin.Context) {
	id, ok := parseIDParam(c, "scheduleId")
	if !ok {
		return
	}
	schedule, err := api.service.GetSchedule(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenancemapper.FromDomainSchedule(schedule))
}

// Post /v1/maintenance/schedules/:scheduleId/complete
// Record a completed round and advance the next due date
func (api *MaintenanceAPI) CompleteSchedule(c *gin.Context) {
	id, ok := parseIDParam(c, "scheduleId")
	if !ok {
		return
	}
	schedule, err := api.service.CompleteSchedule(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenancemapper.FromDomainSchedule(schedule))
}

// Put /v1/maintenance/schedules/:scheduleId/checklist/:position
// Tick or untick one checklist step
func (api *MaintenanceAPI) CheckScheduleItem(c *gin.Context) {
	id, ok := parseIDParam(c, "scheduleId")
	if !ok {
		return
	}
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var payload maintenancemapper.CheckItemBody
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	schedule, err := api.service.CheckScheduleItem(c.Request.Context(), id, position, payload.Done)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenancemapper.FromDomainSchedule(schedule))
}

// Post /v1/maintenance/schedules/:scheduleId/deactivate
// Suspend a schedule without deleting its history
func (api *MaintenanceAPI) DeactivateSchedule(c *gin.Context) {
	id, ok := parseIDParam(c, "scheduleId")
	if !ok {
		return
	}
	schedule, err := api.service.DeactivateSchedule(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenancemapper.FromDomainSchedule(schedule))
}

// Get /v1/maintenance/schedules/due
// List active schedules due at or before the given instant
func (api *MaintenanceAPI) ListDueSchedules(c *gin.Context) {
	asOf := time.Now()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		asOf = parsed
	}
	schedules, err := api.service.DueSchedules(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenancemapper.FromDomainScheduleList(schedules))
}

// maintenanceProblems classifies maintenance service errors.
func maintenanceProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, maintenanceports.ErrNotFound),
		errors.Is(err, maintenancedomain.ErrNoChecklistItem):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, maintenancedomain.ErrRequestClosed),
		errors.Is(err, maintenancedomain.ErrNotAssigned),
		errors.Is(err, maintenancedomain.ErrInactive):
		return apierrors.NewConflictProblem(err.Error()), true
	case errors.Is(err, maintenancedomain.ErrEmptyTitle),
		errors.Is(err, maintenancedomain.ErrMissingAsset),
		errors.Is(err, maintenancedomain.ErrInvalidPriority),
		errors.Is(err, maintenancedomain.ErrInvalidInterval):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
