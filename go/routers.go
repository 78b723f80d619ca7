package maintenanceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the server routes.
type Routes []Route

// ApiHandleFunctions holds the API handler groups wired into the router.
type ApiHandleFunctions struct {
	ProcurementAPI  ProcurementAPI
	UserAPI         UserAPI
	AssetAPI        AssetAPI
	MaintenanceAPI  MaintenanceAPI
	InventoryAPI    InventoryAPI
	NotificationAPI NotificationAPI
}

// NewRouter returns a new gin router with all API routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func defaultFunc(c *gin.Context) {}

func getRoutes(h ApiHandleFunctions) Routes {
	return Routes{
		// Procurement
		{"CreateOrder", http.MethodPost, "/v1/orders", h.ProcurementAPI.CreateOrder},
		{"ListOrders", http.MethodGet, "/v1/orders", h.ProcurementAPI.ListOrders},
		{"GetOrder", http.MethodGet, "/v1/orders/:orderId", h.ProcurementAPI.GetOrder},
		{"CancelOrder", http.MethodPost, "/v1/orders/:orderId/cancel", h.ProcurementAPI.CancelOrder},
		{"RefreshOrderStatus", http.MethodPost, "/v1/orders/:orderId/refresh-status", h.ProcurementAPI.RefreshOrderStatus},
		{"GetItem", http.MethodGet, "/v1/items/:itemId", h.ProcurementAPI.GetItem},
		{"ApproveItem", http.MethodPost, "/v1/items/:itemId/approve", h.ProcurementAPI.ApproveItem},
		{"RejectItem", http.MethodPost, "/v1/items/:itemId/reject", h.ProcurementAPI.RejectItem},
		{"PurchaseItem", http.MethodPost, "/v1/items/:itemId/purchase", h.ProcurementAPI.PurchaseItem},
		{"CancelItem", http.MethodPost, "/v1/items/:itemId/cancel", h.ProcurementAPI.CancelItem},
		{"ReceiveItem", http.MethodPost, "/v1/items/:itemId/receipts", h.ProcurementAPI.ReceiveItem},
		{"UndoReceive", http.MethodDelete, "/v1/items/:itemId/receipts", h.ProcurementAPI.UndoReceive},
		{"EditApprovedQuantity", http.MethodPatch, "/v1/items/:itemId/approved-quantity", h.ProcurementAPI.EditApprovedQuantity},

		// Users
		{"CreateUser", http.MethodPost, "/v1/users", h.UserAPI.CreateUser},
		{"ListUsers", http.MethodGet, "/v1/users", h.UserAPI.ListUsers},
		{"GetUser", http.MethodGet, "/v1/users/:username", h.UserAPI.GetUserByName},
		{"UpdateUser", http.MethodPut, "/v1/users/:username", h.UserAPI.UpdateUser},
		{"DeleteUser", http.MethodDelete, "/v1/users/:username", h.UserAPI.DeleteUser},
		{"LoginUser", http.MethodPost, "/v1/users/login", h.UserAPI.LoginUser},
		{"LogoutUser", http.MethodPost, "/v1/users/logout", h.UserAPI.LogoutUser},

		// Assets
		{"CreateAsset", http.MethodPost, "/v1/assets", h.AssetAPI.CreateAsset},
		{"ListAssets", http.MethodGet, "/v1/assets", h.AssetAPI.ListAssets},
		{"GetAsset", http.MethodGet, "/v1/assets/:assetId", h.AssetAPI.GetAsset},
		{"UpdateAsset", http.MethodPut, "/v1/assets/:assetId", h.AssetAPI.UpdateAsset},
		{"ChangeAssetStatus", http.MethodPost, "/v1/assets/:assetId/status", h.AssetAPI.ChangeStatus},
		{"DeleteAsset", http.MethodDelete, "/v1/assets/:assetId", h.AssetAPI.DeleteAsset},
		{"CreateSector", http.MethodPost, "/v1/sectors", h.AssetAPI.CreateSector},
		{"ListSectors", http.MethodGet, "/v1/sectors", h.AssetAPI.ListSectors},
		{"UpdateSector", http.MethodPut, "/v1/sectors/:sectorId", h.AssetAPI.UpdateSector},
		{"DeleteSector", http.MethodDelete, "/v1/sectors/:sectorId", h.AssetAPI.DeleteSector},

		// Maintenance
		{"CreateRequest", http.MethodPost, "/v1/maintenance/requests", h.MaintenanceAPI.CreateRequest},
		{"ListRequests", http.MethodGet, "/v1/maintenance/requests", h.MaintenanceAPI.ListRequests},
		{"GetRequest", http.MethodGet, "/v1/maintenance/requests/:requestId", h.MaintenanceAPI.GetRequest},
		{"AssignRequest", http.MethodPost, "/v1/maintenance/requests/:requestId/assign", h.MaintenanceAPI.AssignRequest},
		{"CompleteRequest", http.MethodPost, "/v1/maintenance/requests/:requestId/complete", h.MaintenanceAPI.CompleteRequest},
		{"CancelRequest", http.MethodPost, "/v1/maintenance/requests/:requestId/cancel", h.MaintenanceAPI.CancelRequest},
		{"CreateSchedule", http.MethodPost, "/v1/maintenance/schedules", h.MaintenanceAPI.CreateSchedule},
		{"ListSchedules", http.MethodGet, "/v1/maintenance/schedules", h.MaintenanceAPI.ListSchedules},
		{"GetSchedule", http.MethodGet, "/v1/maintenance/schedules/:scheduleId", h.MaintenanceAPI.GetSchedule},
		{"CompleteSchedule", http.MethodPost, "/v1/maintenance/schedules/:scheduleId/complete", h.MaintenanceAPI.CompleteSchedule},
		{"CheckScheduleItem", http.MethodPut, "/v1/maintenance/schedules/:scheduleId/checklist/:position", h.MaintenanceAPI.CheckScheduleItem},
		{"DeactivateSchedule", http.MethodPost, "/v1/maintenance/schedules/:scheduleId/deactivate", h.MaintenanceAPI.DeactivateSchedule},
		{"ListDueSchedules", http.MethodGet, "/v1/maintenance/schedules/due", h.MaintenanceAPI.ListDueSchedules},

		// Inventory
		{"RecordNeedleChange", http.MethodPost, "/v1/inventory/needle-changes", h.InventoryAPI.RecordNeedleChange},
		{"ListNeedleChanges", http.MethodGet, "/v1/inventory/needle-changes", h.InventoryAPI.ListNeedleChanges},
		{"DeleteNeedleChange", http.MethodDelete, "/v1/inventory/needle-changes/:changeId", h.InventoryAPI.DeleteNeedleChange},

		// Notifications
		{"ListNotifications", http.MethodGet, "/v1/notifications/:recipient", h.NotificationAPI.ListNotifications},
		{"MarkNotificationRead", http.MethodPost, "/v1/notifications/read/:notificationId", h.NotificationAPI.MarkRead},
	}
}
