package maintenanceserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	procurementmemory "github.com/azaconnect/maintenance-api/internal/domains/procurement/adapters/memory"
	procurementapp "github.com/azaconnect/maintenance-api/internal/domains/procurement/application"
	procurementports "github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
	apierrors "github.com/azaconnect/maintenance-api/internal/shared/errors"
)

type problemBody struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

func newProcurementRouter(t *testing.T) (*gin.Engine, *procurementapp.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := procurementapp.NewService(procurementmemory.NewRepository())
	handlers := ApiHandleFunctions{ProcurementAPI: NewProcurementAPI(svc)}
	return NewRouterWithGinEngine(gin.New(), handlers), svc
}

func sampleOrderInput() procurementports.CreateOrderInput {
	return procurementports.CreateOrderInput{
		Number:      "PED-2024-019",
		RequestedBy: "marcos",
		Sector:      "knitting",
		Items: []procurementports.NewItemInput{
			{Code: "AG-7", Unit: "pc", Quantity: decimal.NewFromInt(5)},
		},
	}
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) problemBody {
	t.Helper()
	assert.Contains(t, rec.Header().Get("Content-Type"), apierrors.ContentTypeProblemJSON)
	var problem problemBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestMissingOrderRespondsNotFoundProblem(t *testing.T) {
	router, _ := newProcurementRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/orders/99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeNotFound, problem.Type)
	assert.Equal(t, http.StatusNotFound, problem.Status)
	assert.Equal(t, "/v1/orders/99", problem.Instance)
}

func TestStateConflictRespondsConflictProblem(t *testing.T) {
	router, svc := newProcurementRouter(t)
	order, err := svc.CreateOrder(context.Background(), sampleOrderInput())
	require.NoError(t, err)
	itemID := order.Items[0].ID

	// Receiving a pending item violates the item lifecycle.
	rec := doRequest(t, router, http.MethodPost,
		"/v1/items/"+strconv.FormatInt(itemID, 10)+"/receipts",
		`{"quantity": 2}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeConflict, problem.Type)
	assert.NotEmpty(t, problem.Detail)
}

func TestInvalidOrderInputRespondsBadRequestProblem(t *testing.T) {
	router, _ := newProcurementRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/orders",
		`{"number": "PED-2024-020", "items": []}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeBadRequest, problem.Type)
}

func TestUnmappedErrorFallsBackToInternalProblem(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/orders", nil)

	serviceResponder.RespondError(c, errors.New("disk on fire"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeInternal, problem.Type)
	assert.Equal(t, "disk on fire", problem.Detail)
}
