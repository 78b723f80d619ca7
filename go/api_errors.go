package maintenanceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/azaconnect/maintenance-api/internal/shared/errors"
)

// serviceResponder classifies service errors through one mapper per
// bounded context. Each mapper lives next to its handlers; errors no
// mapper claims fall through to a 500 problem.
var serviceResponder = apierrors.NewChainedResponder("",
	procurementProblems,
	userProblems,
	assetProblems,
	maintenanceProblems,
	inventoryProblems,
	notificationProblems,
)

// respondServiceError renders a service-layer error as RFC 7807.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	serviceResponder.RespondError(c, err)
}

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError returns RFC 7807 responses for transport-level failures
// where the handler already knows the status, typically bind errors.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.NewConflictProblem(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}
