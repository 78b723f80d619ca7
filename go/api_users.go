package maintenanceserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/azaconnect/maintenance-api/internal/domains/users/adapters/http/mapper"
	userdomain "github.com/azaconnect/maintenance-api/internal/domains/users/domain"
	userports "github.com/azaconnect/maintenance-api/internal/domains/users/ports"
	apierrors "github.com/azaconnect/maintenance-api/internal/shared/errors"
)

// UserAPI wires HTTP transport with the users bounded context service.
type UserAPI struct {
	service userports.Service
}

// NewUserAPI creates a UserAPI backed by the provided service.
func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /v1/users
// Register a new user
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload usermapper.MutationUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := usermapper.ToDomainUser(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.CreateUser(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usermapper.FromDomainUser(created))
}

// Get /v1/users
// List all users
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUserList(users))
}

// Get /v1/users/:username
// Find a user by username
func (api *UserAPI) GetUserByName(c *gin.Context) {
	user, err := api.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}

// Put /v1/users/:username
// Update an existing user
func (api *UserAPI) UpdateUser(c *gin.Context) {
	var payload usermapper.MutationUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payload.Username = c.Param("username")
	updated, err := usermapper.ToDomainUpdate(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.Update(c.Request.Context(), c.Param("username"), updated)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(saved))
}

// Delete /v1/users/:username
// Delete a user
func (api *UserAPI) DeleteUser(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/users/login
// Log a user in and return a session token
func (api *UserAPI) LoginUser(c *gin.Context) {
	var payload usermapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	token, err := api.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Post /v1/users/logout
// Log the current user out
func (api *UserAPI) LogoutUser(c *gin.Context) {
	api.service.Logout(c.Request.Context(), c.Query("username"))
	c.Status(http.StatusOK)
}

// userProblems classifies users service errors.
func userProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, userports.ErrInvalidCredentials):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, userdomain.ErrEmptyUsername),
		errors.Is(err, userdomain.ErrEmptyPassword),
		errors.Is(err, userdomain.ErrWeakPassword),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidRole):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
