package handlers

import (
	"errors"
	"net/http"

	"sdtech_backend/internal/services"
	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminUserHandler serves /admin/users.
type AdminUserHandler struct {
	adminService services.AdminUserService
}

func NewAdminUserHandler(as services.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{adminService: as}
}

func (h *AdminUserHandler) respondError(c *gin.Context, err error, failMsg string) {
	switch {
	case errors.Is(err, services.ErrAdminUnavailable):
		utils.RespondServiceUnavailable(c, "Admin user management is not available. Configure the service role key.", err.Error())
	case errors.Is(err, services.ErrEmailExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already exists.", err.Error()))
	default:
		respondServiceError(c, err, services.ErrUserNotFound, "User not found.", failMsg)
	}
}

// Health reports whether user management can run.
func (h *AdminUserHandler) Health(c *gin.Context) {
	health, err := h.adminService.Health(c.Request.Context())
	if err != nil {
		utils.LogError(err, "AdminUsers Health: check failed")
		utils.RespondServiceUnavailable(c, "Admin user management is not available.", err.Error())
		return
	}
	c.JSON(http.StatusOK, health)
}

func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		utils.LogError(err, "ListUsers: Error from adminService.ListUsers")
		h.respondError(c, err, "Failed to list users.")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminUserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	user, err := h.adminService.GetUser(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetUser: Error for ID "+id)
		h.respondError(c, err, "Failed to fetch user.")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminUserHandler) CreateUser(c *gin.Context) {
	var req services.CreateAdminUserRequest
	if !bindJSON(c, &req, "CreateUser") {
		return
	}
	user, err := h.adminService.CreateUser(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateUser: Error from adminService.CreateUser")
		h.respondError(c, err, "Failed to create user.")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AdminUserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	var req services.UpdateAdminUserRequest
	if !bindJSON(c, &req, "UpdateUser") {
		return
	}
	profile, err := h.adminService.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		utils.LogError(err, "UpdateUser: Error for ID "+id)
		h.respondError(c, err, "Failed to update user.")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AdminUserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.adminService.DeleteUser(c.Request.Context(), id); err != nil {
		utils.LogError(err, "DeleteUser: Error for ID "+id)
		h.respondError(c, err, "Failed to delete user.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
