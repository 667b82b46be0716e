package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookingapp/internal/models"
	"bookingapp/internal/services"
	"bookingapp/internal/utils"
)

type UserHandler struct {
	service     services.UserService
	authService services.AuthService
}

func NewUserHandler(service services.UserService, authService services.AuthService) *UserHandler {
	return &UserHandler{service: service, authService: authService}
}

// fields are optional; only present ones are applied
type updateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Avatar    *string `json:"avatar"`
	Password  *string `json:"password"`
}

func (h *UserHandler) applyUpdate(c *gin.Context, user *models.User, req *updateUserRequest) bool {
	if req.Email != nil {
		if !utils.ValidateEmail(*req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email"})
			return false
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Password != nil {
		if err := utils.ValidatePassword(*req.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return false
		}
		hash, err := h.authService.HashPassword(*req.Password)
		if err != nil {
			log.Printf("[users][update] hash password failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return false
		}
		user.PasswordHash = hash
	}
	return true
}

func (h *UserHandler) saveUpdate(c *gin.Context, user *models.User) {
	if err := h.service.UpdateUser(user); err != nil {
		if err == services.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already exists"})
			return
		}
		log.Printf("[users][update] save failed for user_id=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ===== profile =====

// @Summary      Get the current user's profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/auth/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// @Summary      Update the current user's profile
// @Description  Partial update; a new password must pass the password policy
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/auth/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := currentUser(c)

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !h.applyUpdate(c, user, &req) {
		return
	}
	h.saveUpdate(c, user)
}

func (h *UserHandler) DeleteProfile(c *gin.Context) {
	user := currentUser(c)
	if err := h.service.DeleteUser(user.ID); err != nil {
		log.Printf("[users][delete] failed for user_id=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}

// ===== admin surface =====

func (h *UserHandler) listResponse(c *gin.Context, totalKey string, users []*models.User, err error) {
	if err != nil {
		log.Printf("[users][list] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, totalKey: len(users)})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers()
	h.listResponse(c, "total_users", users, err)
}

func (h *UserHandler) ListAdmins(c *gin.Context) {
	users, err := h.service.ListAdmins()
	h.listResponse(c, "total_admins", users, err)
}

func (h *UserHandler) ListActiveUsers(c *gin.Context) {
	users, err := h.service.ListUsersByActive(true)
	h.listResponse(c, "total_active_users", users, err)
}

func (h *UserHandler) ListInactiveUsers(c *gin.Context) {
	users, err := h.service.ListUsersByActive(false)
	h.listResponse(c, "total_inactive_users", users, err)
}

func (h *UserHandler) ListVerifiedUsers(c *gin.Context) {
	users, err := h.service.ListUsersByVerified(true)
	h.listResponse(c, "total_verified_users", users, err)
}

func (h *UserHandler) ListUnverifiedUsers(c *gin.Context) {
	users, err := h.service.ListUsersByVerified(false)
	h.listResponse(c, "total_unverified_users", users, err)
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.service.GetUserByID(id)
	if err != nil {
		log.Printf("[users][get] failed for user_id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.service.GetUserByID(id)
	if err != nil {
		log.Printf("[users][update] lookup failed for user_id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !h.applyUpdate(c, user, &req) {
		return
	}
	h.saveUpdate(c, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.service.GetUserByID(id)
	if err != nil {
		log.Printf("[users][delete] lookup failed for user_id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err := h.service.DeleteUser(id); err != nil {
		log.Printf("[users][delete] failed for user_id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *UserHandler) setFlag(c *gin.Context, apply func(id string) (*models.User, error)) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	user, err := apply(id)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("[users][flag] failed for user_id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) MakeAdmin(c *gin.Context) {
	h.setFlag(c, func(id string) (*models.User, error) { return h.service.SetAdmin(id, true) })
}

func (h *UserHandler) RemoveAdmin(c *gin.Context) {
	h.setFlag(c, func(id string) (*models.User, error) { return h.service.SetAdmin(id, false) })
}

func (h *UserHandler) ActivateUser(c *gin.Context) {
	h.setFlag(c, func(id string) (*models.User, error) { return h.service.SetActive(id, true) })
}

func (h *UserHandler) DeactivateUser(c *gin.Context) {
	h.setFlag(c, func(id string) (*models.User, error) { return h.service.SetActive(id, false) })
}
