package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookingapp/internal/middleware"
	"bookingapp/internal/models"
	"bookingapp/internal/services"
	"bookingapp/internal/utils"
)

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
	otpService  *services.OTPService
}

func NewAuthHandler(userService services.UserService, authService services.AuthService, otpService *services.OTPService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		otpService:  otpService,
	}
}

// @Summary      Register a new user
// @Description  Creates an account, emails a confirmation OTP and returns a token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      201       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email"})
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user := &models.User{
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
		IsActive:  true,
	}
	if err := h.userService.CreateUserWithPassword(user, req.Password); err != nil {
		if err == services.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already exists"})
			return
		}
		log.Printf("[auth][register] create failed for email=%q: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := h.otpService.Issue(user); err != nil {
		log.Printf("[auth][register] otp issue failed for user_id=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	accessToken, err := middleware.NewAccessToken(user.ID)
	if err != nil {
		log.Printf("[auth][register] sign access token failed for user_id=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate access token"})
		return
	}
	refreshToken, err := middleware.NewRefreshToken(user.ID)
	if err != nil {
		log.Printf("[auth][register] sign refresh token failed for user_id=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate refresh token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered. OTP sent to email for verification.",
		"userData": gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
			"createdAt":    user.CreatedAt,
		},
	})
}

// @Summary      Log in
// @Description  Authenticates a user and returns access and refresh tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.userService.GetUserByEmail(email)
	if err != nil {
		log.Printf("[auth][login] lookup failed for email=%q: %v", email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	// a missing user and a wrong password are indistinguishable to the client
	if user == nil || h.authService.CheckPassword(user.PasswordHash, req.Password) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	accessToken, err := middleware.NewAccessToken(user.ID)
	if err != nil {
		log.Printf("[auth][login] sign access token failed for user_id=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate access token"})
		return
	}
	refreshToken, err := middleware.NewRefreshToken(user.ID)
	if err != nil {
		log.Printf("[auth][login] sign refresh token failed for user_id=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"userData": gin.H{
			"id":              user.ID,
			"email":           user.Email,
			"first_name":      user.FirstName,
			"last_name":       user.LastName,
			"profile_picture": user.Avatar,
			"is_active":       user.IsActive,
			"is_admin":        user.IsAdmin,
			"accessToken":     accessToken,
			"refreshToken":    refreshToken,
			"createdAt":       user.CreatedAt,
			"updatedAt":       user.UpdatedAt,
		},
	})
}

// RefreshToken mints a new access token; the refresh token is not rotated.
//
// @Summary      Refresh the access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        refresh  body      object  true  "refresh_token"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	claims, err := middleware.ParseToken(strings.TrimSpace(req.RefreshToken), middleware.TokenTypeRefresh)
	if err != nil {
		log.Printf("[auth][refresh] token rejected: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
		return
	}

	accessToken, err := middleware.NewAccessToken(claims.UserID)
	if err != nil {
		log.Printf("[auth][refresh] sign access token failed for user_id=%s: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"message":      "Token refreshed successfully",
	})
}

// Logout only acknowledges; tokens stay valid until natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "logout successful"})
}

func (h *AuthHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server is up and running"})
}
