package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookingapp/internal/services"
)

type VerifyHandler struct {
	OTP *services.OTPService
}

func NewVerifyHandler(otp *services.OTPService) *VerifyHandler {
	return &VerifyHandler{OTP: otp}
}

// @Summary      Confirm registration OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        confirm  body      object  true  "email and otp"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/auth/confirm_otp [post]
func (h *VerifyHandler) ConfirmOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incomplete data"})
		return
	}

	switch err := h.OTP.Confirm(req.Email, req.OTP); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Email confirmed successfully"})
	case services.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case services.ErrOTPInvalid:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
	case services.ErrOTPExpired:
		c.JSON(http.StatusBadRequest, gin.H{"message": "OTP expired"})
	default:
		log.Printf("[otp][confirm] failed for email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// @Summary      Resend registration OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        resend  body      object  true  "email"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/auth/resend_otp [post]
func (h *VerifyHandler) ResendOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required to resend OTP"})
		return
	}

	switch err := h.OTP.Resend(req.Email); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "New OTP sent to email"})
	case services.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case services.ErrAlreadyConfirmed:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already confirmed"})
	default:
		log.Printf("[otp][resend] failed for email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
