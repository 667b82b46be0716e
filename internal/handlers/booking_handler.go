package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookingapp/internal/authz"
	"bookingapp/internal/services"
)

type BookingHandler struct {
	service services.BookingService
}

func NewBookingHandler(service services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// GetBookings lists all bookings of an event.
//
// @Summary      List bookings of an event
// @Tags         Bookings
// @Produce      json
// @Security     BearerAuth
// @Param        event_id  path      string  true  "Event ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/booking/{event_id} [get]
func (h *BookingHandler) GetBookings(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	bookings, err := h.service.ListBookingsByEvent(eventID)
	if err != nil {
		log.Printf("[booking][list] failed for event_id=%s: %v", eventID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if len(bookings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No bookings found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bookings found", "data": bookings})
}

// @Summary      Book an event
// @Description  One booking per user and event; duplicates are rejected
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Param        event_id  path      string  true  "Event ID"
// @Success      201       {object}  map[string]interface{}
// @Failure      404       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /api/v1/booking/{event_id} [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	// body is optional; an empty one books for the caller
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// default to the caller; booking for somebody else is an admin move
	caller := currentUser(c)
	userID := req.UserID
	if userID == "" {
		userID = caller.ID
	} else {
		if _, err := uuid.Parse(userID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user_id"})
			return
		}
		if userID != caller.ID && !caller.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"message": "Cannot book for another user"})
			return
		}
	}

	booking, err := h.service.CreateBooking(userID, eventID)
	if err != nil {
		switch err {
		case services.ErrEventNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		case services.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case services.ErrAlreadyBooked:
			c.JSON(http.StatusConflict, gin.H{"message": "Booking already exists"})
		default:
			log.Printf("[booking][create] failed for user_id=%s event_id=%s: %v", userID, eventID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking has been successful", "data": booking})
}

// ReassignBooking moves a booking to a different event.
//
// @Summary      Move a booking to another event
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        booking_id  path      string  true  "Booking ID"
// @Param        reassign    body      object  true  "event_id"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/booking/{booking_id} [put]
func (h *BookingHandler) ReassignBooking(c *gin.Context) {
	bookingID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		EventID string `json:"event_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if _, err := uuid.Parse(req.EventID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event_id"})
		return
	}

	booking, err := h.service.GetBookingByID(bookingID)
	if err != nil {
		h.bookingError(c, bookingID, err)
		return
	}
	if !authz.CanAccessBooking(currentUser(c), booking) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	updated, err := h.service.ReassignBooking(bookingID, req.EventID)
	if err != nil {
		switch err {
		case services.ErrEventNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		case services.ErrAlreadyBooked:
			c.JSON(http.StatusConflict, gin.H{"message": "Booking already exists"})
		default:
			h.bookingError(c, bookingID, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "data": updated})
}

// @Summary      Cancel a booking
// @Tags         Bookings
// @Produce      json
// @Security     BearerAuth
// @Param        booking_id  path      string  true  "Booking ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/booking/{booking_id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := h.service.GetBookingByID(bookingID)
	if err != nil {
		h.bookingError(c, bookingID, err)
		return
	}
	if !authz.CanAccessBooking(currentUser(c), booking) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}
	if err := h.service.DeleteBooking(bookingID); err != nil {
		h.bookingError(c, bookingID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// Ticket streams the booking's PDF ticket.
//
// @Summary      Download a booking ticket
// @Description  PDF ticket for the booking owner or an admin
// @Tags         Bookings
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        booking_id  path      string  true  "Booking ID"
// @Success      200  {file}    file
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/booking/{booking_id}/ticket [get]
func (h *BookingHandler) Ticket(c *gin.Context) {
	bookingID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := h.service.GetBookingByID(bookingID)
	if err != nil {
		h.bookingError(c, bookingID, err)
		return
	}
	if !authz.CanAccessBooking(currentUser(c), booking) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	path, err := h.service.GenerateTicket(bookingID)
	if err != nil {
		log.Printf("[booking][ticket] failed for booking_id=%s: %v", bookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (h *BookingHandler) bookingError(c *gin.Context, bookingID string, err error) {
	if err == services.ErrBookingNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		return
	}
	log.Printf("[booking] failed for booking_id=%s: %v", bookingID, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
