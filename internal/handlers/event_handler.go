package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookingapp/internal/authz"
	"bookingapp/internal/models"
	"bookingapp/internal/services"
)

type EventHandler struct {
	service services.EventService
}

func NewEventHandler(service services.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// @Summary      Create an event
// @Description  Admin-only; the creator is taken from the access token
// @Tags         Events
// @Accept       json
// @Produce      json
// @Param        event  body      models.EventRequest  true  "Event data"
// @Success      201    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Router       /api/v1/event [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	event := &models.Event{
		EventName:   req.EventName,
		Location:    req.Location,
		DateTime:    req.DateTime,
		Description: req.Description,
		Price:       req.Price,
		CreatorID:   currentUser(c).ID,
	}
	if err := h.service.CreateEvent(event); err != nil {
		log.Printf("[events][create] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully", "data": event})
}

// @Summary      Get an event
// @Tags         Events
// @Produce      json
// @Param        event_id  path      string  true  "Event ID"
// @Success      200  {object}  models.Event
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/event/{event_id} [get]
func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "event_id")
	if !ok {
		return
	}
	event, err := h.service.GetEventByID(id)
	if err != nil {
		if err == services.ErrEventNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		log.Printf("[events][get] failed for event_id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// @Summary      List all events
// @Tags         Events
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/event [get]
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.ListEvents()
	if err != nil {
		log.Printf("[events][list] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events, "total_events": len(events)})
}

func (h *EventHandler) ListUpcoming(c *gin.Context) {
	events, err := h.service.ListUpcomingEvents()
	if err != nil {
		log.Printf("[events][upcoming] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events, "total_events": len(events)})
}

// @Summary      Update an event
// @Description  Allowed for the creating admin or any admin
// @Tags         Events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        event_id  path      string               true  "Event ID"
// @Param        event     body      models.EventRequest  true  "Event data"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/event/{event_id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "event_id")
	if !ok {
		return
	}
	event, err := h.service.GetEventByID(id)
	if err != nil {
		if err == services.ErrEventNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		log.Printf("[events][update] lookup failed for event_id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if !authz.CanManageEvent(currentUser(c), event) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	event.EventName = req.EventName
	event.Location = req.Location
	event.DateTime = req.DateTime
	event.Description = req.Description
	event.Price = req.Price

	if err := h.service.UpdateEvent(event); err != nil {
		log.Printf("[events][update] failed for event_id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully", "data": event})
}

// @Summary      Delete an event
// @Tags         Events
// @Produce      json
// @Security     BearerAuth
// @Param        event_id  path      string  true  "Event ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/event/{event_id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "event_id")
	if !ok {
		return
	}
	event, err := h.service.GetEventByID(id)
	if err != nil {
		if err == services.ErrEventNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		log.Printf("[events][delete] lookup failed for event_id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if !authz.CanManageEvent(currentUser(c), event) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}
	if err := h.service.DeleteEvent(id); err != nil {
		log.Printf("[events][delete] failed for event_id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func (h *EventHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Event routes working"})
}
