package authz

import "bookingapp/internal/models"

// CanManageEvent allows the creating admin or any other admin.
func CanManageEvent(user *models.User, event *models.Event) bool {
	if user == nil || event == nil {
		return false
	}
	return user.IsAdmin || user.ID == event.CreatorID
}

// CanAccessBooking allows the booking owner or an admin.
func CanAccessBooking(user *models.User, booking *models.Booking) bool {
	if user == nil || booking == nil {
		return false
	}
	return user.IsAdmin || user.ID == booking.UserID
}
