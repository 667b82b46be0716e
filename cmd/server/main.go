package main

import "bookingapp/internal/app"

// @title           Booking App API
// @version         1.0
// @description     Event booking backend: registration with OTP email
// @description     confirmation, JWT auth, event and booking management.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
