// controllers/reminder.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bridal-studio-backend/config"
)

// TriggerBookingReminders runs the notification dispatcher. The route is
// meant for an external scheduler and is protected by a shared secret, not
// the session middleware: the Authorization header must carry the configured
// bearer token. A wrong token runs nothing and logs nothing.
func TriggerBookingReminders(c *gin.Context) {
	secret := ""
	if config.App != nil {
		secret = config.App.CronSecret
	}
	if secret == "" || c.GetHeader("Authorization") != "Bearer "+secret {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	result := reminders.SendBookingReminders(c.Request.Context())
	status := http.StatusOK
	if !result.Success && result.Err != "" {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}
