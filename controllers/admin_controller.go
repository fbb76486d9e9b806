package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phillip/hostel-fest-payments/services"
)

// GetStats recomputes the collected total and returns the summary cards.
func GetStats(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := app.RefreshStats(c.Request.Context())
		if err != nil {
			fail(c, app, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func ListPayments(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		dash, err := app.AdminDashboard()
		if err != nil {
			fail(c, app, err)
			return
		}
		writeCached(c, dash.Payments)
	}
}

func ListUsers(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		dash, err := app.AdminDashboard()
		if err != nil {
			fail(c, app, err)
			return
		}
		writeCached(c, dash.Users)
	}
}

// ListNotifications returns the log, newest first.
func ListNotifications(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		dash, err := app.AdminDashboard()
		if err != nil {
			fail(c, app, err)
			return
		}
		writeCached(c, dash.Notifications)
	}
}

func SendReminders(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		sent, err := app.SendReminders(c.Request.Context())
		if err != nil {
			fail(c, app, err)
			return
		}
		body := gin.H{"sent": sent}
		if t, ok := app.Toasts().Last(); ok {
			body["message"] = t.Message
		}
		c.JSON(http.StatusOK, body)
	}
}

// Backup uploads the store document to Cloudinary.
func Backup(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := app.Backup(c.Request.Context())
		if err != nil {
			fail(c, app, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}
