package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phillip/hostel-fest-payments/navigation"
	"github.com/phillip/hostel-fest-payments/services"
)

// GetUI returns the page, tab and modal state plus the visible toasts.
func GetUI(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"state": app.State(), "toasts": app.Toasts().Active()})
	}
}

// SetView navigates between pages. Opening a dashboard without a session
// lands on the landing page.
func SetView(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			View string `json:"view" binding:"required"`
			Role string `json:"role"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		view, err := navigation.ParseView(input.View)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		switch view {
		case navigation.Landing:
			app.ShowLanding()
		case navigation.Login:
			role := navigation.RoleNone
			if input.Role != "" {
				if role, err = navigation.ParseRole(input.Role); err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}
			app.ShowLogin(role)
		case navigation.Register:
			app.ShowRegister()
		default:
			app.ShowDashboard(c.Request.Context())
		}
		c.JSON(http.StatusOK, app.State())
	}
}

func SelectTab(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		group := navigation.Group(c.Param("group"))
		if err := app.SelectTab(group, c.Param("tab")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, app.State())
	}
}

// CloseSMS dismisses the payment confirmation modal.
func CloseSMS(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.CloseSMS()
		c.JSON(http.StatusOK, app.State())
	}
}

func ListToasts(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, app.Toasts().Active())
	}
}

// GetEvent is public: the landing page shows the event and its fee.
func GetEvent(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ev := app.Snapshot().EventDetails
		writeCached(c, gin.H{
			"event":         ev,
			"deadlineLabel": ev.DeadlineLabel(),
		})
	}
}

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
