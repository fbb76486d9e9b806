package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phillip/hostel-fest-payments/services"
)

// GetStatus returns the student's dashboard header and payment panel.
func GetStatus(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		dash, err := app.UserDashboard()
		if err != nil {
			fail(c, app, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"welcome":        dash.Welcome,
			"event":          dash.Event,
			"status":         dash.Status,
			"paymentMethods": dash.PaymentMethods,
		})
	}
}

func GetHistory(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		dash, err := app.UserDashboard()
		if err != nil {
			fail(c, app, err)
			return
		}
		writeCached(c, dash.History)
	}
}

// SubmitPayment starts a payment. 202 means it is processing; the result
// shows up in /ui once the confirmation modal opens.
func SubmitPayment(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.PaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		out, err := app.SubmitPayment(c.Request.Context(), input)
		if err != nil {
			fail(c, app, err)
			return
		}
		if out.AlreadyPaid {
			c.JSON(http.StatusOK, out)
			return
		}
		c.JSON(http.StatusAccepted, out)
	}
}
