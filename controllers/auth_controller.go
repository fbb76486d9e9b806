package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phillip/hostel-fest-payments/config"
	"github.com/phillip/hostel-fest-payments/middleware"
	"github.com/phillip/hostel-fest-payments/services"
)

// ---------------- REGISTER ----------------
func Register(cfg *config.Config, app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		user, err := app.Register(c.Request.Context(), input)
		if err != nil {
			fail(c, app, err)
			return
		}

		sess := app.Session()
		if sess == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no session after registration"})
			return
		}
		token, err := middleware.IssueToken(cfg, *sess, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"user":    user,
			"session": sess,
			"token":   token,
		})
	}
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config, app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		sess, err := app.Login(c.Request.Context(), input)
		if err != nil {
			fail(c, app, err)
			return
		}

		token, err := middleware.IssueToken(cfg, sess, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": sess, "token": token, "view": app.State().View})
	}
}

// ---------------- LOGOUT ----------------
func Logout(app *services.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.Logout()
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully", "view": app.State().View})
	}
}
