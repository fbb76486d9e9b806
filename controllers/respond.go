package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phillip/hostel-fest-payments/services"
	"github.com/phillip/hostel-fest-payments/utils"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrBackupDisabled):
		return http.StatusServiceUnavailable
	case services.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err. Validation and internal failures carry the toast the
// flow raised.
func fail(c *gin.Context, app *services.App, err error) {
	body := gin.H{"error": err.Error()}
	if services.IsValidation(err) || errors.Is(err, services.ErrInternal) {
		if t, ok := app.Toasts().Last(); ok {
			body["toast"] = t
		}
	}
	c.JSON(statusFor(err), body)
}

// writeCached sends v with an ETag, or 304 when the client already has it.
func writeCached(c *gin.Context, v any) {
	etag, err := utils.GenerateETag(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not encode response"})
		return
	}
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("ETag", etag)
	c.JSON(http.StatusOK, v)
}
