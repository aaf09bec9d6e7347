package handlers

import (
	"net/http"

	"github.com/ayuraa/wellness-backend/internal/interfaces/http/middleware"
	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError writes the error envelope for err. Server-side failures are
// logged with their cause; clients only see the public message.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status := apperr.HTTPStatus(err)
	body := gin.H{"error": apperr.PublicMessage(err)}
	if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
		body["details"] = ae.Fields
	}

	if status >= http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		}).Error("Request failed")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// bindJSON decodes the request body into dst and answers 400 when it cannot
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": validation.FromBindError(err, dst),
		})
		return false
	}
	return true
}

// requireUser returns the authenticated user id or answers 401
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return "", false
	}
	return userID, true
}

// requireSelf answers 403 unless the authenticated user is ownerID
func requireSelf(c *gin.Context, ownerID string) bool {
	userID, ok := requireUser(c)
	if !ok {
		return false
	}
	if userID != ownerID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return false
	}
	return true
}
