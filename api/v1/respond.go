package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issuetrack-api/apperror"
	"github.com/issuetrack-api/logger"
	"github.com/issuetrack-api/metrics"
	"github.com/issuetrack-api/middleware"
	"github.com/issuetrack-api/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// statusFor maps a failure reason to its HTTP status
func statusFor(reason apperror.Reason) int {
	switch reason {
	case apperror.ReasonNotFound:
		return http.StatusNotFound
	case apperror.ReasonUnauthenticated:
		return http.StatusUnauthorized
	case apperror.ReasonForbidden:
		return http.StatusForbidden
	case apperror.ReasonInvalidInput, apperror.ReasonInvalidTransition, apperror.ReasonConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// reporter writes responses and emits one outcome event per operation. It
// only observes results.
type reporter struct {
	metrics *metrics.Metrics
}

func (r reporter) event(c *gin.Context, level zapcore.Level, operation, outcome string, fields []zap.Field) {
	base := []zap.Field{
		zap.String("event", operation),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("outcome", outcome),
	}
	if principal, ok := middleware.GetPrincipal(c); ok {
		base = append(base, zap.String("actor_id", principal.UserID))
	}
	if ce := logger.FromGin(c).Check(level, operation); ce != nil {
		ce.Write(append(base, fields...)...)
	}
	r.metrics.RecordOperation(operation, outcome)
}

// success writes the data envelope. Reads log at debug, everything else at info.
func (r reporter) success(c *gin.Context, status int, operation string, data interface{}, fields ...zap.Field) {
	level := zapcore.InfoLevel
	if c.Request.Method == http.MethodGet {
		level = zapcore.DebugLevel
	}
	r.event(c, level, operation, outcomeSuccess, fields)

	if status == http.StatusNoContent {
		c.Status(status)
		return
	}
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

// fail renders a typed failure. Internal causes are logged, never returned.
func (r reporter) fail(c *gin.Context, operation string, err error, fields ...zap.Field) {
	appErr := apperror.As(err)
	status := statusFor(appErr.Reason)

	fields = append(fields, zap.String("reason", string(appErr.Reason)))
	if status == http.StatusInternalServerError {
		r.event(c, zapcore.ErrorLevel, operation, outcomeError, append(fields, zap.Error(errors.Unwrap(appErr))))
	} else {
		r.event(c, zapcore.WarnLevel, operation, outcomeRejected, append(fields, zap.String("message", appErr.Message)))
	}

	body := gin.H{
		"status":  "error",
		"reason":  appErr.Reason,
		"message": appErr.Message,
	}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	if appErr.From != "" || appErr.To != "" {
		body["from"] = appErr.From
		body["to"] = appErr.To
	}
	c.JSON(status, body)
}

// bindJSON parses the request body, reporting a failure as InvalidInput
func (r reporter) bindJSON(c *gin.Context, operation string, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		r.fail(c, operation, apperror.InvalidInput("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// principal returns the authenticated principal set by AuthMiddleware
func (r reporter) principal(c *gin.Context, operation string) (models.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		r.fail(c, operation, apperror.Unauthenticated("Authentication required"))
	}
	return principal, ok
}
