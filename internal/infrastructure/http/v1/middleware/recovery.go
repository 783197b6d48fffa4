// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"milkledger/internal/core/apperror"
	"milkledger/pkg/logger"
)

// Recovery middleware recovers from panics and returns 500 error.
// Logs stack trace but never exposes internal details to client. The
// response is written here because the error handler sits further down
// the chain and has already unwound when the panic is caught.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
				)

				_ = c.Error(apperror.NewInternal(fmt.Errorf("panic: %v", err)))
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(500, gin.H{
						"code":    apperror.CodeInternal,
						"message": "Internal server error",
						"details": map[string]any{
							"request_id": c.GetString("request_id"),
						},
					})
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
