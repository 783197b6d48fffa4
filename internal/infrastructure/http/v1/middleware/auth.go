package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"milkledger/internal/core/appctx"
	"milkledger/internal/core/apperror"
)

// TokenValidator validates a bearer token and returns the operator name.
type TokenValidator interface {
	Validate(tokenString string) (string, error)
}

// Auth middleware validates bearer tokens and puts the operator into the
// request context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		operator, err := validator.Validate(parts[1])
		if err != nil {
			_ = c.Error(apperror.NewUnauthorized("invalid token"))
			c.Abort()
			return
		}

		ctx := appctx.WithOperator(c.Request.Context(), operator)
		c.Request = c.Request.WithContext(ctx)
		c.Set("operator", operator)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
