package appctx

import "context"

type operatorKey struct{}

// WithOperator adds the authenticated operator name to context.
func WithOperator(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operatorKey{}, name)
}

// GetOperator returns the operator name from context or empty string.
func GetOperator(ctx context.Context) string {
	if v, ok := ctx.Value(operatorKey{}).(string); ok {
		return v
	}
	return ""
}
