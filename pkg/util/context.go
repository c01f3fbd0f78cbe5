package util

import (
	"context"
)

type key string

const (
	clientIPKey = key("x-forwarded-for")
)

// Fields returns the key-value pairs this package has set into `ctx`.
func Fields(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"request_id": GetRequestID(ctx),
		"client_ip":  GetClientIP(ctx),
	}
}

// WithClientIP returns a context with a client ip
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// GetClientIP returns client ip from context
// will return empty string if not present
func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}
