package middleware

import "context"

type contextKey string

const ctxFingerprint contextKey = "identity_fingerprint"

// FingerprintFromContext returns the shopper fingerprint set by the Identity middleware.
func FingerprintFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxFingerprint).(string); ok {
		return v
	}
	return ""
}

func WithFingerprint(ctx context.Context, fingerprint string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxFingerprint, fingerprint)
}

const ctxRequestID contextKey = "request_id"

// RequestIDFromContext returns the id assigned by the RequestID middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRequestID, id)
}
