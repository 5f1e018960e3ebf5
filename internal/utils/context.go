package utils

import (
	"context"

	"github.com/MemorialTransportation/web-backend/internal/session"
)

type contextKey string

const (
	ContextSessionKey   contextKey = "employeeSession"
	ContextRequestIDKey contextKey = "requestID"
)

func WithSession(ctx context.Context, t session.Token) context.Context {
	return context.WithValue(ctx, ContextSessionKey, t)
}

func GetSessionFromContext(ctx context.Context) (session.Token, bool) {
	t, ok := ctx.Value(ContextSessionKey).(session.Token)
	return t, ok
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextRequestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ContextRequestIDKey).(string)
	return id
}
