package watchapi

import "context"

type contextKey string

func (c contextKey) String() string {
	return "watchapi package context key " + string(c)
}

var contextKeyRequestUUID = contextKey("requestUUID")

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestUUID).(string)
	return id
}
