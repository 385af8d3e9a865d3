package handler

import "net/http"

type ContextKey string

var (
	RoleCtxKey ContextKey = "role"
	SubCtxKey  ContextKey = "sub"
)

// subject is the token subject set by the auth middleware, empty outside /api.
func subject(r *http.Request) string {
	sub, _ := r.Context().Value(SubCtxKey).(string)
	return sub
}
