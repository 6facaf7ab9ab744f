package httpx

import (
	"context"
	"net/http"
)

// Operation names a handler so later stages can select on it without
// matching paths. Response rewriting hooks key off this value.
type Operation string

// Tag marks every request passing through with the given operation.
func Tag(op Operation) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), CtxKeyOperation, op)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OperationFrom returns the operation tag on the context, if any.
func OperationFrom(ctx context.Context) (Operation, bool) {
	op, ok := ctx.Value(CtxKeyOperation).(Operation)
	return op, ok
}
