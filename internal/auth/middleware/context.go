package auth

import "context"

type ctxKey string

const (
	ctxKeySub  ctxKey = "sub"
	ctxKeySid  ctxKey = "sid"
	ctxKeyRole ctxKey = "role"
)

func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxKeySub, sub)
}

func SubjectFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeySub); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKeySid, sid)
}

func SessionIDFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeySid); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxKeyRole, role)
}

func RoleFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeyRole); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
