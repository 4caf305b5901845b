package httpx

import "context"

type ctxKey string

const (
	CtxKeyAccountID   ctxKey = "account_id"
	CtxKeyScopes      ctxKey = "scopes"
	CtxKeyDisplayName ctxKey = "display_name"
)

// AccountID returns the authenticated account id from the request context,
// or the empty string for unauthenticated requests.
func AccountID(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyAccountID).(string); ok {
		return v
	}
	return ""
}

// DisplayName returns the authenticated account's display name, if present.
func DisplayName(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyDisplayName).(string); ok {
		return v
	}
	return ""
}

func scopesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}
