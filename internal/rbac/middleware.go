package rbac

import (
	"net/http"

	authmw "github.com/mind-engage/docexam/internal/auth/middleware"
)

var defaultChecker = NewChecker(nil)

// Require enforces a single permission for the role placed in the context
// by the auth middleware.
func Require(perm string) func(http.Handler) http.Handler {
	return RequireWith(defaultChecker, perm)
}

func RequireWith(c *Checker, perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := authmw.RoleFromContext(r.Context())
			if role == "" || !c.Has(role, perm) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
