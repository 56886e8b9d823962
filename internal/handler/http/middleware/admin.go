package middleware

import (
	"net/http"

	"github.com/complyhr/complyhr-backend-go/internal/domain/user"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/response"
)

// AdminOnly restricts a route to administrator accounts. Must sit below
// AuthRequired in the middleware chain.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Role(r.Context()) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
