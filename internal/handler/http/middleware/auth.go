package middleware

import (
	"context"
	"net/http"

	"github.com/complyhr/complyhr-backend-go/internal/domain/auth"
	"github.com/complyhr/complyhr-backend-go/internal/domain/user"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a valid access token and copies the
// identity claims into the request context for the service layer.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), "user_id", userID)

			if roleStr, ok := claims["role"].(string); ok {
				ctx = context.WithValue(ctx, "user_role", user.Role(roleStr))
			}
			if companyID, ok := claims["company_id"].(string); ok && companyID != "" {
				ctx = context.WithValue(ctx, "company_id", companyID)
			}
			if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
				ctx = context.WithValue(ctx, "employee_id", employeeID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// UserID returns the authenticated user's ID from the request context.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value("user_id").(string)
	return id
}

// CompanyID returns the authenticated user's company from the request context.
func CompanyID(ctx context.Context) string {
	id, _ := ctx.Value("company_id").(string)
	return id
}

// EmployeeID returns the caller's employee record ID, if any.
func EmployeeID(ctx context.Context) string {
	id, _ := ctx.Value("employee_id").(string)
	return id
}

// Role returns the caller's role from the request context.
func Role(ctx context.Context) user.Role {
	role, _ := ctx.Value("user_role").(user.Role)
	return role
}
