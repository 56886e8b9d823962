package middleware

import (
	"net/http"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/subscription"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/response"
)

// SubscriptionMiddleware gates routes on the company's membership state.
type SubscriptionMiddleware struct {
	subscriptionService subscription.Service
}

func NewSubscriptionMiddleware(subscriptionService subscription.Service) *SubscriptionMiddleware {
	return &SubscriptionMiddleware{
		subscriptionService: subscriptionService,
	}
}

// RequireUsableSubscription checks that the company's membership still
// grants access. Cancelled memberships pass until their period ends.
func (m *SubscriptionMiddleware) RequireUsableSubscription(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID := CompanyID(r.Context())
		if companyID == "" {
			response.Forbidden(w, "no company associated with this user")
			return
		}

		sub, err := m.subscriptionService.GetMySubscription(r.Context(), companyID)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !sub.Status.IsUsable() || time.Now().After(sub.CurrentPeriodEnd) {
			response.HandleError(w, subscription.ErrSubscriptionExpired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireCanAddEmployee enforces the seat limit before headcount grows.
func (m *SubscriptionMiddleware) RequireCanAddEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID := CompanyID(r.Context())
		if companyID == "" {
			response.Forbidden(w, "no company associated with this user")
			return
		}

		canAdd, err := m.subscriptionService.CanAddEmployee(r.Context(), companyID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !canAdd {
			response.HandleError(w, subscription.ErrSeatLimitExceeded)
			return
		}

		next.ServeHTTP(w, r)
	})
}
