package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/complyhr/complyhr-backend-go/internal/handler/http/middleware"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	JWTService          jwt.Service
	SubscriptionGate    *middleware.SubscriptionMiddleware
	AuthHandler         AuthHandler
	CompanyHandler      CompanyHandler
	EmployeeHandler     EmployeeHandler
	LeaveHandler        LeaveHandler
	TimesheetHandler    TimesheetHandler
	RecordsHandler      RecordsHandler
	PayslipHandler      PayslipHandler
	SubscriptionHandler SubscriptionHandler
	NotificationHandler NotificationHandler

	AllowedOrigins []string
	Environment    string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "complyhr"),
		slog.String("env", deps.Environment),
	)

	if len(deps.AllowedOrigins) == 0 {
		deps.AllowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.Register)
			r.Post("/login", deps.AuthHandler.Login)
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", deps.AuthHandler.LoginWithGoogle)
				r.Get("/callback/google", deps.AuthHandler.OAuthCallbackGoogle)
			})
		})

		// Payment gateway callback; authenticated by callback token.
		r.Post("/webhooks/payment", deps.SubscriptionHandler.PaymentWebhook)

		// SSE stream authenticates via its own short-lived query token.
		r.Get("/notifications/stream", deps.NotificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Get("/auth/session", deps.AuthHandler.Session)

			r.Route("/company", func(r chi.Router) {
				r.Get("/", deps.CompanyHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", deps.CompanyHandler.Update)
					r.Post("/logo", deps.CompanyHandler.UploadLogo)
				})
			})

			r.Route("/subscription", func(r chi.Router) {
				r.Get("/", deps.SubscriptionHandler.GetMine)
				r.Get("/plans", deps.SubscriptionHandler.ListPlans)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/invoices", deps.SubscriptionHandler.CreateInvoice)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", deps.NotificationHandler.List)
				r.Get("/unread-count", deps.NotificationHandler.UnreadCount)
				r.Get("/sse-token", deps.NotificationHandler.GetSSEToken)
				r.Patch("/{notificationID}/read", deps.NotificationHandler.MarkRead)
			})

			// Self-service routes for employee accounts.
			r.Route("/me", func(r chi.Router) {
				r.Get("/", deps.EmployeeHandler.GetMe)
				r.Get("/leave-requests", deps.LeaveHandler.ListMine)
				r.Post("/leave-requests", deps.LeaveHandler.Submit)
				r.Get("/leave-balance", deps.LeaveHandler.GetMyBalance)
				r.Get("/timesheet", deps.TimesheetHandler.GetMyLog)
				r.Post("/timesheet", deps.TimesheetHandler.AddEntry)
				r.Delete("/timesheet/{date}", deps.TimesheetHandler.DeleteEntry)
				r.Get("/tasks", deps.RecordsHandler.ListMyTasks)
				r.Get("/payslips", deps.PayslipHandler.ListMine)
			})

			r.Get("/announcements", deps.RecordsHandler.ListAnnouncements)
			r.Get("/leave-requests/{requestID}", deps.LeaveHandler.Get)
			r.Get("/payslips/{payslipID}/download", deps.PayslipHandler.Download)

			// Admin only, gated on a usable membership.
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Use(deps.SubscriptionGate.RequireUsableSubscription)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", deps.EmployeeHandler.List)

					r.Group(func(r chi.Router) {
						r.Use(deps.SubscriptionGate.RequireCanAddEmployee)
						r.Post("/", deps.EmployeeHandler.Create)
					})

					r.Route("/{employeeID}", func(r chi.Router) {
						r.Get("/", deps.EmployeeHandler.Get)
						r.Patch("/", deps.EmployeeHandler.Update)
						r.Delete("/", deps.EmployeeHandler.Delete)
						r.Put("/details/{group}", deps.EmployeeHandler.UpdateDetailGroup)
						r.Post("/bank-accounts", deps.EmployeeHandler.AddBankAccount)
						r.Delete("/bank-accounts/{accountID}", deps.EmployeeHandler.DeleteBankAccount)
						r.Post("/picture", deps.EmployeeHandler.UploadProfilePicture)
						r.Delete("/picture", deps.EmployeeHandler.DeleteProfilePicture)

						r.Post("/leave-requests", deps.LeaveHandler.Submit)
						r.Get("/leave-balance", deps.LeaveHandler.GetBalance)
						r.Put("/leave-allowance", deps.LeaveHandler.UpdateAllowance)

						r.Get("/timesheet", deps.TimesheetHandler.GetLog)
						r.Post("/timesheet", deps.TimesheetHandler.AddEntry)
						r.Delete("/timesheet/{date}", deps.TimesheetHandler.DeleteEntry)

						r.Get("/payslips", deps.PayslipHandler.ListByEmployee)
						r.Post("/payslips", deps.PayslipHandler.Upload)
					})
				})

				r.Route("/leave-requests", func(r chi.Router) {
					r.Get("/", deps.LeaveHandler.List)
					r.Post("/{requestID}/approve", deps.LeaveHandler.Approve)
					r.Post("/{requestID}/reject", deps.LeaveHandler.Reject)
					r.Delete("/{requestID}", deps.LeaveHandler.Delete)
				})

				r.Route("/tasks", func(r chi.Router) {
					r.Get("/", deps.RecordsHandler.ListTasks)
					r.Post("/", deps.RecordsHandler.CreateTask)
					r.Delete("/{taskID}", deps.RecordsHandler.DeleteTask)
				})

				r.Route("/announcements", func(r chi.Router) {
					r.Post("/", deps.RecordsHandler.CreateAnnouncement)
					r.Delete("/{announcementID}", deps.RecordsHandler.DeleteAnnouncement)
				})

				r.Delete("/payslips/{payslipID}", deps.PayslipHandler.Delete)
			})
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("complyhr api\n"))
	})

	return r
}
