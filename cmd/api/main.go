package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/config"
	appHTTP "github.com/complyhr/complyhr-backend-go/internal/handler/http"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/middleware"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/billing"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/cron"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/email"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/jwt"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/oauth"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/sse"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/storage"
	"github.com/complyhr/complyhr-backend-go/internal/repository/postgresql"
	authService "github.com/complyhr/complyhr-backend-go/internal/service/auth"
	companyService "github.com/complyhr/complyhr-backend-go/internal/service/company"
	employeeService "github.com/complyhr/complyhr-backend-go/internal/service/employee"
	leaveService "github.com/complyhr/complyhr-backend-go/internal/service/leave"
	notificationService "github.com/complyhr/complyhr-backend-go/internal/service/notification"
	payslipService "github.com/complyhr/complyhr-backend-go/internal/service/payslip"
	recordsService "github.com/complyhr/complyhr-backend-go/internal/service/records"
	subscriptionService "github.com/complyhr/complyhr-backend-go/internal/service/subscription"
	timesheetService "github.com/complyhr/complyhr-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Pool.Close()

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	bankAccountRepo := postgresql.NewBankAccountRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	subscriptionRepo := postgresql.NewSubscriptionRepository(db)

	// Infrastructure
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(
		cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret,
		cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		slog.Error("Failed to init file storage", "error", err)
		os.Exit(1)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		slog.Error("Failed to init email service", "error", err)
		os.Exit(1)
	}

	billingClient := billing.NewClient(cfg.Xendit.APIKey, cfg.Xendit.Environment)
	webhookVerifier := billing.NewWebhookVerifier(cfg.Xendit.WebhookToken)

	hub := sse.NewHub()

	// Services
	notifService := notificationService.NewNotificationService(notificationRepo, userRepo, hub, notificationService.Config{})
	defer notifService.Shutdown()

	subService := subscriptionService.NewSubscriptionService(subscriptionRepo, employeeRepo, billingClient, notifService)
	leaveSvc := leaveService.NewLeaveService(db, leaveBalanceRepo, leaveRequestRepo, employeeRepo, companyRepo, notifService)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, bankAccountRepo, leaveSvc, fileStorage)
	timesheetSvc := timesheetService.NewTimesheetService(db, timesheetRepo, employeeRepo)
	recordsSvc := recordsService.NewRecordsService(taskRepo, announcementRepo, employeeRepo, notifService)
	payslipSvc := payslipService.NewPayslipService(db, payslipRepo, employeeRepo, fileStorage, notifService, emailService)
	companySvc := companyService.NewCompanyService(companyRepo, fileStorage)
	authSvc := authService.NewAuthService(db, userRepo, companyRepo, employeeRepo, jwtService, googleService, subService)

	// Background maintenance
	scheduler := cron.NewScheduler()
	cron.NewComplianceJobs(subService, leaveSvc, timesheetSvc, recordsSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:          jwtService,
		SubscriptionGate:    middleware.NewSubscriptionMiddleware(subService),
		AuthHandler:         appHTTP.NewAuthHandler(authSvc, jwtService, googleService),
		CompanyHandler:      appHTTP.NewCompanyHandler(companySvc),
		EmployeeHandler:     appHTTP.NewEmployeeHandler(employeeSvc),
		LeaveHandler:        appHTTP.NewLeaveHandler(leaveSvc),
		TimesheetHandler:    appHTTP.NewTimesheetHandler(timesheetSvc),
		RecordsHandler:      appHTTP.NewRecordsHandler(recordsSvc),
		PayslipHandler:      appHTTP.NewPayslipHandler(payslipSvc),
		SubscriptionHandler: appHTTP.NewSubscriptionHandler(subService, webhookVerifier),
		NotificationHandler: appHTTP.NewNotificationHandler(notifService, jwtService, hub),
		Environment:         cfg.App.Env,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
}
