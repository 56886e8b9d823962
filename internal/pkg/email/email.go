package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendWelcome(to, employeeName, companyName, loginLink string) error
	SendLeaveProcessed(to, employeeName, leaveType, startDate, endDate string, approved bool) error
	SendPayslipReady(to, employeeName, period string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type welcomeEmailData struct {
	EmployeeName string
	CompanyName  string
	LoginLink    string
}

// SendWelcome sends the onboarding email when an employee account is created.
func (s *emailServiceImpl) SendWelcome(to, employeeName, companyName, loginLink string) error {
	data := welcomeEmailData{
		EmployeeName: employeeName,
		CompanyName:  companyName,
		LoginLink:    loginLink,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "welcome.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Welcome to %s", companyName), body.String())
}

type leaveProcessedEmailData struct {
	EmployeeName string
	LeaveType    string
	StartDate    string
	EndDate      string
	Outcome      string
}

// SendLeaveProcessed notifies the employee that a leave request was decided.
func (s *emailServiceImpl) SendLeaveProcessed(to, employeeName, leaveType, startDate, endDate string, approved bool) error {
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}

	data := leaveProcessedEmailData{
		EmployeeName: employeeName,
		LeaveType:    leaveType,
		StartDate:    startDate,
		EndDate:      endDate,
		Outcome:      outcome,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_processed.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Your leave request was %s", outcome), body.String())
}

type payslipReadyEmailData struct {
	EmployeeName string
	Period       string
}

// SendPayslipReady notifies the employee that a new payslip is available.
func (s *emailServiceImpl) SendPayslipReady(to, employeeName, period string) error {
	data := payslipReadyEmailData{
		EmployeeName: employeeName,
		Period:       period,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "payslip_ready.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Your payslip for %s is ready", period), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// exponential backoff: 1s, 2s, 4s
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
