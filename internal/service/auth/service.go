package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/auth"
	"github.com/complyhr/complyhr-backend-go/internal/domain/company"
	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/domain/subscription"
	"github.com/complyhr/complyhr-backend-go/internal/domain/user"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/jwt"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/oauth"
	"github.com/complyhr/complyhr-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// trialSubscriber starts the free trial for a freshly registered company.
type trialSubscriber interface {
	StartTrial(ctx context.Context, companyID string) (subscription.Subscription, error)
}

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	company.CompanyRepository
	employee.EmployeeRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
	subscriptions trialSubscriber
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
	subscriptions trialSubscriber,
) auth.Service {
	return &AuthServiceImpl{
		db:                 db,
		UserRepository:     userRepo,
		CompanyRepository:  companyRepo,
		EmployeeRepository: employeeRepo,
		jwtService:         jwtService,
		googleService:      googleService,
		subscriptions:      subscriptions,
	}
}

// Register implements auth.Service. Creates the company, its first admin
// user and the trial subscription in one transaction.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if _, err := a.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return auth.TokenResponse{}, user.ErrEmailExists
	} else if err != user.ErrUserNotFound {
		return auth.TokenResponse{}, err
	}

	if _, err := a.CompanyRepository.GetByUsername(ctx, req.CompanyUsername); err == nil {
		return auth.TokenResponse{}, company.ErrUsernameExists
	} else if err != company.ErrCompanyNotFound {
		return auth.TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	var created user.User
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		comp, err := a.CompanyRepository.Create(txCtx, company.Company{
			Name:                req.CompanyName,
			Username:            req.CompanyUsername,
			AnnualLeavesAllowed: company.DefaultAnnualLeavesAllowed,
			SickLeavesAllowed:   company.DefaultSickLeavesAllowed,
		})
		if err != nil {
			return err
		}

		created, err = a.UserRepository.Create(txCtx, user.User{
			CompanyID:    &comp.ID,
			Email:        req.Email,
			PasswordHash: &hashStr,
			FullName:     req.FullName,
			Role:         user.RoleAdmin,
			IsVerified:   true,
		})
		if err != nil {
			return err
		}

		_, err = a.subscriptions.StartTrial(txCtx, comp.ID)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, created)
}

// Login implements auth.Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	found, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if found.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*found.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, found)
}

// LoginWithGoogle implements auth.Service. Only users that already exist
// can sign in with Google; the account is linked on first use.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := a.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	info, err := a.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	found, err := a.UserRepository.GetByGoogleID(ctx, info.GoogleID)
	if err == user.ErrUserNotFound {
		// Fall back to the email and link the Google account.
		found, err = a.UserRepository.GetByEmail(ctx, info.Email)
		if err != nil {
			if err == user.ErrUserNotFound {
				return auth.TokenResponse{}, auth.ErrUserNotFound
			}
			return auth.TokenResponse{}, err
		}

		found.GoogleID = &info.GoogleID
		found.IsVerified = found.IsVerified || info.VerifiedEmail
		if err := a.UserRepository.Update(ctx, found); err != nil {
			return auth.TokenResponse{}, err
		}
	} else if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, found)
}

// Refresh implements auth.Service.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if a.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	decoded, err := a.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	tokenType, _ := decoded.Get("type")
	if tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if decoded.Expiration().Before(time.Now()) {
		return auth.TokenResponse{}, auth.ErrTokenExpired
	}

	userIDVal, ok := decoded.Get("user_id")
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	found, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrUserNotFound
	}

	// Rotate: the old refresh token cannot be replayed.
	a.jwtService.RevokeToken(refreshToken)

	return a.issueTokens(ctx, found)
}

// Logout implements auth.Service.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		a.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

// Session implements auth.Service.
func (a *AuthServiceImpl) Session(ctx context.Context, userID string) (auth.SessionResponse, error) {
	found, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.SessionResponse{}, auth.ErrUserNotFound
	}

	resp := auth.SessionResponse{
		UserID:   found.ID,
		Email:    found.Email,
		FullName: found.FullName,
		Role:     string(found.Role),
	}
	if found.CompanyID != nil {
		resp.CompanyID = *found.CompanyID
	}
	return resp, nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenResponse, error) {
	var employeeID *string
	if emp, err := a.EmployeeRepository.GetByUserID(ctx, u.ID); err == nil {
		employeeID = &emp.ID
	}

	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(u.ID, u.Email, employeeID, u.CompanyID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, _, err := a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		TokenType:    "Bearer",
	}, nil
}
