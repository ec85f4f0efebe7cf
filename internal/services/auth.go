package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/auth"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
	"github.com/bayanihan-ph/relief-backend/internal/requestdata"
	"github.com/bayanihan-ph/relief-backend/internal/utils"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour

	// changePasswordTimeout bounds the whole change-password round trip,
	// bcrypt work included.
	changePasswordTimeout = 10 * time.Second
)

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthTokens struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, *AuthTokens, error)
	Login(ctx context.Context, email, password string) (*types.User, *AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	// SetContextFromToken validates an access token and attaches the
	// authenticated user to the returned context.
	SetContextFromToken(ctx context.Context, accessToken string) (context.Context, error)
}

type authService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  authrepo.UserRepo
	tokenRepo authrepo.UserTokenRepo
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo authrepo.UserRepo, tokenRepo authrepo.UserTokenRepo) AuthService {
	serviceLog := log.With("service", "AuthService")
	secret := utils.GetEnv("AUTH_JWT_SECRET", "", serviceLog)
	if secret == "" {
		serviceLog.Warn("AUTH_JWT_SECRET not set, issued tokens will not survive restarts")
		secret = uuid.New().String()
	}
	return &authService{
		db:        db,
		log:       serviceLog,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtSecret: []byte(secret),
	}
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func validateRegister(in RegisterInput) error {
	verr := types.NewValidationError()
	if !strings.Contains(in.Email, "@") {
		verr.Add("email", "not a valid email address")
	}
	if len(in.Password) < 8 {
		verr.Add("password", "must be at least 8 characters")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		verr.Add("first_name", "required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		verr.Add("last_name", "required")
	}
	return verr.OrNil()
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, *AuthTokens, error) {
	if err := validateRegister(in); err != nil {
		return nil, nil, err
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:        uuid.New(),
		Email:     in.Email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}

	var tokens *AuthTokens
	if err := as.withTx(ctx, func(tx *gorm.DB) error {
		exists, exErr := as.userRepo.EmailExists(ctx, tx, in.Email)
		if exErr != nil {
			return exErr
		}
		if exists {
			return types.ErrDuplicate
		}
		if _, cErr := as.userRepo.Create(ctx, tx, []*types.User{user}); cErr != nil {
			return cErr
		}
		tokens, err = as.issueTokens(ctx, tx, user)
		return err
	}); err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, *AuthTokens, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, nil, err
	}
	if len(users) == 0 {
		return nil, nil, types.ErrInvalidCredentials
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, types.ErrInvalidCredentials
	}

	tokens, err := as.issueTokens(ctx, nil, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	row, err := as.tokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return nil, err
	}
	if time.Now().After(row.ExpiresAt) {
		if delErr := as.tokenRepo.DeleteByIDs(ctx, nil, []uuid.UUID{row.ID}); delErr != nil {
			as.log.Warn("failed to drop expired token row", "token_id", row.ID, "error", delErr)
		}
		return nil, types.ErrTokenExpired
	}

	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{row.UserID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, types.ErrNotFound
	}

	var tokens *AuthTokens
	if err := as.withTx(ctx, func(tx *gorm.DB) error {
		if delErr := as.tokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{row.ID}); delErr != nil {
			return delErr
		}
		var issueErr error
		tokens, issueErr = as.issueTokens(ctx, tx, users[0])
		return issueErr
	}); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (as *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	return as.tokenRepo.DeleteByUserID(ctx, nil, userID)
}

func (as *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	ctx, cancel := context.WithTimeout(ctx, changePasswordTimeout)
	defer cancel()

	if len(newPassword) < 8 {
		verr := types.NewValidationError()
		verr.Add("new_password", "must be at least 8 characters")
		return verr
	}

	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return types.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte(currentPassword)); err != nil {
		return types.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return as.withTx(ctx, func(tx *gorm.DB) error {
		if err := as.userRepo.UpdatePassword(ctx, tx, userID, string(hashed)); err != nil {
			return err
		}
		// All sessions are invalidated with the old password.
		return as.tokenRepo.DeleteByUserID(ctx, tx, userID)
	})
}

func (as *authService) SetContextFromToken(ctx context.Context, accessToken string) (context.Context, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ctx, types.ErrTokenExpired
		}
		return ctx, types.ErrInvalidCredentials
	}
	if !token.Valid {
		return ctx, types.ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, types.ErrInvalidCredentials
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		UserID: userID,
		Email:  claims.Email,
	}), nil
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (*AuthTokens, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(accessTokenTTL)

	claims := accessClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh := uuid.New().String() + uuid.New().String()
	row := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(refreshTokenTTL),
	}
	if _, err := as.tokenRepo.Create(ctx, tx, []*types.UserToken{row}); err != nil {
		return nil, err
	}

	return &AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

func (as *authService) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if as.db == nil {
		return fn(nil)
	}
	return as.db.WithContext(ctx).Transaction(fn)
}
