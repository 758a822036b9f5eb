// Package services contains the server-side application services sitting
// between the HTTP handlers and the repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/asorokin/decat/internal/common"
	"github.com/asorokin/decat/internal/dbx"
	"github.com/asorokin/decat/internal/server/auth"
	"github.com/asorokin/decat/internal/server/config"
	mailer "github.com/asorokin/decat/internal/server/mail"
	"github.com/asorokin/decat/internal/server/models"
	"github.com/asorokin/decat/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Session is what a successful login or refresh hands back to the client.
type Session struct {
	TokenPair
	User *models.User
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	mailer                       mailer.Mailer
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	loginLinkValidityDuration    time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, sender mailer.Mailer, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		mailer:                       sender,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		loginLinkValidityDuration:    cfg.LoginLinkValidityDuration,
	}
}

// RequestLoginLink starts a passwordless login: the user row is created on
// first contact, a single-use token is minted, and the link is handed to the
// mailer. Only the bcrypt hash of the token's secret half is stored.
func (s *UserService) RequestLoginLink(ctx context.Context, email string) error {

	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return common.ErrorInvalidEmail
	}

	userRepo := s.repomanager.Users(s.db)
	user, err := userRepo.FindOrCreateByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	secret, err := common.MakeRandHexString(32)
	if err != nil {
		return common.ErrorInternal
	}

	secretHash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return common.ErrorInternal
	}

	tokenID := uuid.NewString()
	tokenRepo := s.repomanager.LoginTokens(s.db)
	if err := tokenRepo.Create(ctx, tokenID, user.ID, secretHash, s.loginLinkValidityDuration); err != nil {
		return fmt.Errorf("error storing login token: %w", err)
	}

	return s.mailer.SendLoginLink(ctx, email, tokenID+"."+secret)
}

// VerifyLoginLink exchanges a login-link token for a session. The token is
// "<id>.<secret>"; it must be unexpired, unconsumed, and its secret must
// match the stored hash. Consumption and token issuance happen in one
// transaction so a link can never be redeemed twice.
func (s *UserService) VerifyLoginLink(ctx context.Context, token string) (*Session, error) {

	id, secret, ok := strings.Cut(token, ".")
	if !ok {
		return nil, common.ErrInvalidToken
	}

	tokenRepo := s.repomanager.LoginTokens(s.db)
	loginToken, err := tokenRepo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}

	if loginToken.Consumed {
		return nil, common.ErrLoginLinkConsumed
	}
	if loginToken.Expires.Before(time.Now()) {
		return nil, common.ErrLoginLinkExpired
	}
	if bcrypt.CompareHashAndPassword(loginToken.SecretHash, []byte(secret)) != nil {
		return nil, common.ErrInvalidToken
	}

	var session *Session
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.LoginTokens(tx).Consume(ctx, id); err != nil {
			return err
		}

		pair, err := s.generateTokenPair(ctx, tx, loginToken.UserID)
		if err != nil {
			return err
		}

		user, err := s.repomanager.Users(tx).GetByID(ctx, loginToken.UserID)
		if err != nil {
			return err
		}

		session = &Session{TokenPair: *pair, User: user}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrLoginLinkConsumed
		}
		return nil, common.ErrorInternal
	}

	return session, nil
}

// RefreshToken rotates a refresh token: the old one is deleted and a new pair
// is issued atomically.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {

	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshExpired
	}

	var tokenPair *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}

		tokenPair, err = s.generateTokenPair(ctx, tx, token.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// Logout invalidates a refresh token. Unknown tokens are not an error:
// logging out twice should succeed.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// GetUser loads the user for an already-validated user id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, db dbx.DBTX, userID string) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := s.repomanager.RefreshTokens(db).Create(ctx, userID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
