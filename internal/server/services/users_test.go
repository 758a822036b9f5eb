package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/asorokin/decat/internal/common"
	"github.com/asorokin/decat/internal/dbx"
	"github.com/asorokin/decat/internal/server/config"
	"github.com/asorokin/decat/internal/server/models"
	entriesrepo "github.com/asorokin/decat/internal/server/repositories/entries"
	logintokensrepo "github.com/asorokin/decat/internal/server/repositories/logintokens"
	refreshtokensrepo "github.com/asorokin/decat/internal/server/repositories/refreshtokens"
	usersrepo "github.com/asorokin/decat/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager, sender *recordingMailer) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		LoginLinkValidityDuration:    15 * time.Minute,
	}
	return NewUserService(db, rm, sender, cfg)
}

type recordingMailer struct {
	email string
	token string
	err   error
}

func (m *recordingMailer) SendLoginLink(ctx context.Context, email, token string) error {
	m.email = email
	m.token = token
	return m.err
}

type fakeUsersRepo struct {
	user *models.User
	err  error
}

func (f *fakeUsersRepo) FindOrCreateByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error
	created   []string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.created = append(f.created, token)
	return f.createErr
}
func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}

type fakeLoginTokensRepo struct {
	token      *models.LoginToken
	findErr    error
	createErr  error
	consumeErr error
	consumed   []string
}

func (f *fakeLoginTokensRepo) Create(ctx context.Context, id, userID string, secretHash []byte, validity time.Duration) error {
	return f.createErr
}
func (f *fakeLoginTokensRepo) Find(ctx context.Context, id string) (*models.LoginToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.token, nil
}
func (f *fakeLoginTokensRepo) Consume(ctx context.Context, id string) error {
	f.consumed = append(f.consumed, id)
	return f.consumeErr
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	lt *fakeLoginTokensRepo
	e  entriesrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}
func (m *fakeRepoManager) LoginTokens(db dbx.DBTX) logintokensrepo.Repository { return m.lt }
func (m *fakeRepoManager) Entries(db dbx.DBTX) entriesrepo.Repository         { return m.e }

// --- tests ---

func TestRequestLoginLink_SendsToken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		u:  &fakeUsersRepo{user: &models.User{ID: "u-1", Email: "alice@example.com"}},
		lt: &fakeLoginTokensRepo{},
	}
	sender := &recordingMailer{}
	svc := newUserService(t, db, rm, sender)

	if err := svc.RequestLoginLink(context.Background(), "  Alice@Example.com "); err != nil {
		t.Fatalf("RequestLoginLink error: %v", err)
	}
	if sender.email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", sender.email)
	}
	if sender.token == "" {
		t.Fatal("expected a token to be mailed")
	}
}

func TestRequestLoginLink_RejectsBadEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	svc := newUserService(t, db, &fakeRepoManager{}, &recordingMailer{})

	err := svc.RequestLoginLink(context.Background(), "not-an-email")
	if !errors.Is(err, common.ErrorInvalidEmail) {
		t.Fatalf("expected ErrorInvalidEmail, got %v", err)
	}
}

func makeLoginToken(t *testing.T, consumed bool, expires time.Time) (*models.LoginToken, string) {
	t.Helper()
	secret := "s3cret"
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	id := uuid.NewString()
	return &models.LoginToken{
		ID: id, UserID: "u-1", SecretHash: hash, Expires: expires, Consumed: consumed,
	}, id + "." + secret
}

func TestVerifyLoginLink_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	loginToken, raw := makeLoginToken(t, false, time.Now().Add(time.Minute))

	rm := &fakeRepoManager{
		u:  &fakeUsersRepo{user: &models.User{ID: "u-1", Email: "alice@example.com"}},
		r:  &fakeRefreshRepo{},
		lt: &fakeLoginTokensRepo{token: loginToken},
	}
	svc := newUserService(t, db, rm, &recordingMailer{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	session, err := svc.VerifyLoginLink(context.Background(), raw)
	if err != nil {
		t.Fatalf("VerifyLoginLink error: %v", err)
	}
	if session.User.ID != "u-1" || session.AccessToken == "" || session.RefreshToken == "" {
		t.Fatalf("incomplete session: %+v", session)
	}
	if len(rm.lt.consumed) != 1 {
		t.Fatalf("expected token to be consumed once, got %v", rm.lt.consumed)
	}
}

func TestVerifyLoginLink_Consumed(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	loginToken, raw := makeLoginToken(t, true, time.Now().Add(time.Minute))
	rm := &fakeRepoManager{lt: &fakeLoginTokensRepo{token: loginToken}}
	svc := newUserService(t, db, rm, &recordingMailer{})

	_, err := svc.VerifyLoginLink(context.Background(), raw)
	if !errors.Is(err, common.ErrLoginLinkConsumed) {
		t.Fatalf("expected ErrLoginLinkConsumed, got %v", err)
	}
}

func TestVerifyLoginLink_Expired(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	loginToken, raw := makeLoginToken(t, false, time.Now().Add(-time.Minute))
	rm := &fakeRepoManager{lt: &fakeLoginTokensRepo{token: loginToken}}
	svc := newUserService(t, db, rm, &recordingMailer{})

	_, err := svc.VerifyLoginLink(context.Background(), raw)
	if !errors.Is(err, common.ErrLoginLinkExpired) {
		t.Fatalf("expected ErrLoginLinkExpired, got %v", err)
	}
}

func TestVerifyLoginLink_WrongSecret(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	loginToken, _ := makeLoginToken(t, false, time.Now().Add(time.Minute))
	rm := &fakeRepoManager{lt: &fakeLoginTokensRepo{token: loginToken}}
	svc := newUserService(t, db, rm, &recordingMailer{})

	_, err := svc.VerifyLoginLink(context.Background(), loginToken.ID+".wrong")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshToken_RotatesPair(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		r: &fakeRefreshRepo{findOut: &models.RefreshToken{UserID: "u-1", Expires: time.Now().Add(time.Hour)}},
	}
	svc := newUserService(t, db, rm, &recordingMailer{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	pair, err := svc.RefreshToken(context.Background(), "old-token")
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("incomplete pair: %+v", pair)
	}
	if len(rm.r.created) != 1 {
		t.Fatalf("expected exactly one new refresh token, got %v", rm.r.created)
	}
}

func TestRefreshToken_Expired(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		r: &fakeRefreshRepo{findOut: &models.RefreshToken{UserID: "u-1", Expires: time.Now().Add(-time.Hour)}},
	}
	svc := newUserService(t, db, rm, &recordingMailer{})

	_, err := svc.RefreshToken(context.Background(), "old-token")
	if !errors.Is(err, common.ErrRefreshExpired) {
		t.Fatalf("expected ErrRefreshExpired, got %v", err)
	}
}

func TestRefreshToken_Unknown(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{findErr: common.ErrorNotFound}}
	svc := newUserService(t, db, rm, &recordingMailer{})

	_, err := svc.RefreshToken(context.Background(), "bogus")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized, got %v", err)
	}
}
