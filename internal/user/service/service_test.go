package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/accounthub/user-service/internal/common/clock"
	"github.com/accounthub/user-service/internal/common/logger"
	"github.com/accounthub/user-service/internal/user/domain"
	userrepo "github.com/accounthub/user-service/internal/user/repository"
	"github.com/accounthub/user-service/internal/user/service"
)

const testJWTSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func setupAccountService(t *testing.T) (*service.AccountService, *service.TokenIssuer, *mockRepo, *mockHasher, *mockIDGenerator) {
	t.Helper()

	repo := &mockRepo{}
	hasher := &mockHasher{}
	idGenerator := &mockIDGenerator{}
	issuer := service.NewTokenIssuer(testJWTSecret)

	log, _ := logger.New("", "test", "error")

	svc := service.NewAccountService(service.AccountServiceDeps{
		Repo:        repo,
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Tokens:      issuer,
		Clock:       clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		Log:         log,
	})

	return svc, issuer, repo, hasher, idGenerator
}

func validRegisterInput() service.RegisterInput {
	return service.RegisterInput{
		Name:     "Alice Li",
		Email:    "alice@example.com",
		Password: "secret1",
		DOB:      "1990-01-01",
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	svc, issuer, repo, _, _ := setupAccountService(t)

	var created domain.User
	repo.createFunc = func(_ context.Context, user domain.User) error {
		created = user
		return nil
	}

	result, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Token == "" {
		t.Error("expected token to be set")
	}

	if created.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", created.Email)
	}
	if created.Name != "Alice Li" {
		t.Errorf("expected name Alice Li, got %s", created.Name)
	}
	if created.PasswordHash != "hashed_secret1" {
		t.Errorf("expected hashed password, got %s", created.PasswordHash)
	}
	if created.PasswordHash == "secret1" {
		t.Error("raw password must not be stored")
	}
	if created.DOB.Format("2006-01-02") != "1990-01-01" {
		t.Errorf("expected dob 1990-01-01, got %v", created.DOB)
	}

	// The clock's value is stored and returned; the directory must not
	// substitute its own timestamp.
	wantCreatedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if !created.CreatedAt.Equal(wantCreatedAt) {
		t.Errorf("expected created_at %v, got %v", wantCreatedAt, created.CreatedAt)
	}
	if !result.User.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("expected response created_at %v, got %v", created.CreatedAt, result.User.CreatedAt)
	}

	id, err := issuer.Verify(result.Token)
	if err != nil {
		t.Fatalf("expected issued token to verify, got %v", err)
	}
	if id != created.ID {
		t.Errorf("expected token identity %s, got %s", created.ID, id)
	}
}

func TestAccountService_Register_ValidationError(t *testing.T) {
	svc, _, repo, _, _ := setupAccountService(t)

	testCases := []struct {
		name    string
		mutate  func(in *service.RegisterInput)
		message string
	}{
		{"short name", func(in *service.RegisterInput) { in.Name = "Al" }, "Name must be atleast 3 characters"},
		{"two-rune multibyte name", func(in *service.RegisterInput) { in.Name = "日本" }, "Name must be atleast 3 characters"},
		{"five-rune multibyte password", func(in *service.RegisterInput) { in.Password = "日本語四五" }, "Password must be atleast 6 characters"},
		{"bad email", func(in *service.RegisterInput) { in.Email = "not-an-email" }, "Enter a valid email"},
		{"short password", func(in *service.RegisterInput) { in.Password = "12345" }, "Password must be atleast 6 characters"},
		{"bad dob", func(in *service.RegisterInput) { in.DOB = "01/01/1990" }, "Enter a dob"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(&input)

			_, err := svc.Register(context.Background(), input)
			if err == nil {
				t.Fatal("expected validation error")
			}

			vErr, ok := service.AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if vErr.Error() != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, vErr.Error())
			}
		})
	}

	if repo.createCalls != 0 {
		t.Errorf("expected no create calls, got %d", repo.createCalls)
	}
}

func TestAccountService_Register_MultibyteNameCountsRunes(t *testing.T) {
	svc, _, repo, _, _ := setupAccountService(t)

	var created domain.User
	repo.createFunc = func(_ context.Context, user domain.User) error {
		created = user
		return nil
	}

	// Three runes but nine bytes; length is counted in characters.
	input := validRegisterInput()
	input.Name = "日本語"

	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Name != "日本語" {
		t.Errorf("expected name 日本語, got %s", created.Name)
	}
}

func TestAccountService_Register_FirstFailureOnly(t *testing.T) {
	svc, _, _, _, _ := setupAccountService(t)

	// Every field is invalid; only the name message surfaces.
	_, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "Al",
		Email:    "bad",
		Password: "123",
		DOB:      "nope",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	vErr, ok := service.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if vErr.Error() != "Name must be atleast 3 characters" {
		t.Errorf("expected the first failing field's message, got %q", vErr.Error())
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	svc, _, repo, _, _ := setupAccountService(t)

	repo.findByEmailFunc = func(_ context.Context, email string) (domain.User, error) {
		return domain.User{ID: "existing", Email: email}, nil
	}

	_, err := svc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if repo.createCalls != 0 {
		t.Errorf("expected no create call on duplicate, got %d", repo.createCalls)
	}

	if service.ErrEmailTaken.Message() != "Sorry a user with this email already exists" {
		t.Errorf("unexpected duplicate message: %q", service.ErrEmailTaken.Message())
	}
}

func TestAccountService_Register_DuplicateLostRace(t *testing.T) {
	svc, _, repo, _, _ := setupAccountService(t)

	// The lookup sees nothing, the insert hits the unique index.
	repo.createFunc = func(_ context.Context, _ domain.User) error {
		return userrepo.ErrEmailAlreadyExists
	}

	_, err := svc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_Register_RepoError(t *testing.T) {
	svc, _, repo, _, _ := setupAccountService(t)

	repo.createFunc = func(_ context.Context, _ domain.User) error {
		return errors.New("connection refused")
	}

	_, err := svc.Register(context.Background(), validRegisterInput())
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := service.AsValidationError(err); ok {
		t.Error("expected internal error, got validation error")
	}
	if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestAccountService_Register_HashError(t *testing.T) {
	svc, _, repo, hasher, _ := setupAccountService(t)

	hasher.hashFunc = func(string) (string, error) {
		return "", errors.New("hash failure")
	}

	_, err := svc.Register(context.Background(), validRegisterInput())
	if err == nil {
		t.Fatal("expected error")
	}
	if repo.createCalls != 0 {
		t.Errorf("expected no create call after hash failure, got %d", repo.createCalls)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	svc, issuer, repo, hasher, _ := setupAccountService(t)

	repo.findByEmailFunc = func(_ context.Context, email string) (domain.User, error) {
		return domain.User{
			ID:           "user-42",
			Name:         "Alice Li",
			Email:        email,
			PasswordHash: "hashed_secret1",
		}, nil
	}
	hasher.compareFunc = func(hash, password string) error {
		if hash != "hashed_secret1" || password != "secret1" {
			return errors.New("mismatch")
		}
		return nil
	}

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	id, err := issuer.Verify(result.Token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}
	if id != "user-42" {
		t.Errorf("expected token identity user-42, got %s", id)
	}
}

func TestAccountService_Login_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	svc, _, repo, hasher, _ := setupAccountService(t)

	// Unknown email.
	_, unknownErr := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@example.com",
		Password: "secret1",
	})

	// Known email, wrong password.
	repo.findByEmailFunc = func(_ context.Context, email string) (domain.User, error) {
		return domain.User{ID: "user-42", Email: email, PasswordHash: "hashed_other"}, nil
	}
	hasher.compareFunc = func(string, string) error {
		return errors.New("mismatch")
	}
	_, wrongErr := svc.Login(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "secret1",
	})

	if !errors.Is(unknownErr, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("expected identical messages, got %q vs %q", unknownErr.Error(), wrongErr.Error())
	}
}

func TestAccountService_Login_ValidationError(t *testing.T) {
	svc, _, _, _, _ := setupAccountService(t)

	testCases := []struct {
		name     string
		email    string
		password string
		message  string
	}{
		{"bad email", "nope", "secret1", "Enter a valid email"},
		{"blank password", "alice@example.com", "", "Password cannot be blank"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), service.LoginInput{
				Email:    tc.email,
				Password: tc.password,
			})
			if err == nil {
				t.Fatal("expected validation error")
			}
			vErr, ok := service.AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if vErr.Error() != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, vErr.Error())
			}
		})
	}
}

func TestAccountService_ListUsers_StripsPasswordHash(t *testing.T) {
	svc, _, repo, _, _ := setupAccountService(t)

	dob := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.findAllFunc = func(_ context.Context) ([]domain.User, error) {
		return []domain.User{
			{ID: "u1", Name: "Alice Li", Email: "alice@example.com", PasswordHash: "hash1", DOB: dob},
			{ID: "u2", Name: "Bob Kim", Email: "bob@example.com", PasswordHash: "hash2", DOB: dob},
		}, nil
	}

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != "u1" || users[1].ID != "u2" {
		t.Error("expected directory order to be preserved")
	}
	if users[0].Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", users[0].Email)
	}
	if users[0].DOB != "1990-01-01" {
		t.Errorf("expected dob 1990-01-01, got %s", users[0].DOB)
	}
}

func TestAccountService_ListUsers_RepoError(t *testing.T) {
	svc, _, repo, _, _ := setupAccountService(t)

	repo.findAllFunc = func(_ context.Context) ([]domain.User, error) {
		return nil, errors.New("connection refused")
	}

	_, err := svc.ListUsers(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}
