package service

import (
	"context"
	"errors"
	"time"

	"github.com/accounthub/user-service/internal/common/clock"
	"github.com/accounthub/user-service/internal/common/constants"
	commoncrypto "github.com/accounthub/user-service/internal/common/crypto"
	"github.com/accounthub/user-service/internal/common/logger"
	"github.com/accounthub/user-service/internal/user/domain"
	userrepo "github.com/accounthub/user-service/internal/user/repository"
)

type AccountService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	tokens      *TokenIssuer
	clock       clock.Clock
	log         *logger.Logger
}

type AccountServiceDeps struct {
	Repo        userrepo.Repository
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Tokens      *TokenIssuer
	Clock       clock.Clock
	Log         *logger.Logger
}

func NewAccountService(deps AccountServiceDeps) *AccountService {
	return &AccountService{
		repo:        deps.Repo,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		tokens:      deps.Tokens,
		clock:       deps.Clock,
		log:         deps.Log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	DOB      string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  domain.User
}

func (s *AccountService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	if err := validateRegister(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return AuthResult{}, err
	}

	// Validation already guarantees the layout parses.
	dob, _ := time.Parse(constants.DateOfBirthLayout, input.DOB)

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_email_exists",
		}).Warn("register failed: email already exists")
		incrementRegistrationsDuplicate()
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, userrepo.ErrUserNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_lookup_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, newInternalError("DB_ERROR", "failed to look up user", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return AuthResult{}, newInternalError("HASH_ERROR", "failed to hash password", err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return AuthResult{}, newInternalError("ID_ERROR", "failed to generate id", err)
	}

	user := domain.User{
		ID:           domain.ID(id),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		DOB:          dob,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The unique index backstops the lookup above: a concurrent
		// registration that slipped past it still reports as a duplicate.
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "register_email_exists",
			}).Warn("register failed: email already exists")
			incrementRegistrationsDuplicate()
			return AuthResult{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, newInternalError("DB_ERROR", "failed to create user", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "register_token_issue_failed",
		}).Errorf("register failed: token issue error: %v", err)
		return AuthResult{}, newInternalError("TOKEN_ERROR", "failed to issue token", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "register_success",
	}).Info("register success")

	incrementRegistrations()

	return AuthResult{Token: token, User: user}, nil
}

func (s *AccountService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	if err := validateLogin(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		return AuthResult{}, err
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			incrementLoginsFailed()
			return AuthResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, newInternalError("DB_ERROR", "failed to fetch user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		incrementLoginsFailed()
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return AuthResult{}, newInternalError("TOKEN_ERROR", "failed to issue token", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	incrementLogins()

	return AuthResult{Token: token, User: user}, nil
}

// ListUsers returns every record in directory order, hash stripped.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.Public, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_users_failed",
		}).Errorf("list users failed: %v", err)
		return nil, newInternalError("DB_ERROR", "failed to list users", err)
	}

	result := make([]domain.Public, len(users))
	for i, u := range users {
		result[i] = u.Public()
	}

	return result, nil
}
