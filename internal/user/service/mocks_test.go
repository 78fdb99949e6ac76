package service_test

import (
	"context"

	"github.com/accounthub/user-service/internal/user/domain"
	userrepo "github.com/accounthub/user-service/internal/user/repository"
)

type mockRepo struct {
	createFunc      func(ctx context.Context, user domain.User) error
	findByEmailFunc func(ctx context.Context, email string) (domain.User, error)
	findByIDFunc    func(ctx context.Context, id domain.ID) (domain.User, error)
	findAllFunc     func(ctx context.Context) ([]domain.User, error)

	createCalls int
}

func (m *mockRepo) Create(ctx context.Context, user domain.User) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return domain.User{}, userrepo.ErrUserNotFound
}

func (m *mockRepo) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.User{}, userrepo.ErrUserNotFound
}

func (m *mockRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "user-123", nil
}
