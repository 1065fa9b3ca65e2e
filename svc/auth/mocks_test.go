package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/tenantkit/svc/auth"
)

// MockStore is a mock implementation of auth.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindByUsernameOrEmail(ctx context.Context, identifier string) (*auth.Principal, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Principal), args.Error(1)
}

func (m *MockStore) FindByUsernameOrEmailWithinTenant(ctx context.Context, identifier string, tenantID int64) (*auth.Principal, error) {
	args := m.Called(ctx, identifier, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Principal), args.Error(1)
}

func (m *MockStore) FindSystemAdminByUsernameOrEmail(ctx context.Context, identifier string) (*auth.Principal, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Principal), args.Error(1)
}
