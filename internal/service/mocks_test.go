package service_test

import (
	"context"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/model"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEventStore is a mock implementation of repository.EventStore
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Create(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventStore) List(ctx context.Context, query repository.Query) ([]*model.Event, int, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Event), args.Int(1), args.Error(2)
}

func (m *MockEventStore) ListPending(ctx context.Context, limit int) ([]*model.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventStore) MarkSent(ctx context.Context, id uuid.UUID, lastError *string) error {
	args := m.Called(ctx, id, lastError)
	return args.Error(0)
}

func (m *MockEventStore) MarkError(ctx context.Context, id uuid.UUID, lastError string) error {
	args := m.Called(ctx, id, lastError)
	return args.Error(0)
}

func (m *MockEventStore) ResetPending(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWebhookStore is a mock implementation of repository.WebhookStore
type MockWebhookStore struct {
	mock.Mock
}

func (m *MockWebhookStore) Create(ctx context.Context, config *model.WebhookConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockWebhookStore) FindByID(ctx context.Context, id string) (*model.WebhookConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WebhookConfig), args.Error(1)
}

func (m *MockWebhookStore) List(ctx context.Context) ([]*model.WebhookConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WebhookConfig), args.Error(1)
}

func (m *MockWebhookStore) Update(ctx context.Context, config *model.WebhookConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockWebhookStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWebhookStore) ResolveActive(ctx context.Context, ids []string) ([]*model.WebhookConfig, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WebhookConfig), args.Error(1)
}

// MockUserStore is a mock implementation of repository.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockSettingsStore is a mock implementation of repository.SettingsStore
type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) Get(ctx context.Context) (*model.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteSettings), args.Error(1)
}

func strPtr(s string) *string { return &s }
