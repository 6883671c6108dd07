package usecases_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	"github.com/devbyteai/BetStack-sub001/internal/infrastructure/providers"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context)
}

// Mock WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, currency string) (*entities.Wallet, error) {
	args := m.Called(ctx, userID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateBalances(ctx context.Context, id uuid.UUID, balance, bonusBalance string) error {
	args := m.Called(ctx, id, balance, bonusBalance)
	return args.Error(0)
}

// Mock TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByExternalRef(ctx context.Context, ref string) (*entities.Transaction, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *entities.Transaction) (bool, error) {
	args := m.Called(ctx, tx)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter, limit, offset int) ([]*entities.Transaction, int64, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

// Mock BonusRepository
type MockBonusRepository struct {
	mock.Mock
}

func (m *MockBonusRepository) GetBonus(ctx context.Context, id uuid.UUID) (*entities.Bonus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bonus), args.Error(1)
}

func (m *MockBonusRepository) ListActiveBonuses(ctx context.Context) ([]*entities.Bonus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bonus), args.Error(1)
}

func (m *MockBonusRepository) GetClaim(ctx context.Context, userID, bonusID uuid.UUID) (*entities.UserBonus, error) {
	args := m.Called(ctx, userID, bonusID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBonus), args.Error(1)
}

func (m *MockBonusRepository) GetUserBonusByID(ctx context.Context, id uuid.UUID) (*entities.UserBonus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBonus), args.Error(1)
}

func (m *MockBonusRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entities.UserBonus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.UserBonus), args.Error(1)
}

func (m *MockBonusRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.UserBonus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.UserBonus), args.Error(1)
}

func (m *MockBonusRepository) CreateClaim(ctx context.Context, claim *entities.UserBonus) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockBonusRepository) UpdateClaim(ctx context.Context, claim *entities.UserBonus) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockBonusRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// Mock provider client + gateway
type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) RequestCollection(ctx context.Context, req *providers.PaymentRequest) (*providers.PaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.PaymentResponse), args.Error(1)
}

func (m *MockProviderClient) RequestPayout(ctx context.Context, req *providers.PaymentRequest) (*providers.PaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.PaymentResponse), args.Error(1)
}

type MockProviderGateway struct {
	mock.Mock
}

func (m *MockProviderGateway) GetClient(provider string) (providers.Client, error) {
	args := m.Called(provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(providers.Client), args.Error(1)
}

// Recording publisher
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []*entities.Transaction
}

func (p *RecordingPublisher) PublishTransaction(ctx context.Context, tx *entities.Transaction, timestamp int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, tx)
}

func (p *RecordingPublisher) Published() []*entities.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*entities.Transaction(nil), p.Events...)
}
