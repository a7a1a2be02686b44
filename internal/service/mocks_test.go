package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/primemotors/inventory-service/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockUnitRepo struct {
	mock.Mock
}

func (m *mockUnitRepo) List(ctx context.Context, status domain.UnitStatus) ([]domain.InventoryUnit, error) {
	args := m.Called(ctx, status)
	units, _ := args.Get(0).([]domain.InventoryUnit)
	return units, args.Error(1)
}

func (m *mockUnitRepo) GetByID(ctx context.Context, id string) (*domain.InventoryUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryUnit), args.Error(1)
}

func (m *mockUnitRepo) Create(ctx context.Context, unit *domain.InventoryUnit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *mockUnitRepo) Update(ctx context.Context, unit *domain.InventoryUnit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *mockUnitRepo) Transfer(ctx context.Context, transfer domain.Transfer) (*domain.InventoryUnit, error) {
	args := m.Called(ctx, transfer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryUnit), args.Error(1)
}

func (m *mockUnitRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockFiles struct {
	mock.Mock
}

func (m *mockFiles) SaveSIPhoto(file *multipart.FileHeader) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *mockFiles) Delete(name string) error {
	return m.Called(name).Error(0)
}

type stubIssuer struct {
	issued []domain.Identity
}

func (s *stubIssuer) Issue(identity domain.Identity) (string, time.Time, error) {
	s.issued = append(s.issued, identity)
	return "signed-" + identity.UserID, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), nil
}

type stubSecret string

func (s stubSecret) Current() string { return string(s) }
