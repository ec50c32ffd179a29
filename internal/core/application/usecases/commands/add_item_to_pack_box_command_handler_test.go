package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPackBoxRepository struct{ mock.Mock }

func (m *MockPackBoxRepository) Add(_ context.Context, _ *delivery.PackBox) error {
	return errors.New("not implemented in mock")
}
func (m *MockPackBoxRepository) Update(_ context.Context, _ *delivery.PackBox) error {
	return errors.New("not implemented in mock")
}
func (m *MockPackBoxRepository) Delete(_ context.Context, _ kernel.UUID) error {
	return errors.New("not implemented in mock")
}
func (m *MockPackBoxRepository) Get(_ context.Context, _ kernel.UUID) (*delivery.PackBox, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockPackBoxRepository) GetByCode(ctx context.Context, code string) (*delivery.PackBox, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.PackBox), args.Error(1)
}
func (m *MockPackBoxRepository) GetAllByDelivery(_ context.Context, _ kernel.UUID) ([]*delivery.PackBox, error) {
	return nil, errors.New("not implemented in mock")
}

type MockPackBoxTrackingUoW struct{ mock.Mock }

func (m *MockPackBoxTrackingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPackBoxTrackingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPackBoxTrackingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackBoxTrackingUoW) PackBoxRepository() ports.PackBoxRepository {
	args := m.Called()
	return args.Get(0).(ports.PackBoxRepository)
}

func (m *MockPackBoxTrackingUoW) TrackingItemRepository() ports.TrackingItemRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingItemRepository)
}

func (m *MockPackBoxTrackingUoW) ActionLog() ports.ActionLog {
	args := m.Called()
	return args.Get(0).(ports.ActionLog)
}

type MockPackBoxTrackingUoWFactory struct{ mock.Mock }

func (m *MockPackBoxTrackingUoWFactory) Create() commands.PackBoxTrackingUoW {
	args := m.Called()
	return args.Get(0).(commands.PackBoxTrackingUoW)
}

func TestAddItemToPackBoxCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	packBox, err := delivery.NewPackBox(kernel.NewUUID(), "PB-001")
	require.NoError(t, err)
	item, err := tracking.NewTrackingItem(kernel.NewUUID(), "LX123456789US", now)
	require.NoError(t, err)

	cmd, err := commands.NewAddItemToPackBoxCommand("LX123456789US", "PB-001")
	require.NoError(t, err)

	packBoxRepo := new(MockPackBoxRepository)
	itemRepo := new(MockTrackingItemRepository)
	actionLog := new(MockActionLog)
	uow := new(MockPackBoxTrackingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackBoxRepository").Return(packBoxRepo).Once(),
		packBoxRepo.On("GetByCode", mock.Anything, "PB-001").Return(packBox, nil).Once(),
		uow.On("TrackingItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetByTrackingNumber", mock.Anything, "LX123456789US").Return(item, nil).Once(),
		itemRepo.On("Update", mock.Anything, item).Return(nil).Once(),
		uow.On("ActionLog").Return(actionLog).Once(),
		actionLog.On("Record", mock.Anything, "pack-item", "LX123456789US", "PB-001").Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackBoxTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddItemToPackBoxCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, item.PackBoxID())
	require.True(t, item.PackBoxID().IsEqual(packBox.ID()))
	packBoxRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
	actionLog.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAddItemToPackBoxCommandHandler_Handle_HeldItemRejected(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	packBox, err := delivery.NewPackBox(kernel.NewUUID(), "PB-001")
	require.NoError(t, err)
	item, err := tracking.NewTrackingItem(kernel.NewUUID(), "LX123456789US", now)
	require.NoError(t, err)
	require.NoError(t, item.RequestReturn(now))

	cmd, err := commands.NewAddItemToPackBoxCommand("LX123456789US", "PB-001")
	require.NoError(t, err)

	packBoxRepo := new(MockPackBoxRepository)
	itemRepo := new(MockTrackingItemRepository)
	uow := new(MockPackBoxTrackingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackBoxRepository").Return(packBoxRepo).Once(),
		packBoxRepo.On("GetByCode", mock.Anything, "PB-001").Return(packBox, nil).Once(),
		uow.On("TrackingItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetByTrackingNumber", mock.Anything, "LX123456789US").Return(item, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackBoxTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddItemToPackBoxCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, tracking.ErrReturnRequestActive)
	require.Nil(t, item.PackBoxID())
	packBoxRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAddItemToPackBoxCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AddItemToPackBoxCommand{} // not constructed properly
	factory := new(MockPackBoxTrackingUoWFactory)
	h := commands.NewAddItemToPackBoxCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
