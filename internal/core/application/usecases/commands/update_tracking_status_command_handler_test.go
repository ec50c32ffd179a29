package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/outbox"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTrackingItemRepository struct{ mock.Mock }

func (m *MockTrackingItemRepository) Add(_ context.Context, _ *tracking.TrackingItem) error {
	return errors.New("not implemented in mock")
}
func (m *MockTrackingItemRepository) Update(ctx context.Context, aggregate *tracking.TrackingItem) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockTrackingItemRepository) Delete(_ context.Context, _ kernel.UUID) error {
	return errors.New("not implemented in mock")
}
func (m *MockTrackingItemRepository) Get(_ context.Context, _ kernel.UUID) (*tracking.TrackingItem, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockTrackingItemRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*tracking.TrackingItem, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.TrackingItem), args.Error(1)
}
func (m *MockTrackingItemRepository) GetAllByBox(ctx context.Context, boxID kernel.UUID) ([]*tracking.TrackingItem, error) {
	args := m.Called(ctx, boxID)
	return args.Get(0).([]*tracking.TrackingItem), args.Error(1)
}
func (m *MockTrackingItemRepository) GetAllByPackBox(_ context.Context, _ kernel.UUID) ([]*tracking.TrackingItem, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockTrackingItemRepository) GetAllExpired(_ context.Context, _ time.Time, _ int) ([]*tracking.TrackingItem, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
func (m *MockOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
func (m *MockOutboxRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOutboxRepository) GetAllUnsent(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*outbox.Message), args.Error(1)
}
func (m *MockOutboxRepository) AddFailedJob(ctx context.Context, job *outbox.FailedJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

type MockActionLog struct{ mock.Mock }

func (m *MockActionLog) Record(ctx context.Context, action, subject, detail string) error {
	args := m.Called(ctx, action, subject, detail)
	return args.Error(0)
}

type MockTrackingOutboxUoW struct{ mock.Mock }

func (m *MockTrackingOutboxUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTrackingOutboxUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTrackingOutboxUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrackingOutboxUoW) TrackingItemRepository() ports.TrackingItemRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingItemRepository)
}

func (m *MockTrackingOutboxUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

func (m *MockTrackingOutboxUoW) ActionLog() ports.ActionLog {
	args := m.Called()
	return args.Get(0).(ports.ActionLog)
}

type MockTrackingOutboxUoWFactory struct{ mock.Mock }

func (m *MockTrackingOutboxUoWFactory) Create() commands.TrackingOutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingOutboxUoW)
}

func TestUpdateTrackingStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	item, err := tracking.NewTrackingItem(kernel.NewUUID(), "LX123456789US", time.Now().UTC())
	require.NoError(t, err)
	cmd, err := commands.NewUpdateTrackingStatusCommand("LX123456789US", tracking.StageRegistered, nil)
	require.NoError(t, err)

	itemRepo := new(MockTrackingItemRepository)
	outboxRepo := new(MockOutboxRepository)
	actionLog := new(MockActionLog)
	uow := new(MockTrackingOutboxUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TrackingItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetByTrackingNumber", mock.Anything, "LX123456789US").Return(item, nil).Once(),
		itemRepo.On("Update", mock.Anything, item).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("*outbox.Message")).Return(nil).Once(),
		uow.On("ActionLog").Return(actionLog).Once(),
		actionLog.On("Record", mock.Anything, "status-update", "LX123456789US", "registered").Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrackingOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	transitionsBefore := testutil.ToFloat64(testMetrics.StatusTransitions.WithLabelValues("registered"))

	h := commands.NewUpdateTrackingStatusCommandHandler(factory, testMetrics)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, tracking.StageRegistered, item.Status())
	require.Equal(t, transitionsBefore+1, testutil.ToFloat64(testMetrics.StatusTransitions.WithLabelValues("registered")))
	itemRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	actionLog.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateTrackingStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateTrackingStatusCommand{} // not constructed properly
	factory := new(MockTrackingOutboxUoWFactory)
	h := commands.NewUpdateTrackingStatusCommandHandler(factory, testMetrics)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestUpdateTrackingStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	item, err := tracking.NewTrackingItem(kernel.NewUUID(), "LX123456789US", time.Now().UTC())
	require.NoError(t, err)
	cmd, err := commands.NewUpdateTrackingStatusCommand("LX123456789US", tracking.StageRepacked, nil)
	require.NoError(t, err)

	itemRepo := new(MockTrackingItemRepository)
	uow := new(MockTrackingOutboxUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TrackingItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetByTrackingNumber", mock.Anything, "LX123456789US").Return(item, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrackingOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateTrackingStatusCommandHandler(factory, testMetrics)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, tracking.ErrInvalidTransition)
	require.Equal(t, tracking.StageNew, item.Status())
	itemRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateTrackingStatusCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpdateTrackingStatusCommand("LX123456789US", tracking.StageRegistered, nil)
	require.NoError(t, err)

	uow := new(MockTrackingOutboxUoW)
	factory := new(MockTrackingOutboxUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewUpdateTrackingStatusCommandHandler(factory, testMetrics)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
