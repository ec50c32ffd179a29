package commands_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTrackingAuditUoW struct{ mock.Mock }

func (m *MockTrackingAuditUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTrackingAuditUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTrackingAuditUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrackingAuditUoW) TrackingItemRepository() ports.TrackingItemRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingItemRepository)
}

func (m *MockTrackingAuditUoW) ActionLog() ports.ActionLog {
	args := m.Called()
	return args.Get(0).(ports.ActionLog)
}

type MockTrackingAuditUoWFactory struct{ mock.Mock }

func (m *MockTrackingAuditUoWFactory) Create() commands.TrackingAuditUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingAuditUoW)
}

func TestRemovePieceFromBoxCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	item, err := tracking.NewTrackingItem(kernel.NewUUID(), "LX123456789US", now)
	require.NoError(t, err)
	for _, stage := range []tracking.Stage{tracking.StageRegistered, tracking.StageReceivedAtUS, tracking.StageRepacking, tracking.StageRepacked} {
		_, err = item.Transition(stage, now)
		require.NoError(t, err)
	}
	piece := item.Pieces()[0]
	require.NoError(t, piece.AssignToBox(kernel.NewUUID()))
	_, err = item.AdvancePieces([]string{piece.ID().String()}, tracking.StageBoxed, now)
	require.NoError(t, err)

	cmd, err := commands.NewRemovePieceFromBoxCommand("LX123456789US", []string{piece.ID().String()})
	require.NoError(t, err)

	itemRepo := new(MockTrackingItemRepository)
	actionLog := new(MockActionLog)
	uow := new(MockTrackingAuditUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TrackingItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetByTrackingNumber", mock.Anything, "LX123456789US").Return(item, nil).Once(),
		itemRepo.On("Update", mock.Anything, item).Return(nil).Once(),
		uow.On("ActionLog").Return(actionLog).Once(),
		actionLog.On("Record", mock.Anything, "unpack-piece", "LX123456789US", piece.ID().String()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrackingAuditUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemovePieceFromBoxCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, tracking.StageRepacked, item.Status())
	require.Nil(t, piece.BoxID())
	itemRepo.AssertExpectations(t)
	actionLog.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRemovePieceFromBoxCommandHandler_Handle_UnknownPiece(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	item, err := tracking.NewTrackingItem(kernel.NewUUID(), "LX123456789US", now)
	require.NoError(t, err)

	cmd, err := commands.NewRemovePieceFromBoxCommand("LX123456789US", []string{"no-such-piece"})
	require.NoError(t, err)

	itemRepo := new(MockTrackingItemRepository)
	uow := new(MockTrackingAuditUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TrackingItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetByTrackingNumber", mock.Anything, "LX123456789US").Return(item, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrackingAuditUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemovePieceFromBoxCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	itemRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRemovePieceFromBoxCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RemovePieceFromBoxCommand{} // not constructed properly
	factory := new(MockTrackingAuditUoWFactory)
	h := commands.NewRemovePieceFromBoxCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
