package trackingrepo_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres/trackingrepo"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// TrackingRepositoryIntegrationTestSuite provides integration tests for
// GormTrackingItemRepository using PostgreSQL containers to verify
// persistence behavior, including the piece child rows.
type TrackingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *trackingrepo.GormTrackingItemRepository
	tracker    *MockAggregateTracker
}

func (suite *TrackingRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&trackingrepo.TrackingItemDTO{},
		&trackingrepo.PieceDTO{},
	))
}

func (suite *TrackingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE pieces, tracking_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = trackingrepo.NewGormTrackingItemRepository(suite.db, suite.tracker)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestAdd_ValidItem_Success() {
	ctx := context.Background()

	item := suite.createTestItem("LX100200300US")

	suite.tracker.On("TrackAggregate", item.ID(), item).Once()

	err := suite.repository.Add(ctx, item)
	suite.Require().NoError(err)

	suite.assertItemCount(1)
	suite.assertPieceCount(1)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingNumber_Fails() {
	ctx := context.Background()

	first := suite.createTestItem("LX100200300US")
	second := suite.createTestItem("LX100200300US")

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, first))

	err := suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	suite.assertItemCount(1)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestGetByTrackingNumber_RoundTripsStageTimes() {
	ctx := context.Background()

	item := suite.createTestItem("LX100200300US")
	_, err := item.Transition(tracking.StageRegistered, time.Now().UTC())
	suite.Require().NoError(err)
	_, err = item.Transition(tracking.StageReceivedAtUS, time.Now().UTC())
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	loaded, err := suite.repository.GetByTrackingNumber(ctx, "LX100200300US")
	suite.Require().NoError(err)

	suite.Equal(tracking.StageReceivedAtUS, loaded.Status())
	suite.NotNil(loaded.StageTime(tracking.StageRegistered))
	suite.NotNil(loaded.StageTime(tracking.StageReceivedAtUS))
	suite.Nil(loaded.StageTime(tracking.StageRepacking))
	suite.Len(loaded.Pieces(), 1)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestGetByTrackingNumber_Unknown_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetByTrackingNumber(ctx, "NOPE")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestUpdate_ReplacesPieceRows() {
	ctx := context.Background()

	item := suite.createTestItem("LX100200300US")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	// Splitting adds a piece; deleting drops one. Both must survive a
	// save/load cycle without orphan rows.
	_, err := item.SplitPiece("carton 2/2")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, item))
	suite.assertPieceCount(2)

	loaded, err := suite.repository.Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.Len(loaded.Pieces(), 2)

	suite.Require().NoError(loaded.DeletePiece(loaded.Pieces()[0].ID()))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))
	suite.assertPieceCount(1)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestUpdate_RejectsNewHoldOnBoxedItem() {
	ctx := context.Background()
	now := time.Now().UTC()

	item := suite.createTestItem("LX100200300US")
	for _, stage := range []tracking.Stage{tracking.StageRegistered, tracking.StageReceivedAtUS, tracking.StageRepacking, tracking.StageRepacked} {
		_, err := item.Transition(stage, now)
		suite.Require().NoError(err)
	}
	piece := item.Pieces()[0]
	suite.Require().NoError(piece.AssignToBox(kernel.NewUUID()))
	_, err := item.AdvancePieces([]string{piece.ID().String()}, tracking.StageBoxed, now)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	// A write forged outside RequestReturn must still be rejected: the
	// stored row is already boxed and carries no hold.
	forged, err := tracking.RestoreTrackingItem(
		item.ID(), item.TrackingNumber(), "", "", "",
		nil, nil,
		map[tracking.Stage]time.Time{
			tracking.StageRegistered:   now,
			tracking.StageReceivedAtUS: now,
			tracking.StageRepacking:    now,
			tracking.StageRepacked:     now,
			tracking.StageBoxed:        now,
		},
		nil, &now,
		item.DeleteAt(),
		item.Pieces(),
	)
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, forged)
	suite.Require().ErrorIs(err, tracking.ErrCannotHoldTrackingAfterBeingBoxed)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestUpdate_PersistsHoldBeforeBoxing() {
	ctx := context.Background()

	item := suite.createTestItem("LX100200300US")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	suite.Require().NoError(item.RequestReturn(time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, item))

	loaded, err := suite.repository.Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.NotNil(loaded.ReturnRequestAt())
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestGetAllExpired_OnlyPastDeadline() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	fresh := suite.createTestItem("LX-FRESH")
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	expired := suite.createExpiredItem("LX-EXPIRED", time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, expired))

	found, err := suite.repository.GetAllExpired(ctx, time.Now().UTC(), 10)
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal("LX-EXPIRED", found[0].TrackingNumber())
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestDelete_RemovesItemAndPieces() {
	ctx := context.Background()

	item := suite.createTestItem("LX100200300US")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	suite.Require().NoError(suite.repository.Delete(ctx, item.ID()))

	suite.assertItemCount(0)
	suite.assertPieceCount(0)
}

func (suite *TrackingRepositoryIntegrationTestSuite) createTestItem(number string) *tracking.TrackingItem {
	item, err := tracking.NewTrackingItem(kernel.NewUUID(), number, time.Now().UTC())
	suite.Require().NoError(err)
	return item
}

func (suite *TrackingRepositoryIntegrationTestSuite) createExpiredItem(number string, deleteAt time.Time) *tracking.TrackingItem {
	piece, err := tracking.NewPiece(kernel.NewUUID(), number)
	suite.Require().NoError(err)

	item, err := tracking.RestoreTrackingItem(
		kernel.NewUUID(), number, "", "", "",
		nil, nil,
		map[tracking.Stage]time.Time{},
		nil, nil,
		deleteAt,
		[]*tracking.Piece{piece},
	)
	suite.Require().NoError(err)
	return item
}

func (suite *TrackingRepositoryIntegrationTestSuite) assertItemCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&trackingrepo.TrackingItemDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *TrackingRepositoryIntegrationTestSuite) assertPieceCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&trackingrepo.PieceDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestTrackingRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	suite.Run(t, new(TrackingRepositoryIntegrationTestSuite))
}
