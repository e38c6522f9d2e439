package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"room-availability-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormStore_RecordAction(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	start := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
	action := &model.ReservationAction{
		RoomID:          "aquarium",
		EventID:         "ev-99",
		Action:          model.ActionCreate,
		Title:           "design review",
		StartTime:       &start,
		DurationMinutes: 60,
		PerformedAt:     time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reservation_actions"`)).
		WithArgs("aquarium", "ev-99", model.ActionCreate, "design review", start, 60, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := s.RecordAction(context.Background(), action)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_RecentActions(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "room_id", "event_id", "action", "title", "duration_minutes", "performed_at"}).
		AddRow(2, "aquarium", "ev-2", model.ActionDelete, "", 0, now).
		AddRow(1, "aquarium", "ev-1", model.ActionCreate, "standup", 30, now.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reservation_actions" ORDER BY performed_at DESC LIMIT $1`)).
		WithArgs(20).
		WillReturnRows(rows)

	actions, err := s.RecentActions(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, model.ActionDelete, actions[0].Action)
	assert.Equal(t, "ev-1", actions[1].EventID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
