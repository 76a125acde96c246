package backend

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/event-board/internal/models"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

var eventRowColumns = []string{"id", "title", "description", "image", "start_time", "end_time", "location", "created_by", "category_ids"}

func newStoreMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPostgresStoreListEvents(t *testing.T) {
	store, mock := newStoreMock(t)
	rows := sqlmock.NewRows(eventRowColumns).
		AddRow(1, "Jazz Night", "Live", "", "2024-01-01T10:00", "2024-01-01T12:00", "Berlin", 1, "{1,2}").
		AddRow(2, "Yoga", "", "", "2024-02-01T07:00:00Z", "", "", 2, "{}")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + eventColumns + " FROM events ORDER BY id")).WillReturnRows(rows)

	events, err := store.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, []models.ID{1, 2}, events[0].CategoryIDs)
	assert.Equal(t, "2024-01-01T10:00", events[0].StartTime.String())
	assert.Empty(t, events[1].CategoryIDs)
	assert.True(t, events[1].EndTime.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetEventNotFound(t *testing.T) {
	store, mock := newStoreMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE id = $1")).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	_, err := store.GetEvent(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreCreateEventReturnsID(t *testing.T) {
	store, mock := newStoreMock(t)
	mock.ExpectQuery("INSERT INTO events").
		WithArgs("Harbour", "", "", "2024-06-01T18:00", "2024-06-01T21:00", "Hamburg", int64(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	start, err := models.ParseTimestamp("2024-06-01T18:00")
	require.NoError(t, err)
	end, err := models.ParseTimestamp("2024-06-01T21:00")
	require.NoError(t, err)

	created, err := store.CreateEvent(context.Background(), models.Event{
		Title: "Harbour", StartTime: start, EndTime: end, Location: "Hamburg", CreatedBy: 1, CategoryIDs: []models.ID{1},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ID(5), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorePatchEventMergesFields(t *testing.T) {
	store, mock := newStoreMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE id = $1")).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow(1, "Jazz Night", "Live", "", "2024-01-01T10:00", "2024-01-01T12:00", "Berlin", 1, "{1}"))
	mock.ExpectExec("UPDATE events SET").WillReturnResult(sqlmock.NewResult(0, 1))

	title := "Jazz Night II"
	updated, err := store.PatchEvent(context.Background(), 1, EventPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night II", updated.Title)
	assert.Equal(t, "Berlin", updated.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDeleteEvent(t *testing.T) {
	store, mock := newStoreMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = $1")).WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = $1")).WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.DeleteEvent(context.Background(), 1))
	err := store.DeleteEvent(context.Background(), 2)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSeedSkipsPopulatedTables(t *testing.T) {
	store, mock := newStoreMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM events")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	require.NoError(t, store.Seed(context.Background(), &Seed{Categories: []models.Category{{ID: 1, Name: "music"}}}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSeedInsertsRows(t *testing.T) {
	store, mock := newStoreMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM events")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO categories").WithArgs(int64(1), "music").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO users").WithArgs(int64(1), "Ada", "").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO events").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("SELECT setval").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	seed := &Seed{
		Events:     []models.Event{{ID: 7, Title: "Jazz", CategoryIDs: []models.ID{1}}},
		Categories: []models.Category{{ID: 1, Name: "music"}},
		Users:      []models.User{{ID: 1, Name: "Ada"}},
	}
	require.NoError(t, store.Seed(context.Background(), seed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreCategoriesAndUsers(t *testing.T) {
	store, mock := newStoreMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM categories ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "music").AddRow(2, "wellness"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, image FROM users WHERE id = $1")).WithArgs(int64(3)).
		WillReturnError(sql.ErrNoRows)

	categories, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Category{{ID: 1, Name: "music"}, {ID: 2, Name: "wellness"}}, categories)

	_, err = store.GetUser(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
