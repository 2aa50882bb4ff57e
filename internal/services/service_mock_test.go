package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestNoteGet_Found(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewNoteService(db, nil, nil)

	noteID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "title", "subject", "status", "rating_sum", "rating_count"}).
		AddRow(noteID.String(), uuid.New().String(), "Calculus I", "math", "approved", 9, 2)

	mock.ExpectQuery(`SELECT \* FROM "notes"`).WillReturnRows(rows)

	note, err := svc.Get(noteID)

	require.NoError(t, err)
	assert.Equal(t, noteID, note.ID)
	assert.Equal(t, "Calculus I", note.Title)
	assert.InDelta(t, 4.5, note.AverageRating(), 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteGet_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewNoteService(db, nil, nil)

	mock.ExpectQuery(`SELECT \* FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(uuid.New())

	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewDelete_MissingReviewRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReviewService(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := svc.Delete(uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrReviewNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func noteRow(noteID uuid.UUID, downloadCount int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "owner_id", "title", "subject", "status", "download_count"}).
		AddRow(noteID.String(), uuid.New().String(), "Linear Algebra", "math", "approved", downloadCount)
}

func TestTrackDownload_FirstDownloadRecordsUser(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewNoteService(db, nil, nil)

	noteID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "notes"`).WillReturnRows(noteRow(noteID, 3))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notes" SET "download_count"=download_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "note_downloads" .+ ON CONFLICT DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "notes"`).WillReturnRows(noteRow(noteID, 4))

	note, err := svc.TrackDownload(uuid.New(), noteID)

	require.NoError(t, err)
	assert.Equal(t, 4, note.DownloadCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A repeat download still bumps the counter, but the conflict on the
// (note, user) pair leaves the downloader set untouched.
func TestTrackDownload_RepeatDownloadOnlyBumpsCounter(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewNoteService(db, nil, nil)

	noteID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "notes"`).WillReturnRows(noteRow(noteID, 4))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notes" SET "download_count"=download_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "note_downloads" .+ ON CONFLICT DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "notes"`).WillReturnRows(noteRow(noteID, 5))

	note, err := svc.TrackDownload(uuid.New(), noteID)

	require.NoError(t, err)
	assert.Equal(t, 5, note.DownloadCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrackDownload_UnknownNote(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewNoteService(db, nil, nil)

	mock.ExpectQuery(`SELECT \* FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.TrackDownload(uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavorite_DuplicateIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewNoteService(db, nil, nil)

	noteID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "notes"`).WillReturnRows(noteRow(noteID, 0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "favorites" .+ ON CONFLICT DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	err := svc.Favorite(uuid.New(), noteID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfavorite_MissingFavoriteIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewNoteService(db, nil, nil)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "favorites"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := svc.Unfavorite(uuid.New(), uuid.New())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoubtGet_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDoubtService(db, nil)

	mock.ExpectQuery(`SELECT \* FROM "doubts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(uuid.New())

	assert.ErrorIs(t, err, ErrDoubtNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
