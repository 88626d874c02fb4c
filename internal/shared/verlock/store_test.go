package verlock

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name    string    `gorm:"column:name"`
	Version int64     `gorm:"column:version;not null;default:1"`
}

func (widget) TableName() string { return "widgets" }

func (w *widget) PrimaryID() uuid.UUID     { return w.ID }
func (w *widget) EntityVersion() int64     { return w.Version }
func (w *widget) SetEntityVersion(v int64) { w.Version = v }

func newTestStore(t *testing.T) (*Store[*widget], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewStore(gdb, func() *widget { return &widget{} }), mock
}

func widgetRows(id uuid.UUID, name string, version int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "version"}).AddRow(id, name, version)
}

func TestUpdateWithVersion_Succeeds(t *testing.T) {
	store, mock := newTestStore(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE "widgets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "widgets" WHERE id =`).
		WillReturnRows(widgetRows(id, "baru", 3))

	updated, err := store.UpdateWithVersion(context.Background(), id, 2, map[string]any{"name": "baru"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated.Version)
	assert.Equal(t, "baru", updated.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithVersion_StaleVersionNeverMutates(t *testing.T) {
	store, mock := newTestStore(t)
	id := uuid.New()

	// nol baris kena: versi sudah digeser penulis lain
	mock.ExpectExec(`UPDATE "widgets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM "widgets" WHERE id =`).
		WillReturnRows(widgetRows(id, "lama", 5))

	_, err := store.UpdateWithVersion(context.Background(), id, 2, map[string]any{"name": "baru"})

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, id, conflict.EntityID)
	assert.Equal(t, int64(2), conflict.ExpectedVersion)
	require.NotNil(t, conflict.ActualVersion)
	assert.Equal(t, int64(5), *conflict.ActualVersion)
	assert.True(t, conflict.IsConcurrencyConflict())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithVersion_InitializesVersionOne(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec(`INSERT INTO "widgets"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := store.CreateWithVersion(context.Background(), &widget{ID: uuid.New(), Name: "w"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompareAndSwap_FailFastOnStaleRead(t *testing.T) {
	store, mock := newTestStore(t)
	id := uuid.New()

	// versi di store (7) != versi yang dipegang caller (3) -> langsung konflik
	mock.ExpectQuery(`SELECT (.+) FROM "widgets" WHERE id =`).
		WillReturnRows(widgetRows(id, "w", 7))

	mutateCalled := false
	_, err := store.CompareAndSwap(context.Background(), id, 3,
		func(current *widget) (map[string]any, error) {
			mutateCalled = true
			return map[string]any{"name": "x"}, nil
		}, FailFast)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	require.NotNil(t, conflict.ActualVersion)
	assert.Equal(t, int64(7), *conflict.ActualVersion)
	assert.False(t, mutateCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompareAndSwap_HappyPath(t *testing.T) {
	store, mock := newTestStore(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "widgets" WHERE id =`).
		WillReturnRows(widgetRows(id, "w", 3))
	mock.ExpectExec(`UPDATE "widgets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "widgets" WHERE id =`).
		WillReturnRows(widgetRows(id, "x", 4))

	updated, err := store.CompareAndSwap(context.Background(), id, 3,
		func(current *widget) (map[string]any, error) {
			return map[string]any{"name": "x"}, nil
		}, FailFast)

	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompareAndSwap_RetryWithLatestAdoptsNewVersion(t *testing.T) {
	store, mock := newTestStore(t)
	id := uuid.New()

	// caller pegang versi 3, store sudah di versi 5
	mock.ExpectQuery(`SELECT (.+) FROM "widgets" WHERE id =`).
		WillReturnRows(widgetRows(id, "w", 5))
	mock.ExpectExec(`UPDATE "widgets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "widgets" WHERE id =`).
		WillReturnRows(widgetRows(id, "x", 6))

	updated, err := store.CompareAndSwap(context.Background(), id, 3,
		func(current *widget) (map[string]any, error) {
			return map[string]any{"name": "x"}, nil
		}, RetryWithLatest)

	require.NoError(t, err)
	assert.Equal(t, int64(6), updated.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}
