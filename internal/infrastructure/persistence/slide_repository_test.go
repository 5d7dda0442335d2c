package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/storefront/backend/internal/domain/carousel"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var slideColumns = []string{"id", "slide_order", "image_path", "title", "subtitle", "alt_text", "created_at", "updated_at"}

// newMockSlideRepository creates a GormSlideRepository with a mocked SQL connection
func newMockSlideRepository(t *testing.T) (*GormSlideRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSlideRepository(gormDB), mock, mockDB
}

func TestGormSlideRepository_GetByID(t *testing.T) {
	t.Run("finds existing slide", func(t *testing.T) {
		repo, mock, mockDB := newMockSlideRepository(t)
		defer mockDB.Close()

		now := time.Now()
		rows := sqlmock.NewRows(slideColumns).
			AddRow(int64(3), 2, "https://cdn.example.com/a.png", "Summer", "Up to 50% off", nil, now, now)

		mock.ExpectQuery(`SELECT \* FROM "carousel_slides" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(3), 1).
			WillReturnRows(rows)

		slide, err := repo.GetByID(context.Background(), 3)

		require.NoError(t, err)
		require.NotNil(t, slide)
		assert.Equal(t, int64(3), slide.ID)
		assert.Equal(t, 2, slide.Order)
		assert.Equal(t, "https://cdn.example.com/a.png", slide.ImageRef)
		assert.Equal(t, "Up to 50% off", *slide.Subtitle)
		assert.Nil(t, slide.AltText)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil without error when absent", func(t *testing.T) {
		repo, mock, mockDB := newMockSlideRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "carousel_slides" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(99), 1).
			WillReturnRows(sqlmock.NewRows(slideColumns))

		slide, err := repo.GetByID(context.Background(), 99)

		assert.NoError(t, err)
		assert.Nil(t, slide)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps driver errors as persistence errors", func(t *testing.T) {
		repo, mock, mockDB := newMockSlideRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "carousel_slides"`).
			WillReturnError(sql.ErrConnDone)

		slide, err := repo.GetByID(context.Background(), 1)

		assert.Nil(t, slide)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrPersistence))
		assert.True(t, errors.Is(err, sql.ErrConnDone))
	})
}

func TestGormSlideRepository_ListAll(t *testing.T) {
	t.Run("orders by slide_order", func(t *testing.T) {
		repo, mock, mockDB := newMockSlideRepository(t)
		defer mockDB.Close()

		now := time.Now()
		rows := sqlmock.NewRows(slideColumns).
			AddRow(int64(2), 1, "b.png", "B", nil, nil, now, now).
			AddRow(int64(1), 2, "a.png", "A", nil, nil, now, now)

		mock.ExpectQuery(`SELECT \* FROM "carousel_slides" ORDER BY slide_order ASC,id ASC`).
			WillReturnRows(rows)

		slides, err := repo.ListAll(context.Background())

		require.NoError(t, err)
		require.Len(t, slides, 2)
		assert.Equal(t, "B", slides[0].Title)
		assert.Equal(t, "A", slides[1].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSlideRepository_NextOrder(t *testing.T) {
	t.Run("returns 1 for empty table", func(t *testing.T) {
		repo, mock, mockDB := newMockSlideRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT MAX\(slide_order\) FROM "carousel_slides"`).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

		next, err := repo.NextOrder(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, next)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns max plus one", func(t *testing.T) {
		repo, mock, mockDB := newMockSlideRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT MAX\(slide_order\) FROM "carousel_slides"`).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(4))

		next, err := repo.NextOrder(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 5, next)
	})
}

func TestGormSlideRepository_Create(t *testing.T) {
	repo, mock, mockDB := newMockSlideRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`INSERT INTO "carousel_slides" .* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	slide, err := repo.Create(context.Background(), carousel.SlideData{
		Order:       4,
		ImageRef:    "https://cdn.example.com/new.png",
		SlideFields: carousel.SlideFields{Title: "New arrivals"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), slide.ID)
	assert.Equal(t, 4, slide.Order)
	assert.False(t, slide.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSlideRepository_Update(t *testing.T) {
	t.Run("returns nil when no row matched", func(t *testing.T) {
		repo, mock, mockDB := newMockSlideRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "carousel_slides" SET .* WHERE id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		slide, err := repo.Update(context.Background(), 5, carousel.SlideData{
			Order: 1, ImageRef: "a.png", SlideFields: carousel.SlideFields{Title: "A"},
		})

		assert.NoError(t, err)
		assert.Nil(t, slide)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("re-reads the row after writing", func(t *testing.T) {
		repo, mock, mockDB := newMockSlideRepository(t)
		defer mockDB.Close()

		now := time.Now()
		mock.ExpectExec(`UPDATE "carousel_slides" SET .* WHERE id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "carousel_slides" WHERE id = \$1`).
			WithArgs(int64(5), 1).
			WillReturnRows(sqlmock.NewRows(slideColumns).AddRow(int64(5), 1, "a.png", "A", nil, nil, now, now))

		slide, err := repo.Update(context.Background(), 5, carousel.SlideData{
			Order: 1, ImageRef: "a.png", SlideFields: carousel.SlideFields{Title: "A"},
		})

		require.NoError(t, err)
		assert.Equal(t, "A", slide.Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSlideRepository_Delete(t *testing.T) {
	t.Run("reports removal", func(t *testing.T) {
		repo, mock, mockDB := newMockSlideRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "carousel_slides" WHERE id = \$1`).
			WithArgs(int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		removed, err := repo.Delete(context.Background(), 8)

		require.NoError(t, err)
		assert.True(t, removed)
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		repo, mock, mockDB := newMockSlideRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "carousel_slides" WHERE id = \$1`).
			WithArgs(int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		removed, err := repo.Delete(context.Background(), 8)

		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestGormSlideRepository_BatchUpsert_RollsBackOnFailure(t *testing.T) {
	repo, mock, mockDB := newMockSlideRepository(t)
	defer mockDB.Close()

	first := int64(1)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "carousel_slides" SET .* WHERE id = \$\d+`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	slides, err := repo.BatchUpsert(context.Background(), []carousel.UpsertItem{
		{ID: &first, ImageRef: "a.png", SlideFields: carousel.SlideFields{Title: "A"}},
		{ImageRef: "c.png", SlideFields: carousel.SlideFields{Title: "C"}},
	})

	assert.Nil(t, slides)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrPersistence))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSlideRepository_BatchUpsert_Empty(t *testing.T) {
	repo, mock, mockDB := newMockSlideRepository(t)
	defer mockDB.Close()

	slides, err := repo.BatchUpsert(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, slides)
	assert.NoError(t, mock.ExpectationsWereMet())
}
