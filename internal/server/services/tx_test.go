package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/wastecms/internal/dbx"
	"github.com/dmitrijs2005/wastecms/internal/logging"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInTx_PassesThroughWithoutConnection(t *testing.T) {
	called := false
	err := inTx(context.Background(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		called = true
		assert.Nil(t, tx)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestInTx_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = inTx(context.Background(), db, func(ctx context.Context, tx dbx.DBTX) error { return boom })
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTestimonialService_Delete_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
		require.NoError(t, mock.ExpectationsWereMet())
	})

	store := newMemStore()
	image, err := store.Save(context.Background(), ".png", "image/png", []byte{1})
	require.NoError(t, err)

	s := NewTestimonialService(db, repomanager.NewPostgresRepositoryManager(), store, logging.Discard())

	cols := []string{"id", "name", "position", "company", "industry", "testimonial", "rating", "image", "status", "created_at"}
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM testimonials\s+WHERE id = \$1`).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow([]driver.Value{
			"t1", "A. Rao", "Manager", "Acme", "", "Great service", int64(5), image, "approved", time.Now(),
		}...))
	mock.ExpectExec(`DELETE FROM testimonials WHERE id = \$1`).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Delete(context.Background(), "t1"))
	assert.False(t, store.has(image))
}
