package report

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryZeroActivity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	w := Today(time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC))

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(w.From, w.To).
		WillReturnRows(sqlmock.NewRows([]string{"settlements", "vouchers", "gross"}).
			AddRow(0, 0, 0))

	repo := NewRepository(db)
	summary, err := repo.Summary(context.Background(), w)
	require.NoError(t, err)

	assert.Equal(t, &Summary{}, summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByAgentEmptyWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	w := Today(time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC))

	mock.ExpectQuery("SELECT s.created_by").
		WithArgs(w.From, w.To).
		WillReturnRows(sqlmock.NewRows([]string{"agent_id", "name", "settlements", "vouchers", "gross"}))

	repo := NewRepository(db)
	totals, err := repo.ByAgent(context.Background(), w)
	require.NoError(t, err)

	assert.NotNil(t, totals)
	assert.Empty(t, totals)
}

func TestByDayFormatsDays(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	w := ThisMonth(time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC))

	mock.ExpectQuery("SELECT s.created_at::date").
		WithArgs(w.From, w.To).
		WillReturnRows(sqlmock.NewRows([]string{"day", "settlements", "vouchers", "gross"}).
			AddRow(time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), 2, 5, 15000).
			AddRow(time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC), 1, 1, 3000))

	repo := NewRepository(db)
	totals, err := repo.ByDay(context.Background(), w)
	require.NoError(t, err)

	require.Len(t, totals, 2)
	assert.Equal(t, "2026-08-03", totals[0].Day)
	assert.Equal(t, int64(15000), totals[0].GrossAmount)
	assert.Equal(t, "2026-08-04", totals[1].Day)
}
