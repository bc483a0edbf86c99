package agent

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionalDebit(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		want         bool
	}{
		{name: "balance covers amount", rowsAffected: 1, want: true},
		{name: "balance too low or agent inactive", rowsAffected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec("UPDATE agents").
				WithArgs(int64(1), int64(9000)).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			repo := NewRepository(db)
			ok, err := repo.ConditionalDebit(context.Background(), 1, 9000)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConditionalDebitGuardsInSQL(t *testing.T) {
	// The debit must be a single conditional UPDATE, not a read-modify-write
	// pair: the balance check belongs to the statement itself.
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE agents\s+SET balance = balance - \$2\s+WHERE id = \$1 AND active AND balance >= \$2`).
		WithArgs(int64(42), int64(500)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRepository(db)
	ok, err := repo.ConditionalDebit(context.Background(), 42, 500)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "username", "balance", "active", "created_at"}).
		AddRow(1, "Budi", "budi", 15000, true, time.Now())

	mock.ExpectQuery("UPDATE agents").
		WithArgs(int64(1), int64(5000)).
		WillReturnRows(rows)

	repo := NewRepository(db)
	a, err := repo.Credit(context.Background(), 1, 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), a.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
