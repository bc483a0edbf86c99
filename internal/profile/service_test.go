package profile

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "duration", "agent_price", "selling_price",
		"router_profile", "active", "voucher_code_length", "created_at",
	})
}

func TestListActiveForAgentNormalizesLegacyFlags(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := profileRows().
		AddRow(1, "1 Jam", "1h", 1000, 2000, "profil-1jam", []byte("1"), 4, now).
		AddRow(2, "3 Jam", "3h", 3000, 5000, "profil-3jam", []byte("true"), 4, now).
		AddRow(3, "1 Hari", "1d", 8000, 12000, "profil-1hari", []byte("t"), 6, now).
		AddRow(4, "Stale", "1h", 9000, 9000, "profil-stale", []byte("0"), 4, now)

	mock.ExpectQuery("SELECT (.+) FROM voucher_profiles").WillReturnRows(rows)

	svc := NewService(NewRepository(db), nil)
	profiles, err := svc.ListActiveForAgent(context.Background())
	require.NoError(t, err)

	// The stale row slipped past the SQL filter but not the re-filter
	require.Len(t, profiles, 3)
	for _, p := range profiles {
		assert.True(t, p.Active)
	}
	assert.Equal(t, "1 Jam", profiles[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDClampsCodeLength(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := profileRows().
		AddRow(1, "1 Jam", "1h", 1000, 2000, "profil-1jam", []byte("1"), 99, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM voucher_profiles WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	svc := NewService(NewRepository(db), nil)
	p, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, MaxCodeLength, p.CodeLength)
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM voucher_profiles WHERE id").
		WithArgs(int64(404)).
		WillReturnRows(profileRows())

	svc := NewService(NewRepository(db), nil)
	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(nil, nil)

	tests := []struct {
		name string
		req  *CreateProfileRequest
	}{
		{name: "missing name", req: &CreateProfileRequest{Duration: "1h", AgentPrice: 1000, SellingPrice: 2000, RouterProfile: "p"}},
		{name: "missing duration", req: &CreateProfileRequest{Name: "x", AgentPrice: 1000, SellingPrice: 2000, RouterProfile: "p"}},
		{name: "zero agent price", req: &CreateProfileRequest{Name: "x", Duration: "1h", SellingPrice: 2000, RouterProfile: "p"}},
		{name: "negative selling price", req: &CreateProfileRequest{Name: "x", Duration: "1h", AgentPrice: 1000, SellingPrice: -1, RouterProfile: "p"}},
		{name: "missing router profile", req: &CreateProfileRequest{Name: "x", Duration: "1h", AgentPrice: 1000, SellingPrice: 2000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}
