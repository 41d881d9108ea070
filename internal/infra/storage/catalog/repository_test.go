package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil, nil)), mock
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM services WHERE id = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			int64(3), int64(1), "Terapia individual", nil, "terapia", []byte("150.00"), int64(50), int64(50), "active", nil, nil,
		))

	service, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Terapia individual", service.Name)
	assert.Empty(t, service.Description)
	assert.InDelta(t, 150.0, service.Price, 0.001)
	assert.Equal(t, 50, service.DurationMinutes)
	assert.Equal(t, domain.ServiceActive, service.Status)
	assert.InDelta(t, 75.0, service.DepositAmount(), 0.001)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM services").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestRepository_GetByProfessional_OnlyActive(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM services WHERE professional_id = \\$1 AND status = \\$2 ORDER BY name ASC, id ASC").
		WithArgs(int64(1), "active").
		WillReturnRows(sqlmock.NewRows(columns))

	services, err := repo.GetByProfessional(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Empty(t, services)
	assert.NoError(t, mock.ExpectationsWereMet())
}
