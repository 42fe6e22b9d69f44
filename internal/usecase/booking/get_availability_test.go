package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/alexisallendez04/appBarberos-sub001/internal/domain/appointment"
	"github.com/alexisallendez04/appBarberos-sub001/internal/infra/cache"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
)

func newAvailabilityUC(repo domain.Repository) *GetAvailability {
	uc := NewGetAvailability(repo, cache.NewAvailabilityCache(nil))
	uc.now = func(string) time.Time {
		return time.Date(2024, 12, 21, 10, 0, 0, 0, time.UTC)
	}
	return uc
}

func TestGetAvailabilityGrid(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(fxService(), nil)
	expectDay(repo, fxConfig(), []models.Appointment{
		{BarberID: fxBarberID, Date: fxDate, StartTime: "09:30", EndTime: "10:00", Status: "booked"},
	})

	uc := newAvailabilityUC(repo)
	out, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID:  fxBarberID,
		ServiceID: fxServiceID,
		Date:      fxDate,
	})

	require.NoError(t, err)
	assert.Equal(t, fxDate, out.Date)
	assert.Empty(t, out.Message)

	// 09:00-18:00 cada 30' son 18 turnos, menos el ocupado de 09:30
	require.Len(t, out.Slots, 17)
	assert.Equal(t, "09:00", out.Slots[0].HoraInicio)
	assert.Equal(t, "09:30", out.Slots[0].HoraFin)
	for _, s := range out.Slots {
		assert.NotEqual(t, "09:30", s.HoraInicio)
	}
}

func TestGetAvailabilityNotWorkingDay(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(fxService(), nil)
	repo.On("GetBarberByID", mock.Anything, fxBarberID).Return(fxBarber(), nil)
	repo.On("GetBarberConfig", mock.Anything, fxBarberID).Return(fxConfig(), nil)
	// domingo: sin reglas para ese weekday
	repo.On("ListWorkingHours", mock.Anything, fxBarberID, 0).Return([]models.WorkingHours{}, nil)
	repo.On("GetSpecialDay", mock.Anything, fxBarberID, "2024-12-22").Return(nil, nil)
	repo.On("ListNonCancelledAppointments", mock.Anything, fxBarberID, "2024-12-22").
		Return([]models.Appointment{}, nil)

	uc := newAvailabilityUC(repo)
	out, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID:  fxBarberID,
		ServiceID: fxServiceID,
		Date:      "2024-12-22",
	})

	require.NoError(t, err)
	assert.Empty(t, out.Slots)
	assert.NotEmpty(t, out.Message)
}

func TestGetAvailabilityUnknownService(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(nil, nil)

	uc := newAvailabilityUC(repo)
	_, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID:  fxBarberID,
		ServiceID: fxServiceID,
		Date:      fxDate,
	})
	assertRejected(t, err, domain.RejectInvalidService)
}
