package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexisallendez04/appBarberos-sub001/internal/audit"
	domain "github.com/alexisallendez04/appBarberos-sub001/internal/domain/appointment"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
	"github.com/alexisallendez04/appBarberos-sub001/internal/infra/cache"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
)

// ======================================================
// MOCK REPOSITORY
// ======================================================

type repoMock struct {
	mock.Mock
}

func (m *repoMock) GetBarberByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) GetBarberConfig(ctx context.Context, barberID uint) (*models.BarberConfig, error) {
	args := m.Called(ctx, barberID)
	if c, ok := args.Get(0).(*models.BarberConfig); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) GetActiveService(ctx context.Context, serviceID uint) (*models.Service, error) {
	args := m.Called(ctx, serviceID)
	if s, ok := args.Get(0).(*models.Service); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) ListWorkingHours(ctx context.Context, barberID uint, weekday int) ([]models.WorkingHours, error) {
	args := m.Called(ctx, barberID, weekday)
	if rows, ok := args.Get(0).([]models.WorkingHours); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) GetSpecialDay(ctx context.Context, barberID uint, date string) (*models.SpecialDay, error) {
	args := m.Called(ctx, barberID, date)
	if sd, ok := args.Get(0).(*models.SpecialDay); ok {
		return sd, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) GetOrCreateClient(ctx context.Context, name, phone, email string) (*models.Client, error) {
	args := m.Called(ctx, name, phone, email)
	if c, ok := args.Get(0).(*models.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) ListNonCancelledAppointments(ctx context.Context, barberID uint, date string) ([]models.Appointment, error) {
	args := m.Called(ctx, barberID, date)
	if rows, ok := args.Get(0).([]models.Appointment); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) InsertAppointmentIfSlotFree(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *repoMock) GetByConfirmationCode(ctx context.Context, code string) (*models.Appointment, error) {
	args := m.Called(ctx, code)
	if ap, ok := args.Get(0).(*models.Appointment); ok {
		return ap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) GetAppointmentForBarber(ctx context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID, barberID)
	if ap, ok := args.Get(0).(*models.Appointment); ok {
		return ap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *repoMock) ListAppointmentsForPeriod(ctx context.Context, barberID uint, fromDate, toDate string) ([]models.Appointment, error) {
	args := m.Called(ctx, barberID, fromDate, toDate)
	if rows, ok := args.Get(0).([]models.Appointment); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ domain.Repository = (*repoMock)(nil)

// ======================================================
// FIXTURES
// ======================================================

// Lunes laborable, grilla 09:00-18:00 sin buffer: 09:00, 09:30, 10:00...
const (
	fxBarberID  = uint(1)
	fxServiceID = uint(2)
	fxDate      = "2024-12-23" // lunes
	fxWeekday   = 1
)

func fxBarber() *models.User {
	return &models.User{
		ID:       fxBarberID,
		Name:     "Alexis",
		Timezone: "America/Argentina/Buenos_Aires",
		Active:   true,
	}
}

func fxConfig() *models.BarberConfig {
	return &models.BarberConfig{
		BarberID:              fxBarberID,
		SlotIntervalMinutes:   30,
		BufferMinutes:         0,
		AdvanceBookingMinutes: 60,
		MaxBookingsPerDay:     20,
		AllowSameDayBooking:   true,
	}
}

func fxService() *models.Service {
	return &models.Service{
		ID:          fxServiceID,
		BarberID:    fxBarberID,
		Name:        "Corte clásico",
		DurationMin: 30,
		Price:       1500,
		Active:      true,
	}
}

func fxRules() []models.WorkingHours {
	return []models.WorkingHours{
		{BarberID: fxBarberID, Weekday: fxWeekday, StartTime: "09:00", EndTime: "18:00", Active: true},
	}
}

// expectDay arma el camino feliz de lectura del día.
func expectDay(repo *repoMock, cfg *models.BarberConfig, busy []models.Appointment) {
	repo.On("GetBarberByID", mock.Anything, fxBarberID).Return(fxBarber(), nil)
	repo.On("GetBarberConfig", mock.Anything, fxBarberID).Return(cfg, nil)
	repo.On("ListWorkingHours", mock.Anything, fxBarberID, fxWeekday).Return(fxRules(), nil)
	repo.On("GetSpecialDay", mock.Anything, fxBarberID, fxDate).Return(nil, nil)
	repo.On("ListNonCancelledAppointments", mock.Anything, fxBarberID, fxDate).Return(busy, nil)
}

func newReserveUC(repo domain.Repository) *Reserve {
	uc := NewReserve(repo, cache.NewAvailabilityCache(nil), audit.NewDispatcher(nil, zerolog.Nop()))
	// reloj fijo dos días antes de la fecha pedida
	uc.now = func(string) time.Time {
		return time.Date(2024, 12, 21, 10, 0, 0, 0, time.UTC)
	}
	return uc
}

func fxInput(start string) ReserveInput {
	return ReserveInput{
		BarberID:    fxBarberID,
		ServiceID:   fxServiceID,
		Date:        fxDate,
		StartTime:   start,
		ClientName:  "Juan Pérez",
		ClientPhone: "1122334455",
		ClientEmail: "juan@example.com",
	}
}

func assertRejected(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	got, ok := httperr.BusinessCode(err)
	require.True(t, ok, "expected business error, got %v", err)
	assert.Equal(t, code, got)
}

// ======================================================
// TESTS
// ======================================================

func TestReserveSuccess(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(fxService(), nil)
	expectDay(repo, fxConfig(), []models.Appointment{})
	repo.On("GetOrCreateClient", mock.Anything, "Juan Pérez", "1122334455", "juan@example.com").
		Return(&models.Client{ID: 7, Email: "juan@example.com"}, nil)
	repo.On("InsertAppointmentIfSlotFree", mock.Anything, mock.AnythingOfType("*models.Appointment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Appointment).ID = 42
		}).
		Return(nil)

	uc := newReserveUC(repo)
	out, err := uc.Execute(context.Background(), fxInput("10:00"))

	require.NoError(t, err)
	assert.Equal(t, uint(42), out.AppointmentID)
	assert.Equal(t, fxDate, out.Date)
	assert.Equal(t, "10:00", out.StartTime)
	assert.Equal(t, "10:30", out.EndTime)
	assert.Equal(t, 1500.0, out.FinalPrice)
	assert.Len(t, out.ConfirmationCode, 8)
	repo.AssertExpectations(t)
}

func TestReserveInvalidInput(t *testing.T) {
	uc := newReserveUC(new(repoMock))

	in := fxInput("10:00")
	in.Date = "23/12/2024"
	_, err := uc.Execute(context.Background(), in)
	assertRejected(t, err, "invalid_date")

	in = fxInput("10h00")
	_, err = uc.Execute(context.Background(), in)
	assertRejected(t, err, "invalid_time")
}

func TestReserveInvalidService(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(nil, nil)

	uc := newReserveUC(repo)
	_, err := uc.Execute(context.Background(), fxInput("10:00"))
	assertRejected(t, err, domain.RejectInvalidService)
}

func TestReserveServiceOfAnotherBarber(t *testing.T) {
	repo := new(repoMock)
	svc := fxService()
	svc.BarberID = 99
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(svc, nil)

	uc := newReserveUC(repo)
	_, err := uc.Execute(context.Background(), fxInput("10:00"))
	assertRejected(t, err, domain.RejectInvalidService)
}

func TestReserveSpecialDayBlocked(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(fxService(), nil)
	repo.On("GetBarberByID", mock.Anything, fxBarberID).Return(fxBarber(), nil)
	repo.On("GetBarberConfig", mock.Anything, fxBarberID).Return(fxConfig(), nil)
	repo.On("ListWorkingHours", mock.Anything, fxBarberID, fxWeekday).Return(fxRules(), nil)
	repo.On("GetSpecialDay", mock.Anything, fxBarberID, fxDate).
		Return(&models.SpecialDay{BarberID: fxBarberID, Date: fxDate, Kind: "vacation", AllDay: true}, nil)
	repo.On("ListNonCancelledAppointments", mock.Anything, fxBarberID, fxDate).
		Return([]models.Appointment{}, nil)

	uc := newReserveUC(repo)
	_, err := uc.Execute(context.Background(), fxInput("10:00"))
	assertRejected(t, err, domain.RejectSpecialDay)
}

func TestReserveOutsideWorkingHours(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(fxService(), nil)
	expectDay(repo, fxConfig(), []models.Appointment{})

	uc := newReserveUC(repo)
	_, err := uc.Execute(context.Background(), fxInput("08:00"))
	assertRejected(t, err, domain.RejectOutsideHours)
}

func TestReserveTooSoonSameDay(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(fxService(), nil)
	expectDay(repo, fxConfig(), []models.Appointment{})

	uc := newReserveUC(repo)
	// son las 09:00 del mismo día, antelación mínima 60': 09:30 cae adentro
	uc.now = func(string) time.Time {
		return time.Date(2024, 12, 23, 9, 0, 0, 0, time.UTC)
	}
	_, err := uc.Execute(context.Background(), fxInput("09:30"))
	assertRejected(t, err, domain.RejectTooSoon)
}

func TestReserveSameDayDisabled(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(fxService(), nil)
	cfg := fxConfig()
	cfg.AllowSameDayBooking = false
	expectDay(repo, cfg, []models.Appointment{})

	uc := newReserveUC(repo)
	uc.now = func(string) time.Time {
		return time.Date(2024, 12, 23, 8, 0, 0, 0, time.UTC)
	}
	_, err := uc.Execute(context.Background(), fxInput("10:00"))
	assertRejected(t, err, domain.RejectSameDayDisabled)
}

func TestReserveDayFullyBooked(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(fxService(), nil)
	cfg := fxConfig()
	cfg.MaxBookingsPerDay = 1
	expectDay(repo, cfg, []models.Appointment{
		{BarberID: fxBarberID, Date: fxDate, StartTime: "09:00", EndTime: "09:30", Status: "booked"},
	})

	uc := newReserveUC(repo)
	_, err := uc.Execute(context.Background(), fxInput("10:00"))
	assertRejected(t, err, domain.RejectDayFull)
}

func TestReserveSlotAlreadyTaken(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(fxService(), nil)
	expectDay(repo, fxConfig(), []models.Appointment{
		{BarberID: fxBarberID, Date: fxDate, StartTime: "10:00", EndTime: "10:30", Status: "confirmed"},
	})

	uc := newReserveUC(repo)
	_, err := uc.Execute(context.Background(), fxInput("10:00"))
	assertRejected(t, err, domain.RejectSlotTaken)
}

// Un inicio libre pero fuera de la grilla publicada no es reservable.
func TestReserveOffGridStart(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(fxService(), nil)
	expectDay(repo, fxConfig(), []models.Appointment{})

	uc := newReserveUC(repo)
	_, err := uc.Execute(context.Background(), fxInput("10:15"))
	assertRejected(t, err, domain.RejectSlotTaken)
}

func TestReserveCommitLosesRace(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetActiveService", mock.Anything, fxServiceID).Return(fxService(), nil)
	expectDay(repo, fxConfig(), []models.Appointment{})
	repo.On("GetOrCreateClient", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Client{ID: 7}, nil)
	repo.On("InsertAppointmentIfSlotFree", mock.Anything, mock.AnythingOfType("*models.Appointment")).
		Return(domain.ErrSlotTaken)

	uc := newReserveUC(repo)
	_, err := uc.Execute(context.Background(), fxInput("10:00"))
	assertRejected(t, err, domain.RejectSlotTaken)
}

// ======================================================
// CARRERA REAL: dos reservas concurrentes, un solo ganador
// ======================================================

// memRepo es un repositorio en memoria con el mismo contrato de commit
// condicional que el de GORM: el insert chequea solapes bajo lock.
type memRepo struct {
	mu    sync.Mutex
	appts []models.Appointment
	next  uint
}

func (r *memRepo) GetBarberByID(_ context.Context, _ uint) (*models.User, error) {
	return fxBarber(), nil
}

func (r *memRepo) GetBarberConfig(_ context.Context, _ uint) (*models.BarberConfig, error) {
	return fxConfig(), nil
}

func (r *memRepo) GetActiveService(_ context.Context, _ uint) (*models.Service, error) {
	return fxService(), nil
}

func (r *memRepo) ListWorkingHours(_ context.Context, _ uint, _ int) ([]models.WorkingHours, error) {
	return fxRules(), nil
}

func (r *memRepo) GetSpecialDay(_ context.Context, _ uint, _ string) (*models.SpecialDay, error) {
	return nil, nil
}

func (r *memRepo) GetOrCreateClient(_ context.Context, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 7, Name: name, Phone: phone, Email: email}, nil
}

func (r *memRepo) ListNonCancelledAppointments(_ context.Context, _ uint, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Appointment, 0, len(r.appts))
	for _, ap := range r.appts {
		if ap.Date == date && ap.Status != "cancelled" {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memRepo) InsertAppointmentIfSlotFree(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.appts {
		if other.Date != ap.Date || other.Status == "cancelled" {
			continue
		}
		if ap.StartTime < other.EndTime && other.StartTime < ap.EndTime {
			return domain.ErrSlotTaken
		}
	}
	r.next++
	ap.ID = r.next
	r.appts = append(r.appts, *ap)
	return nil
}

func (r *memRepo) GetByConfirmationCode(_ context.Context, _ string) (*models.Appointment, error) {
	return nil, nil
}

func (r *memRepo) GetAppointmentForBarber(_ context.Context, _, _ uint) (*models.Appointment, error) {
	return nil, nil
}

func (r *memRepo) UpdateAppointment(_ context.Context, _ *models.Appointment) error {
	return nil
}

func (r *memRepo) ListAppointmentsForPeriod(_ context.Context, _ uint, _, _ string) ([]models.Appointment, error) {
	return nil, nil
}

var _ domain.Repository = (*memRepo)(nil)

func TestReserveConcurrentSameSlot(t *testing.T) {
	repo := &memRepo{}
	uc := newReserveUC(repo)

	const workers = 2
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), fxInput("10:00"))
		}(i)
	}
	wg.Wait()

	oks, taken := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			oks++
		case httperr.IsBusiness(err, domain.RejectSlotTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, oks, "exactamente una reserva debe ganar")
	assert.Equal(t, 1, taken, "la otra debe perder con SLOT_NO_LONGER_AVAILABLE")

	list, _ := repo.ListNonCancelledAppointments(context.Background(), fxBarberID, fxDate)
	require.Len(t, list, 1)
	assert.Equal(t, "10:00", list[0].StartTime)
}
