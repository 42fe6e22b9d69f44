package booking

import (
	"context"
	"time"

	"github.com/alexisallendez04/appBarberos-sub001/internal/audit"
	domain "github.com/alexisallendez04/appBarberos-sub001/internal/domain/appointment"
	"github.com/alexisallendez04/appBarberos-sub001/internal/domain/schedule"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
	"github.com/alexisallendez04/appBarberos-sub001/internal/infra/cache"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
	"github.com/alexisallendez04/appBarberos-sub001/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ReserveInput struct {
	BarberID  uint
	ServiceID uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM, tiene que coincidir exacto con la grilla

	ClientName  string
	ClientPhone string
	ClientEmail string
	Notes       string
}

type ReserveOutput struct {
	AppointmentID    uint    `json:"appointment_id"`
	ConfirmationCode string  `json:"confirmation_code"`
	Date             string  `json:"date"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	FinalPrice       float64 `json:"final_price"`
}

// ======================================================
// USE CASE
// ======================================================

// Reserve re-deriva la disponibilidad del día y solo acepta un inicio que
// coincida exacto con un turno publicado. El commit es condicional: la
// transacción re-chequea solapes y el índice único es el respaldo, así dos
// reservas concurrentes para el mismo horario terminan una aceptada y una
// rechazada con SLOT_NO_LONGER_AVAILABLE.
type Reserve struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher

	now func(tz string) time.Time
}

func NewReserve(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	auditDisp *audit.Dispatcher,
) *Reserve {
	return &Reserve{
		repo:  repo,
		cache: c,
		audit: auditDisp,
		now:   timezone.NowIn,
	}
}

func (uc *Reserve) Execute(
	ctx context.Context,
	in ReserveInput,
) (*ReserveOutput, error) {

	// --------------------------------------------------
	// 1. Entrada: fecha y hora bien formadas, servicio válido
	// --------------------------------------------------
	date, err := schedule.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	startMin, err := schedule.ParseClock(in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	service, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil || service == nil || service.BarberID != in.BarberID || !service.Active {
		return nil, httperr.ErrBusiness(domain.RejectInvalidService)
	}

	// --------------------------------------------------
	// 2. Re-derivar la grilla con filas frescas (sin cache)
	// --------------------------------------------------
	day, err := loadDayContext(ctx, uc.repo, in.BarberID, date)
	if err != nil {
		return nil, err
	}

	now := uc.now(day.barber.Timezone)

	result, err := schedule.ComputeSlots(schedule.Input{
		Date:               date,
		ServiceDurationMin: service.DurationMin,
		Rules:              day.rules,
		Override:           day.override,
		Config:             day.scheduleConfig(),
		Busy:               day.busy,
		Now:                now,
	})
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_schedule_data")
	}

	if err := classifyRequest(result, startMin, service.DurationMin, date, now, day); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Commit condicional
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(ctx, in.ClientName, in.ClientPhone, in.ClientEmail)
	if err != nil {
		return nil, err
	}

	duration := service.DurationMin
	if duration < 1 {
		duration = 1
	}

	ap := &models.Appointment{
		BarberID:         in.BarberID,
		ClientID:         client.ID,
		ServiceID:        service.ID,
		Date:             date.String(),
		StartTime:        schedule.FormatClock(startMin),
		EndTime:          schedule.FormatClock(startMin + duration),
		Status:           string(domain.InitialStatus()),
		FinalPrice:       service.Price,
		ConfirmationCode: NewConfirmationCode(),
		Notes:            in.Notes,
	}

	if err := uc.repo.InsertAppointmentIfSlotFree(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.BarberID, date.String())

	uc.audit.Dispatch(audit.Event{
		BarberID: &in.BarberID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &ReserveOutput{
		AppointmentID:    ap.ID,
		ConfirmationCode: ap.ConfirmationCode,
		Date:             ap.Date,
		StartTime:        ap.StartTime,
		EndTime:          ap.EndTime,
		FinalPrice:       ap.FinalPrice,
	}, nil
}

// classifyRequest traduce "el inicio pedido no está en la grilla" al motivo
// más específico posible para la UI.
func classifyRequest(
	result schedule.Result,
	startMin int,
	durationMin int,
	date schedule.Date,
	now time.Time,
	day *dayContext,
) error {

	for _, s := range result.Slots {
		if s.Start == startMin {
			return nil
		}
	}

	switch result.Reason {
	case schedule.ReasonNotWorkingDay:
		return httperr.ErrBusiness(domain.RejectOutsideHours)
	case schedule.ReasonSpecialDay:
		return httperr.ErrBusiness(domain.RejectSpecialDay)
	case schedule.ReasonFullyBooked:
		return httperr.ErrBusiness(domain.RejectDayFull)
	case schedule.ReasonSameDayDisabled:
		return httperr.ErrBusiness(domain.RejectSameDayDisabled)
	}

	// La grilla existe pero el inicio pedido no figura en ella. Primero lo
	// estructural (fuera de ventana), después la antelación; todo lo demás
	// es un horario que ya no está.
	if durationMin < 1 {
		durationMin = 1
	}
	cand := schedule.Interval{Start: startMin, End: startMin + durationMin}

	windows, err := schedule.EffectiveWindows(schedule.Input{
		Rules:    day.rules,
		Override: day.override,
	})
	if err == nil {
		inside := false
		for _, w := range windows {
			if cand.Start >= w.Start && cand.End <= w.End {
				inside = true
				break
			}
		}
		if !inside {
			return httperr.ErrBusiness(domain.RejectOutsideHours)
		}
	}

	if date.Equal(schedule.DateOf(now)) &&
		startMin < schedule.MinuteOf(now)+day.config.AdvanceBookingMinutes {
		return httperr.ErrBusiness(domain.RejectTooSoon)
	}

	return domain.ErrSlotTaken
}
