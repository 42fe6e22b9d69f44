package appointment

import (
	"context"
	"time"

	"github.com/alexisallendez04/appBarberos-sub001/internal/audit"
	domain "github.com/alexisallendez04/appBarberos-sub001/internal/domain/appointment"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
	"github.com/alexisallendez04/appBarberos-sub001/internal/infra/cache"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
	"github.com/alexisallendez04/appBarberos-sub001/internal/timezone"
)

// Transiciones del lado del barbero: confirmar, cancelar, completar y
// no_show. Todas cargan el turno del propio barbero, aplican la acción de
// dominio y persisten; el turno jamás se borra.

type Transitions struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher

	now func(tz string) time.Time
}

func NewTransitions(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	auditDisp *audit.Dispatcher,
) *Transitions {
	return &Transitions{
		repo:  repo,
		cache: c,
		audit: auditDisp,
		now:   timezone.NowIn,
	}
}

func (uc *Transitions) apply(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
	action string,
	fn func(ap *models.Appointment, now time.Time) error,
) (*models.Appointment, error) {

	barber, err := uc.repo.GetBarberByID(ctx, barberID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := fn(ap, uc.now(barber.Timezone)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: &barberID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func (uc *Transitions) Confirm(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, barberID, appointmentID, "appointment_confirmed",
		func(ap *models.Appointment, _ time.Time) error {
			return domain.Confirm(ap)
		})
}

func (uc *Transitions) Start(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, barberID, appointmentID, "appointment_started",
		func(ap *models.Appointment, _ time.Time) error {
			return domain.Start(ap)
		})
}

func (uc *Transitions) Cancel(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.apply(ctx, barberID, appointmentID, "appointment_cancelled",
		domain.Cancel)
	if err != nil {
		return nil, err
	}

	// el horario vuelve a estar libre
	uc.cache.Invalidate(ctx, barberID, ap.Date)
	return ap, nil
}

func (uc *Transitions) Complete(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, barberID, appointmentID, "appointment_completed",
		domain.Complete)
}

func (uc *Transitions) MarkNoShow(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, barberID, appointmentID, "appointment_no_show",
		func(ap *models.Appointment, _ time.Time) error {
			return domain.MarkNoShow(ap)
		})
}
