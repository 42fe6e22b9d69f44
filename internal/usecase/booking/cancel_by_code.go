package booking

import (
	"context"
	"strings"
	"time"

	"github.com/alexisallendez04/appBarberos-sub001/internal/audit"
	domain "github.com/alexisallendez04/appBarberos-sub001/internal/domain/appointment"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
	"github.com/alexisallendez04/appBarberos-sub001/internal/infra/cache"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
	"github.com/alexisallendez04/appBarberos-sub001/internal/timezone"
)

// CancelByCode es la auto-cancelación del cliente: código de confirmación
// más el email con el que reservó. Baja lógica, la fila queda.
type CancelByCode struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher

	now func(tz string) time.Time
}

func NewCancelByCode(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	auditDisp *audit.Dispatcher,
) *CancelByCode {
	return &CancelByCode{
		repo:  repo,
		cache: c,
		audit: auditDisp,
		now:   timezone.NowIn,
	}
}

func (uc *CancelByCode) Execute(
	ctx context.Context,
	code string,
	email string,
) (*models.Appointment, error) {

	code = strings.ToUpper(strings.TrimSpace(code))

	ap, err := uc.repo.GetByConfirmationCode(ctx, code)
	if err != nil || ap == nil {
		return nil, httperr.ErrBusiness(domain.RejectNotFound)
	}

	if !strings.EqualFold(strings.TrimSpace(email), ap.Client.Email) {
		return nil, httperr.ErrBusiness(domain.RejectEmailMismatch)
	}

	if domain.Status(ap.Status) == domain.StatusCancelled {
		return nil, httperr.ErrBusiness(domain.RejectAlreadyCancelled)
	}

	barber, err := uc.repo.GetBarberByID(ctx, ap.BarberID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, uc.now(barber.Timezone)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.BarberID, ap.Date)

	uc.audit.Dispatch(audit.Event{
		BarberID: &ap.BarberID,
		Action:   "appointment_cancelled_by_client",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
