package booking

import (
	"context"
	"time"

	domain "github.com/alexisallendez04/appBarberos-sub001/internal/domain/appointment"
	"github.com/alexisallendez04/appBarberos-sub001/internal/domain/schedule"
	"github.com/alexisallendez04/appBarberos-sub001/internal/dto"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
	"github.com/alexisallendez04/appBarberos-sub001/internal/infra/cache"
	"github.com/alexisallendez04/appBarberos-sub001/internal/timezone"
)

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      string // YYYY-MM-DD
}

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache

	// now se inyecta para poder fijar el reloj en los tests.
	now func(tz string) time.Time
}

func NewGetAvailability(repo domain.Repository, c *cache.AvailabilityCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: c, now: timezone.NowIn}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*dto.AvailabilityDTO, error) {

	date, err := schedule.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	service, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil || service == nil || service.BarberID != in.BarberID {
		return nil, httperr.ErrBusiness(domain.RejectInvalidService)
	}

	if cached, ok := uc.cache.Get(ctx, in.BarberID, date.String(), in.ServiceID); ok {
		return cached, nil
	}

	day, err := loadDayContext(ctx, uc.repo, in.BarberID, date)
	if err != nil {
		return nil, err
	}

	result, err := schedule.ComputeSlots(schedule.Input{
		Date:               date,
		ServiceDurationMin: service.DurationMin,
		Rules:              day.rules,
		Override:           day.override,
		Config:             day.scheduleConfig(),
		Busy:               day.busy,
		Now:                uc.now(day.barber.Timezone),
	})
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_schedule_data")
	}

	out := &dto.AvailabilityDTO{
		Date:    date.String(),
		Slots:   make([]dto.TimeSlotDTO, 0, len(result.Slots)),
		Message: result.Reason.Message(),
	}
	for _, s := range result.Slots {
		out.Slots = append(out.Slots, dto.TimeSlotDTO{
			HoraInicio: schedule.FormatClock(s.Start),
			HoraFin:    schedule.FormatClock(s.End),
		})
	}

	uc.cache.Set(ctx, in.BarberID, date.String(), in.ServiceID, out)

	return out, nil
}
