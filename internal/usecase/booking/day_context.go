package booking

import (
	"context"

	domain "github.com/alexisallendez04/appBarberos-sub001/internal/domain/appointment"
	"github.com/alexisallendez04/appBarberos-sub001/internal/domain/schedule"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
)

// dayContext junta las filas crudas que el calculador necesita para un
// (barbero, fecha). La foto de turnos ocupados es la del momento de la
// lectura; el commit vuelve a chequear bajo transacción.
type dayContext struct {
	barber   *models.User
	config   *models.BarberConfig
	rules    []schedule.WorkingRule
	override *schedule.Override
	busy     []schedule.Busy
}

func loadDayContext(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
	date schedule.Date,
) (*dayContext, error) {

	barber, err := repo.GetBarberByID(ctx, barberID)
	if err != nil {
		return nil, err
	}

	cfg, err := repo.GetBarberConfig(ctx, barberID)
	if err != nil {
		return nil, err
	}

	rows, err := repo.ListWorkingHours(ctx, barberID, date.Weekday())
	if err != nil {
		return nil, err
	}

	rules := make([]schedule.WorkingRule, 0, len(rows))
	for _, wh := range rows {
		rules = append(rules, schedule.WorkingRule{
			StartTime:  wh.StartTime,
			EndTime:    wh.EndTime,
			BreakStart: wh.BreakStart,
			BreakEnd:   wh.BreakEnd,
		})
	}

	special, err := repo.GetSpecialDay(ctx, barberID, date.String())
	if err != nil {
		return nil, err
	}

	var override *schedule.Override
	if special != nil {
		override = &schedule.Override{
			AllDay:    special.AllDay,
			StartTime: special.StartTime,
			EndTime:   special.EndTime,
		}
	}

	appointments, err := repo.ListNonCancelledAppointments(ctx, barberID, date.String())
	if err != nil {
		return nil, err
	}

	busy := make([]schedule.Busy, 0, len(appointments))
	for _, ap := range appointments {
		busy = append(busy, schedule.Busy{
			StartTime: ap.StartTime,
			EndTime:   ap.EndTime,
		})
	}

	return &dayContext{
		barber:   barber,
		config:   cfg,
		rules:    rules,
		override: override,
		busy:     busy,
	}, nil
}

func (d *dayContext) scheduleConfig() schedule.Config {
	return schedule.Config{
		BufferMinutes:         d.config.BufferMinutes,
		AdvanceBookingMinutes: d.config.AdvanceBookingMinutes,
		MaxBookingsPerDay:     d.config.MaxBookingsPerDay,
		AllowSameDayBooking:   d.config.AllowSameDayBooking,
	}
}
