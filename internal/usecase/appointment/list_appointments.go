package appointment

import (
	"context"
	"fmt"

	domain "github.com/alexisallendez04/appBarberos-sub001/internal/domain/appointment"
	"github.com/alexisallendez04/appBarberos-sub001/internal/domain/schedule"
	"github.com/alexisallendez04/appBarberos-sub001/internal/dto"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// ByDate lista la agenda del barbero para un día.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	barberID uint,
	dateStr string,
) ([]dto.AppointmentListDTO, error) {

	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	return uc.list(ctx, barberID, date.String(), date.String())
}

// ByMonth lista el mes completo para la vista calendario.
func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 2000 || year > 2200 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	from := schedule.Date{Year: year, Month: month, Day: 1}
	to := schedule.Date{Year: year, Month: month, Day: schedule.DaysInMonth(year, month)}

	return uc.list(ctx, barberID, from.String(), to.String())
}

func (uc *ListAppointments) list(
	ctx context.Context,
	barberID uint,
	fromDate string,
	toDate string,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, barberID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			Date:        ap.Date,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
			FinalPrice:  ap.FinalPrice,
		})
	}

	return out, nil
}
