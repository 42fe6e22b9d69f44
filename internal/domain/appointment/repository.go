package appointment

import (
	"context"

	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
)

// Repository es el colaborador de persistencia del core. Fechas como
// "YYYY-MM-DD"; los métodos de lectura devuelven filas crudas, el cálculo
// vive en el dominio.
type Repository interface {
	// -------- Barber / config --------
	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetBarberConfig(
		ctx context.Context,
		barberID uint,
	) (*models.BarberConfig, error)

	// -------- Service --------
	GetActiveService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Schedule rows --------
	ListWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday int,
	) ([]models.WorkingHours, error)

	GetSpecialDay(
		ctx context.Context,
		barberID uint,
		date string,
	) (*models.SpecialDay, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// ListNonCancelledAppointments devuelve los turnos que ocupan agenda
	// ese día, ordenados por hora de inicio.
	ListNonCancelledAppointments(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Appointment, error)

	// InsertAppointmentIfSlotFree es el commit atómico: re-chequea solapes
	// y escribe dentro de la misma transacción. Si otro turno ganó la
	// carrera devuelve ErrSlotTaken.
	InsertAppointmentIfSlotFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetByConfirmationCode(
		ctx context.Context,
		code string,
	) (*models.Appointment, error)

	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listings --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		fromDate string,
		toDate string,
	) ([]models.Appointment, error)
}
