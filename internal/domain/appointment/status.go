package appointment

import "github.com/alexisallendez04/appBarberos-sub001/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked     Status = "booked"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// InitialStatus es el estado con el que nace toda reserva.
func InitialStatus() Status {
	return StatusBooked
}

// IsFinal: los estados finales no admiten más transiciones.
func IsFinal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CountsAsBusy: un turno en estos estados ocupa su intervalo. Sólo la
// cancelación libera el horario.
func CountsAsBusy(s Status) bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusBooked {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanStart(current Status) error {
	if current != StatusBooked && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if IsFinal(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	switch current {
	case StatusBooked, StatusConfirmed, StatusInProgress:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanMarkNoShow(current Status) error {
	if current != StatusBooked && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
