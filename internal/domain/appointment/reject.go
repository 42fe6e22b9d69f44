package appointment

import "github.com/alexisallendez04/appBarberos-sub001/internal/httperr"

// Códigos de rechazo de reserva, visibles para el cliente. La UI tiene que
// poder distinguir "elegí otro horario" de "probá más tarde" y de "ese día
// no se atiende".
const (
	RejectSlotTaken         = "SLOT_NO_LONGER_AVAILABLE"
	RejectOutsideHours      = "OUTSIDE_WORKING_HOURS"
	RejectSpecialDay        = "SPECIAL_DAY_BLOCKED"
	RejectTooSoon           = "TOO_SOON"
	RejectDayFull           = "DAY_FULLY_BOOKED"
	RejectInvalidService    = "INVALID_SERVICE"
	RejectSameDayDisabled   = "SAME_DAY_DISABLED"
	RejectNotFound          = "NOT_FOUND"
	RejectEmailMismatch     = "EMAIL_MISMATCH"
	RejectAlreadyCancelled  = "ALREADY_CANCELLED"
	StorageUnavailable      = "STORAGE_UNAVAILABLE"
)

// ErrSlotTaken es la derrota clásica de la carrera: otro cliente reservó
// el mismo horario entre el chequeo y el insert.
var ErrSlotTaken = httperr.ErrBusiness(RejectSlotTaken)
