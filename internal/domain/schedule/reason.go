package schedule

// Reason explica un resultado sin turnos. No es un error: la cuenta salió
// bien y el resultado es "no hay disponibilidad".
type Reason string

const (
	ReasonOK              Reason = "ok"
	ReasonNotWorkingDay   Reason = "not_working_day"
	ReasonSpecialDay      Reason = "special_day"
	ReasonFullyBooked     Reason = "fully_booked"
	ReasonSameDayDisabled Reason = "same_day_disabled"
	ReasonNoSlots         Reason = "no_slots"
)

// Message da el texto para la UI pública.
func (r Reason) Message() string {
	switch r {
	case ReasonNotWorkingDay:
		return "El barbero no atiende ese día."
	case ReasonSpecialDay:
		return "Día especial: sin atención."
	case ReasonFullyBooked:
		return "Agenda completa para esa fecha."
	case ReasonSameDayDisabled:
		return "No se aceptan reservas para el mismo día."
	case ReasonNoSlots:
		return "No quedan horarios disponibles."
	default:
		return ""
	}
}
