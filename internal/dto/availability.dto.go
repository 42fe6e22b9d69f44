package dto

// TimeSlotDTO mantiene el vocabulario histórico del formulario público.
type TimeSlotDTO struct {
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
}

type AvailabilityDTO struct {
	Date    string        `json:"date"`
	Slots   []TimeSlotDTO `json:"slots"`
	Message string        `json:"message,omitempty"`
}
