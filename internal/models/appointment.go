package models

import "time"

// Appointment es el recurso en disputa: dos turnos no cancelados del mismo
// barbero nunca pueden solaparse en la misma fecha. El índice único parcial
// sobre (barber_id, date, start_time) se crea en internal/db como respaldo
// del chequeo transaccional.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"index:idx_appt_barber_date" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Date      string `gorm:"size:10;index:idx_appt_barber_date" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"size:5" json:"start_time"`                      // HH:MM
	EndTime   string `gorm:"size:5" json:"end_time"`

	Status     string  `gorm:"size:20;default:'booked'" json:"status"`
	FinalPrice float64 `json:"final_price"`

	ConfirmationCode string `gorm:"size:12;uniqueIndex" json:"confirmation_code"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
