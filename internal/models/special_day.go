package models

import "time"

const (
	SpecialDayVacation = "vacation"
	SpecialDayHoliday  = "holiday"
	SpecialDaySick     = "sick"
	SpecialDayOther    = "other"
)

// SpecialDay pisa las WorkingHours de una fecha puntual. Si AllDay el
// barbero no atiende; si no, StartTime/EndTime reemplazan la ventana normal.
type SpecialDay struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_special_barber_date" json:"barber_id"`

	Date string `gorm:"size:10;index:idx_special_barber_date" json:"date"` // YYYY-MM-DD
	Kind string `gorm:"size:20;default:'other'" json:"kind"`

	AllDay    bool   `gorm:"default:true" json:"all_day"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
