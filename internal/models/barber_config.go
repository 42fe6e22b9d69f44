package models

import "time"

// BarberConfig ajusta la grilla de turnos. Una fila por barbero, creada
// con defaults al registrarse.
type BarberConfig struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex" json:"barber_id"`

	SlotIntervalMinutes   int  `gorm:"default:30" json:"slot_interval_minutes"`
	BufferMinutes         int  `gorm:"default:5" json:"buffer_minutes"`
	AdvanceBookingMinutes int  `gorm:"default:1440" json:"advance_booking_minutes"`
	MaxBookingsPerDay     int  `gorm:"default:20" json:"max_bookings_per_day"`
	AllowSameDayBooking   bool `gorm:"default:true" json:"allow_same_day_booking"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func DefaultBarberConfig(barberID uint) BarberConfig {
	return BarberConfig{
		BarberID:              barberID,
		SlotIntervalMinutes:   30,
		BufferMinutes:         5,
		AdvanceBookingMinutes: 1440,
		MaxBookingsPerDay:     20,
		AllowSameDayBooking:   true,
	}
}
