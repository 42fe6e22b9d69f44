package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/alexisallendez04/appBarberos-sub001/internal/config"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		// necesario para mapear el duplicate key del índice único de
		// turnos a un rechazo de negocio
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.BarberConfig{},
		&models.Service{},
		&models.WorkingHours{},
		&models.SpecialDay{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// Respaldo del commit condicional: dos turnos no cancelados del mismo
	// barbero nunca pueden arrancar a la misma hora el mismo día.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_appt_barber_date_start
        ON appointments (barber_id, date, start_time)
        WHERE status <> 'cancelled'
    `)

	return db
}
