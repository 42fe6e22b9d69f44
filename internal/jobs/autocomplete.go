package jobs

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/alexisallendez04/appBarberos-sub001/internal/domain/appointment"
	"github.com/alexisallendez04/appBarberos-sub001/internal/domain/schedule"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
	"github.com/alexisallendez04/appBarberos-sub001/internal/timezone"
)

// AutoComplete barre turnos cuyo horario ya pasó y los marca completados.
// Corre fuera del core de reservas; respeta la misma invariante de
// disyunción porque solo transiciona estados, nunca mueve intervalos.
type AutoComplete struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewAutoComplete(db *gorm.DB, log zerolog.Logger) *AutoComplete {
	return &AutoComplete{
		db:  db,
		log: log.With().Str("component", "autocomplete").Logger(),
	}
}

// Start registra el barrido en un cron propio y lo arranca. Devuelve el
// runner para que main pueda frenarlo en el shutdown.
func (j *AutoComplete) Start(spec string) (*cron.Cron, error) {
	runner := cron.New()
	if _, err := runner.AddFunc(spec, j.Run); err != nil {
		return nil, err
	}
	runner.Start()
	return runner, nil
}

func (j *AutoComplete) Run() {
	now := timezone.Now()
	today := schedule.DateOf(now).String()
	clock := schedule.FormatClock(schedule.MinuteOf(now))

	res := j.db.Model(&models.Appointment{}).
		Where(
			"status IN ? AND (date < ? OR (date = ? AND end_time <= ?))",
			[]string{
				string(domain.StatusBooked),
				string(domain.StatusConfirmed),
				string(domain.StatusInProgress),
			},
			today, today, clock,
		).
		Updates(map[string]any{
			"status":       string(domain.StatusCompleted),
			"completed_at": now,
		})

	if res.Error != nil {
		j.log.Error().Err(res.Error).Msg("sweep failed")
		return
	}
	if res.RowsAffected > 0 {
		j.log.Info().Int64("completed", res.RowsAffected).Msg("past appointments auto-completed")
	}
}
