package schedule

import (
	"fmt"
	"time"
)

// ======================================================
// INPUT
// ======================================================

// WorkingRule es una fila de working_hours ya filtrada por barbero y día
// (solo reglas activas). Varias filas para el mismo día se tratan como
// unión de ventanas.
type WorkingRule struct {
	StartTime  string
	EndTime    string
	BreakStart string
	BreakEnd   string
}

// Override es la fila de special_days de la fecha, si existe. Si AllDay el
// barbero no atiende; si no, StartTime/EndTime reemplazan la ventana normal
// (semántica "replace", no recorte).
type Override struct {
	AllDay    bool
	StartTime string
	EndTime   string
}

// Busy es el intervalo de un turno existente no cancelado.
type Busy struct {
	StartTime string
	EndTime   string
}

// Config son los ajustes del barbero que afectan la grilla. El paso de la
// caminata es duración del servicio + buffer; el intervalo configurado del
// barbero queda en el modelo como dato de presentación.
type Config struct {
	BufferMinutes         int
	AdvanceBookingMinutes int
	MaxBookingsPerDay     int
	AllowSameDayBooking   bool
}

type Input struct {
	Date               Date
	ServiceDurationMin int
	Rules              []WorkingRule
	Override           *Override
	Config             Config
	Busy               []Busy

	// Now es el reloj inyectado por el caller; acá no hay time.Now().
	Now time.Time
}

// ======================================================
// OUTPUT
// ======================================================

// Slot es [Start, End) en minutos del día.
type Slot struct {
	Start int
	End   int
}

type Result struct {
	Slots  []Slot
	Reason Reason
}

// ======================================================
// CALCULATOR
// ======================================================

// ComputeSlots genera la grilla de turnos reservables de un día. Función
// pura de sus entradas: mismos datos y mismo Now dan la misma salida.
func ComputeSlots(in Input) (Result, error) {
	duration := in.ServiceDurationMin
	if duration < 1 {
		duration = 1
	}
	step := duration + in.Config.BufferMinutes
	if step < 1 {
		step = 1
	}

	// 1. Día especial sin atención.
	if in.Override != nil && in.Override.AllDay {
		return Result{Reason: ReasonSpecialDay}, nil
	}

	// 2. Ventana efectiva: el override pisa las reglas semanales.
	windows, err := effectiveWindows(in)
	if err != nil {
		return Result{}, err
	}
	if len(windows) == 0 {
		return Result{Reason: ReasonNotWorkingDay}, nil
	}

	// 3. Agenda completa: corte antes de caminar la grilla.
	if in.Config.MaxBookingsPerDay > 0 && len(in.Busy) >= in.Config.MaxBookingsPerDay {
		return Result{Reason: ReasonFullyBooked}, nil
	}

	busy, err := busyIntervals(in.Busy)
	if err != nil {
		return Result{}, err
	}

	// 4. Reserva para hoy: antelación mínima o bloqueo total.
	sameDay := in.Date.Equal(DateOf(in.Now))
	minStart := -1
	if sameDay {
		if !in.Config.AllowSameDayBooking {
			return Result{Reason: ReasonSameDayDisabled}, nil
		}
		minStart = MinuteOf(in.Now) + in.Config.AdvanceBookingMinutes
	}

	var slots []Slot
	for _, w := range windows {
		for cur := w.Start; cur+duration <= w.End; cur += step {
			cand := Interval{Start: cur, End: cur + duration}

			if sameDay && cand.Start < minStart {
				continue
			}

			conflict := false
			for _, b := range busy {
				if cand.Overlaps(b) {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}

			slots = append(slots, Slot{Start: cand.Start, End: cand.End})
		}
	}

	if len(slots) == 0 {
		return Result{Reason: ReasonNoSlots}, nil
	}
	return Result{Slots: slots, Reason: ReasonOK}, nil
}

// EffectiveWindows arma las ventanas del día ya sin pausas, ordenadas y
// fusionadas. El validador de reservas las usa para distinguir "fuera de
// horario" de "turno tomado".
func EffectiveWindows(in Input) ([]Interval, error) {
	return effectiveWindows(in)
}

func effectiveWindows(in Input) ([]Interval, error) {
	breaks, err := breakIntervals(in.Rules)
	if err != nil {
		return nil, err
	}

	var raw []Interval

	if in.Override != nil {
		w, err := parseWindow(in.Override.StartTime, in.Override.EndTime)
		if err != nil {
			return nil, fmt.Errorf("special day: %w", err)
		}
		raw = append(raw, w)
	} else {
		for _, r := range in.Rules {
			w, err := parseWindow(r.StartTime, r.EndTime)
			if err != nil {
				return nil, fmt.Errorf("working hours: %w", err)
			}
			raw = append(raw, w)
		}
	}

	merged := mergeIntervals(raw)

	var out []Interval
	for _, w := range merged {
		parts := []Interval{w}
		for _, brk := range breaks {
			var next []Interval
			for _, p := range parts {
				next = append(next, p.Subtract(brk)...)
			}
			parts = next
		}
		out = append(out, parts...)
	}
	return out, nil
}

func parseWindow(startHM, endHM string) (Interval, error) {
	start, err := ParseClock(startHM)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(endHM)
	if err != nil {
		return Interval{}, err
	}
	if start >= end {
		return Interval{}, fmt.Errorf("window %s-%s is empty", startHM, endHM)
	}
	return Interval{Start: start, End: end}, nil
}

func breakIntervals(rules []WorkingRule) ([]Interval, error) {
	var out []Interval
	for _, r := range rules {
		if r.BreakStart == "" || r.BreakEnd == "" {
			continue
		}
		brk, err := parseWindow(r.BreakStart, r.BreakEnd)
		if err != nil {
			return nil, fmt.Errorf("break: %w", err)
		}
		out = append(out, brk)
	}
	return out, nil
}

func busyIntervals(busy []Busy) ([]Interval, error) {
	out := make([]Interval, 0, len(busy))
	for _, b := range busy {
		start, err := ParseClock(b.StartTime)
		if err != nil {
			return nil, fmt.Errorf("appointment: %w", err)
		}
		end, err := ParseClock(b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("appointment: %w", err)
		}
		out = append(out, Interval{Start: start, End: end})
	}
	return out, nil
}
