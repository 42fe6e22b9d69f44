package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func hm(t *testing.T, s string) int {
	t.Helper()
	v, err := ParseClock(s)
	assert.NoError(t, err)
	return v
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	assert.NoError(t, err)
	return d
}

// farPast: cualquier instante muy anterior a las fechas de los tests, para
// que el filtro de antelación no entre en juego.
var farPast = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func mondayInput(t *testing.T) Input {
	return Input{
		Date:               mustDate(t, "2024-12-23"), // lunes
		ServiceDurationMin: 30,
		Rules: []WorkingRule{
			{StartTime: "09:00", EndTime: "18:00"},
		},
		Config: Config{
			BufferMinutes:         0,
			AdvanceBookingMinutes: 1440,
			MaxBookingsPerDay:     20,
			AllowSameDayBooking:   true,
		},
		Now: farPast,
	}
}

func slotStarts(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, FormatClock(s.Start))
	}
	return out
}

func TestComputeSlots_BasicGrid(t *testing.T) {
	res, err := ComputeSlots(mondayInput(t))
	assert.NoError(t, err)
	assert.Equal(t, ReasonOK, res.Reason)

	// 09:00 a 17:30, cada 30
	assert.Len(t, res.Slots, 18)
	assert.Equal(t, Slot{Start: hm(t, "09:00"), End: hm(t, "09:30")}, res.Slots[0])
	assert.Equal(t, Slot{Start: hm(t, "17:30"), End: hm(t, "18:00")}, res.Slots[len(res.Slots)-1])
}

func TestComputeSlots_BufferWalk(t *testing.T) {
	in := mondayInput(t)
	in.Config.BufferMinutes = 5

	res, err := ComputeSlots(in)
	assert.NoError(t, err)

	// paso = 30 + 5: 09:00-09:30, 09:35-10:05, ...
	assert.Equal(t, Slot{Start: hm(t, "09:00"), End: hm(t, "09:30")}, res.Slots[0])
	assert.Equal(t, Slot{Start: hm(t, "09:35"), End: hm(t, "10:05")}, res.Slots[1])

	last := res.Slots[len(res.Slots)-1]
	assert.LessOrEqual(t, last.End, hm(t, "18:00"))
	assert.Equal(t, Slot{Start: hm(t, "17:10"), End: hm(t, "17:40")}, last)
}

func TestComputeSlots_BreakSubtraction(t *testing.T) {
	in := mondayInput(t)
	in.Rules = []WorkingRule{
		{StartTime: "09:00", EndTime: "18:00", BreakStart: "13:00", BreakEnd: "14:00"},
	}

	res, err := ComputeSlots(in)
	assert.NoError(t, err)

	starts := slotStarts(res.Slots)
	assert.Contains(t, starts, "12:30") // termina justo al empezar la pausa
	assert.Contains(t, starts, "14:00") // arranca justo al terminar

	brk := Interval{Start: hm(t, "13:00"), End: hm(t, "14:00")}
	for _, s := range res.Slots {
		assert.False(t, Interval(s).Overlaps(brk), "slot %s pisa la pausa", FormatClock(s.Start))
	}
}

func TestComputeSlots_AllDaySpecial(t *testing.T) {
	in := mondayInput(t)
	in.Override = &Override{AllDay: true}

	res, err := ComputeSlots(in)
	assert.NoError(t, err)
	assert.Empty(t, res.Slots)
	assert.Equal(t, ReasonSpecialDay, res.Reason)
}

func TestComputeSlots_TimedSpecialReplacesWindow(t *testing.T) {
	in := mondayInput(t)
	in.Override = &Override{AllDay: false, StartTime: "10:00", EndTime: "12:00"}

	res, err := ComputeSlots(in)
	assert.NoError(t, err)
	assert.Equal(t, ReasonOK, res.Reason)

	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, slotStarts(res.Slots))
}

func TestComputeSlots_NotWorkingDay(t *testing.T) {
	in := mondayInput(t)
	in.Rules = nil

	res, err := ComputeSlots(in)
	assert.NoError(t, err)
	assert.Empty(t, res.Slots)
	assert.Equal(t, ReasonNotWorkingDay, res.Reason)
}

func TestComputeSlots_AdvanceBoundary(t *testing.T) {
	in := mondayInput(t)
	in.Config.AdvanceBookingMinutes = 60
	in.Now = time.Date(2024, 12, 23, 10, 0, 0, 0, time.UTC) // mismo día

	res, err := ComputeSlots(in)
	assert.NoError(t, err)

	starts := slotStarts(res.Slots)
	assert.NotContains(t, starts, "10:30")
	assert.Contains(t, starts, "11:00") // el límite entra
	assert.Equal(t, "11:00", starts[0])
}

func TestComputeSlots_SameDayDisabled(t *testing.T) {
	in := mondayInput(t)
	in.Config.AllowSameDayBooking = false
	in.Now = time.Date(2024, 12, 23, 7, 0, 0, 0, time.UTC)

	res, err := ComputeSlots(in)
	assert.NoError(t, err)
	assert.Empty(t, res.Slots)
	assert.Equal(t, ReasonSameDayDisabled, res.Reason)
}

func TestComputeSlots_FullyBookedShortCircuit(t *testing.T) {
	in := mondayInput(t)
	in.Config.MaxBookingsPerDay = 2
	in.Busy = []Busy{
		{StartTime: "09:00", EndTime: "09:30"},
		{StartTime: "10:00", EndTime: "10:30"},
	}

	res, err := ComputeSlots(in)
	assert.NoError(t, err)
	assert.Empty(t, res.Slots)
	assert.Equal(t, ReasonFullyBooked, res.Reason)
}

func TestComputeSlots_SkipsBookedOverlaps(t *testing.T) {
	in := mondayInput(t)
	in.Busy = []Busy{
		{StartTime: "10:00", EndTime: "10:30"},
		{StartTime: "11:15", EndTime: "11:45"},
	}

	res, err := ComputeSlots(in)
	assert.NoError(t, err)

	starts := slotStarts(res.Slots)
	assert.NotContains(t, starts, "10:00")
	// 11:00-11:30 y 11:30-12:00 pisan el turno de 11:15-11:45
	assert.NotContains(t, starts, "11:00")
	assert.NotContains(t, starts, "11:30")
	// tocar extremos no molesta
	assert.Contains(t, starts, "09:30")
	assert.Contains(t, starts, "10:30")
}

func TestComputeSlots_MultipleRulesUnion(t *testing.T) {
	in := mondayInput(t)
	in.Rules = []WorkingRule{
		{StartTime: "14:00", EndTime: "16:00"},
		{StartTime: "09:00", EndTime: "11:00"},
	}

	res, err := ComputeSlots(in)
	assert.NoError(t, err)

	assert.Equal(t,
		[]string{"09:00", "09:30", "10:00", "10:30", "14:00", "14:30", "15:00", "15:30"},
		slotStarts(res.Slots),
	)
}

func TestComputeSlots_Deterministic(t *testing.T) {
	in := mondayInput(t)
	in.Busy = []Busy{{StartTime: "10:00", EndTime: "10:30"}}

	a, err := ComputeSlots(in)
	assert.NoError(t, err)
	b, err := ComputeSlots(in)
	assert.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestComputeSlots_SlotsWithinWindows(t *testing.T) {
	in := mondayInput(t)
	in.Rules = []WorkingRule{
		{StartTime: "09:00", EndTime: "18:00", BreakStart: "13:00", BreakEnd: "14:00"},
	}
	in.Config.BufferMinutes = 5

	windows, err := EffectiveWindows(in)
	assert.NoError(t, err)

	res, err := ComputeSlots(in)
	assert.NoError(t, err)

	for _, s := range res.Slots {
		inside := false
		for _, w := range windows {
			if s.Start >= w.Start && s.End <= w.End {
				inside = true
				break
			}
		}
		assert.True(t, inside, "slot %s fuera de ventana", FormatClock(s.Start))
	}
}

func TestComputeSlots_MalformedInput(t *testing.T) {
	in := mondayInput(t)
	in.Rules = []WorkingRule{{StartTime: "9am", EndTime: "18:00"}}
	_, err := ComputeSlots(in)
	assert.Error(t, err)

	in = mondayInput(t)
	in.Rules = []WorkingRule{{StartTime: "18:00", EndTime: "09:00"}}
	_, err = ComputeSlots(in)
	assert.Error(t, err)

	in = mondayInput(t)
	in.Busy = []Busy{{StartTime: "xx:yy", EndTime: "10:00"}}
	_, err = ComputeSlots(in)
	assert.Error(t, err)
}

func TestComputeSlots_ZeroDurationClampsToOne(t *testing.T) {
	in := mondayInput(t)
	in.ServiceDurationMin = 0
	in.Rules = []WorkingRule{{StartTime: "09:00", EndTime: "09:03"}}

	res, err := ComputeSlots(in)
	assert.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:01", "09:02"}, slotStarts(res.Slots))
}
