package schedule

import (
	"fmt"
	"sort"
)

// Las horas viajan como "HH:MM" (reloj de pared del barbero) y se operan
// como minutos del día. El core nunca convierte zonas horarias.

// ParseClock convierte "HH:MM" a minutos desde medianoche.
func ParseClock(hm string) (int, error) {
	if len(hm) != 5 || hm[2] != ':' {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	h, m := 0, 0
	for i := 0; i < 2; i++ {
		if hm[i] < '0' || hm[i] > '9' {
			return 0, fmt.Errorf("invalid clock %q", hm)
		}
		h = h*10 + int(hm[i]-'0')
	}
	for i := 3; i < 5; i++ {
		if hm[i] < '0' || hm[i] > '9' {
			return 0, fmt.Errorf("invalid clock %q", hm)
		}
		m = m*10 + int(hm[i]-'0')
	}
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	return h*60 + m, nil
}

// FormatClock es la inversa de ParseClock.
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Interval es [Start, End) en minutos del día.
type Interval struct {
	Start int
	End   int
}

// Overlaps usa semántica semiabierta: tocar extremos no es solape.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

func (i Interval) Empty() bool {
	return i.Start >= i.End
}

// Subtract quita un corte del intervalo y devuelve 0..2 subintervalos.
func (i Interval) Subtract(cut Interval) []Interval {
	if cut.Empty() || !i.Overlaps(cut) {
		return []Interval{i}
	}
	var out []Interval
	if i.Start < cut.Start {
		out = append(out, Interval{Start: i.Start, End: cut.Start})
	}
	if cut.End < i.End {
		out = append(out, Interval{Start: cut.End, End: i.End})
	}
	return out
}

// mergeIntervals ordena y fusiona solapes/adyacencias, para que varias
// reglas activas del mismo día se traten como unión de ventanas.
func mergeIntervals(in []Interval) []Interval {
	if len(in) <= 1 {
		return in
	}
	sorted := make([]Interval, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Start < sorted[b].Start })

	out := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}
