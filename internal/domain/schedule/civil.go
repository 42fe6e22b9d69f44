package schedule

import (
	"fmt"
	"time"
)

// Date es una fecha civil sin zona horaria. El día de semana se deriva de
// los componentes (año, mes, día) con el algoritmo de Sakamoto; nunca de un
// time.Time, que arrastra la zona default del proceso.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate acepta exactamente "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	var d Date
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return d, fmt.Errorf("invalid date %q", s)
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return d, fmt.Errorf("invalid date %q", s)
		}
	}
	d.Year = atoi4(s[0:4])
	d.Month = atoi2(s[5:7])
	d.Day = atoi2(s[8:10])

	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > daysInMonth(d.Year, d.Month) {
		return d, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}

func atoi4(s string) int {
	return int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
}

func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// DaysInMonth para el gregoriano proléptico.
func DaysInMonth(y, m int) int {
	return daysInMonth(y, m)
}

func daysInMonth(y, m int) int {
	switch m {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if isLeap(y) {
			return 29
		}
		return 28
	}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) Equal(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// Weekday devuelve 0=domingo ... 6=sábado (Sakamoto, gregoriano proléptico).
func (d Date) Weekday() int {
	t := []int{0, 3, 2, 5, 0, 3, 5, 1, 4, 6, 2, 4}
	y := d.Year
	if d.Month < 3 {
		y--
	}
	return (y + y/4 - y/100 + y/400 + t[d.Month-1] + d.Day) % 7
}

// DateOf proyecta un instante a fecha civil en su propia location.
// Se usa en el borde para derivar "hoy" del reloj inyectado.
func DateOf(t time.Time) Date {
	y, m, day := t.Date()
	return Date{Year: y, Month: int(m), Day: day}
}

// MinuteOf devuelve el minuto del día del instante, en su location.
func MinuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
