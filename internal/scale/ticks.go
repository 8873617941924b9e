package scale

import (
	"math"
	"time"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickStep picks a 1, 2 or 5 times power-of-ten step so that about count
// ticks cover [start, stop]
func tickStep(start, stop float64, count int) float64 {
	raw := math.Abs(stop-start) / float64(count)
	power := math.Floor(math.Log10(raw))
	step := math.Pow(10, power)
	switch ratio := raw / step; {
	case ratio >= e10:
		step *= 10
	case ratio >= e5:
		step *= 5
	case ratio >= e2:
		step *= 2
	}
	return step
}

func niceTicks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	step := tickStep(start, stop, count)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}
	lo := math.Ceil(start / step)
	hi := math.Floor(stop / step)

	ticks := make([]float64, 0, int(hi-lo)+1)
	for i := lo; i <= hi; i++ {
		// Dividing by the inverse step keeps fractional ticks free of float noise.
		v := i * step
		if step < 1 {
			inv := math.Round(1 / step)
			v = i / inv
		}
		ticks = append(ticks, v)
	}
	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// TimeTick is a tick on a time axis with its display label
type TimeTick struct {
	At    time.Time
	Label string
}

type timeInterval struct {
	unit  time.Duration // Used for fixed-length intervals
	days  int           // Calendar days (weeks)
	month int           // Calendar months (quarters)
	years int
	step  time.Duration // Approximate length, used to pick the interval
}

var timeIntervals = []timeInterval{
	{unit: time.Second, step: time.Second},
	{unit: 5 * time.Second, step: 5 * time.Second},
	{unit: 15 * time.Second, step: 15 * time.Second},
	{unit: 30 * time.Second, step: 30 * time.Second},
	{unit: time.Minute, step: time.Minute},
	{unit: 5 * time.Minute, step: 5 * time.Minute},
	{unit: 15 * time.Minute, step: 15 * time.Minute},
	{unit: 30 * time.Minute, step: 30 * time.Minute},
	{unit: time.Hour, step: time.Hour},
	{unit: 3 * time.Hour, step: 3 * time.Hour},
	{unit: 6 * time.Hour, step: 6 * time.Hour},
	{unit: 12 * time.Hour, step: 12 * time.Hour},
	{days: 1, step: 24 * time.Hour},
	{days: 2, step: 48 * time.Hour},
	{days: 7, step: 7 * 24 * time.Hour},
	{month: 1, step: 30 * 24 * time.Hour},
	{month: 3, step: 90 * 24 * time.Hour},
	{years: 1, step: 365 * 24 * time.Hour},
}

func timeTicks(start, stop time.Time, count int) []TimeTick {
	if count <= 0 || start.IsZero() && stop.IsZero() {
		return nil
	}
	if stop.Before(start) {
		start, stop = stop, start
	}
	if start.Equal(stop) {
		return []TimeTick{{At: start, Label: formatTick(start)}}
	}

	target := stop.Sub(start) / time.Duration(count)
	iv := timeIntervals[len(timeIntervals)-1]
	for _, candidate := range timeIntervals {
		if candidate.step >= target {
			iv = candidate
			break
		}
	}
	if iv.years > 0 {
		years := int(math.Ceil(float64(stop.Year()-start.Year()) / float64(count)))
		if years < 1 {
			years = 1
		}
		iv.years = years
	}

	var ticks []TimeTick
	for t := iv.floor(start); !t.After(stop); t = iv.next(t) {
		if t.Before(start) {
			continue
		}
		ticks = append(ticks, TimeTick{At: t, Label: formatTick(t)})
	}
	return ticks
}

func (iv timeInterval) floor(t time.Time) time.Time {
	loc := t.Location()
	switch {
	case iv.years > 0:
		y := t.Year() - t.Year()%iv.years
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	case iv.month > 0:
		m := (int(t.Month())-1)/iv.month*iv.month + 1
		return time.Date(t.Year(), time.Month(m), 1, 0, 0, 0, 0, loc)
	case iv.days == 7:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		offset := (int(d.Weekday()) + 6) % 7 // Weeks start on Monday
		return d.AddDate(0, 0, -offset)
	case iv.days > 0:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		return d.AddDate(0, 0, -((d.Day() - 1) % iv.days))
	default:
		return t.Truncate(iv.unit)
	}
}

func (iv timeInterval) next(t time.Time) time.Time {
	switch {
	case iv.years > 0:
		return t.AddDate(iv.years, 0, 0)
	case iv.month > 0:
		return t.AddDate(0, iv.month, 0)
	case iv.days > 0:
		return t.AddDate(0, 0, iv.days)
	default:
		return t.Add(iv.unit)
	}
}

// weekStart is the weekday week-interval ticks are aligned to
const weekStart = time.Monday

// formatTick labels a tick by its coarsest non-zero calendar component
func formatTick(t time.Time) string {
	switch {
	case t.Nanosecond() != 0:
		return t.Format(".000")
	case t.Second() != 0:
		return t.Format(":05")
	case t.Minute() != 0:
		return t.Format("15:04")
	case t.Hour() != 0:
		return t.Format("03 PM")
	case t.Day() != 1:
		if t.Weekday() != weekStart {
			return t.Format("Mon 02")
		}
		return t.Format("Jan 02")
	case t.Month() != time.January:
		return t.Format("January")
	default:
		return t.Format("2006")
	}
}
