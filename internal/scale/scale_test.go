package scale

import (
	"math"
	"strings"
	"testing"
	"time"

	"trendchart/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func plotted(name string, days []int, values []float64) models.PlottedSeries {
	s := models.PlottedSeries{Name: name}
	for i, d := range days {
		s.Points = append(s.Points, models.PlottedPoint{Date: day(d), Value: values[i], Label: name, Valid: true})
	}
	return s
}

func TestComputeUsesFirstSeriesOnly(t *testing.T) {
	filtered := []models.PlottedSeries{
		plotted("A", []int{5, 6, 7}, []float64{10, 20, 30}),
		plotted("B", []int{1, 6, 20}, []float64{5, 500, 50}),
	}

	sc := Compute(filtered, 600, 400, 50)

	if !sc.X.Domain[0].Equal(day(5)) || !sc.X.Domain[1].Equal(day(7)) {
		t.Errorf("Expected x-domain [Jan 5, Jan 7], got %v", sc.X.Domain)
	}
	if sc.Y.Domain != [2]float64{0, 30} {
		t.Errorf("Expected y-domain [0 30], got %v", sc.Y.Domain)
	}
	if sc.X.Range != [2]float64{0, 550} {
		t.Errorf("Expected x-range [0 550], got %v", sc.X.Range)
	}
	if sc.Y.Range != [2]float64{350, 0} {
		t.Errorf("Expected y-range [350 0], got %v", sc.Y.Range)
	}

	// Points of B outside A's extent land off the plotting area.
	if x := sc.X.Map(day(20)); x <= 550 {
		t.Errorf("Expected B's last point beyond the x-range, got %v", x)
	}
	if y := sc.Y.Map(500); y >= 0 {
		t.Errorf("Expected B's peak above the plotting area, got %v", y)
	}
}

func TestComputeIgnoresInvalidDatesInExtent(t *testing.T) {
	s := plotted("A", []int{3, 9}, []float64{1, 2})
	s.Points = append(s.Points, models.PlottedPoint{Value: 3, Label: "A"})

	sc := Compute([]models.PlottedSeries{s}, 600, 400, 50)
	if !sc.X.Domain[0].Equal(day(3)) || !sc.X.Domain[1].Equal(day(9)) {
		t.Errorf("Expected x-domain [Jan 3, Jan 9], got %v", sc.X.Domain)
	}
	if sc.Y.Domain[1] != 3 {
		t.Errorf("Expected y max 3, got %v", sc.Y.Domain[1])
	}
}

func TestComputeEmpty(t *testing.T) {
	sc := Compute(nil, 600, 400, 50)
	if got := sc.X.Map(day(1)); got != 275 {
		t.Errorf("Expected degenerate x-scale to map to the middle (275), got %v", got)
	}
	if got := sc.Y.Map(10); got != 175 {
		t.Errorf("Expected degenerate y-scale to map to the middle (175), got %v", got)
	}
}

func TestLinearMap(t *testing.T) {
	s := Linear{Domain: [2]float64{0, 100}, Range: [2]float64{300, 0}}
	tests := []struct {
		in, want float64
	}{
		{0, 300},
		{50, 150},
		{100, 0},
		{200, -300},
	}
	for _, tt := range tests {
		if got := s.Map(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTimeMap(t *testing.T) {
	s := Time{Domain: [2]time.Time{day(1), day(11)}, Range: [2]float64{0, 500}}
	if got := s.Map(day(6)); math.Abs(got-250) > 1e-9 {
		t.Errorf("Expected midpoint 250, got %v", got)
	}
}

func TestLinearTicks(t *testing.T) {
	tests := []struct {
		name   string
		domain [2]float64
		count  int
		want   []float64
	}{
		{"ten ticks", [2]float64{0, 100}, 10, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}},
		{"fractional", [2]float64{0, 1}, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"step of five", [2]float64{0, 50}, 10, []float64{0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50}},
		{"step of two", [2]float64{0, 30}, 10, []float64{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30}},
		{"suppressed", [2]float64{0, 100}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Linear{Domain: tt.domain}.Ticks(tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("Tick %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestTimeTicksDaily(t *testing.T) {
	s := Time{Domain: [2]time.Time{day(1), day(3)}}
	ticks := s.Ticks(10)
	if len(ticks) == 0 {
		t.Fatal("Expected time ticks")
	}
	if !ticks[0].At.Equal(day(1)) {
		t.Errorf("Expected first tick at Jan 1, got %v", ticks[0].At)
	}
	if !ticks[len(ticks)-1].At.Equal(day(3)) {
		t.Errorf("Expected last tick at Jan 3, got %v", ticks[len(ticks)-1].At)
	}
	for _, tk := range ticks {
		if tk.At.Before(day(1)) || tk.At.After(day(3)) {
			t.Errorf("Tick %v outside domain", tk.At)
		}
		if tk.Label == "" {
			t.Errorf("Tick %v has no label", tk.At)
		}
	}
}

func TestTimeTicksHourly(t *testing.T) {
	base := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Time{Domain: [2]time.Time{base, base.Add(10 * time.Hour)}}
	ticks := s.Ticks(10)
	if len(ticks) != 11 {
		t.Fatalf("Expected 11 hourly ticks, got %d", len(ticks))
	}
	if ticks[1].Label != "01 AM" {
		t.Errorf("Expected label '01 AM', got %q", ticks[1].Label)
	}
	if ticks[0].Label != "1900" {
		t.Errorf("Expected first label '1900', got %q", ticks[0].Label)
	}
}

func TestTimeTicksWeekly(t *testing.T) {
	// Monday Jan 1 2024 to Monday Mar 4 2024
	s := Time{Domain: [2]time.Time{day(1), day(1).AddDate(0, 0, 63)}}
	ticks := s.Ticks(10)
	if len(ticks) < 2 {
		t.Fatalf("Expected weekly ticks, got %d", len(ticks))
	}
	want := map[string]bool{"2024": true, "Jan 08": true, "Jan 15": true}
	for _, tk := range ticks {
		if tk.At.Weekday() != time.Monday {
			t.Errorf("Expected tick on a Monday, got %v", tk.At)
		}
		if strings.HasPrefix(tk.Label, "Mon ") {
			t.Errorf("Expected month-day label for week tick, got %q", tk.Label)
		}
		delete(want, tk.Label)
	}
	if len(want) != 0 {
		t.Errorf("Missing labels %v in %+v", want, ticks)
	}
}

func TestFormatTickDays(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), "Jan 08"},
		{time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), "Tue 09"},
		{time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), "Sun 14"},
		{time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "February"},
	}
	for _, tt := range tests {
		if got := formatTick(tt.at); got != tt.want {
			t.Errorf("formatTick(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestPaletteCycles(t *testing.T) {
	if Category10.Color(0) != "#1f77b4" {
		t.Errorf("Unexpected first color %s", Category10.Color(0))
	}
	if Category10.Color(10) != Category10.Color(0) {
		t.Error("Expected palette to cycle after 10 colors")
	}
	if (Palette{}).Color(3) != "" {
		t.Error("Expected empty palette to yield no color")
	}
}
