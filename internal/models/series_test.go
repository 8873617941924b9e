package models

import (
	"testing"
	"time"
)

func TestParseDocument(t *testing.T) {
	raw := []byte(`{
		"daily": [
			{"name": "Spend", "color": "#111", "values": [{"date": "2024-01-01", "value": 12.5}, {"date": "2024-01-02", "value": "7"}]},
			{"name": "Clicks", "color": "#222", "values": [{"date": "2024-01-01", "value": 1200}]}
		],
		"weekly": []
	}`)

	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	daily := doc.Select(ModeDaily)
	if len(daily) != 2 {
		t.Fatalf("Expected 2 daily series, got %d", len(daily))
	}
	if daily[0].Name != "Spend" || daily[0].Color != "#111" {
		t.Errorf("Unexpected first series: %+v", daily[0])
	}
	if daily[0].Values[1].Value != 7 {
		t.Errorf("Expected string value to decode to 7, got %v", daily[0].Values[1].Value)
	}
	if doc.Select(ModeHourly) != nil {
		t.Error("Expected nil series list for missing mode")
	}

	modes := doc.AvailableModes()
	if len(modes) != 2 || modes[0] != ModeDaily || modes[1] != ModeWeekly {
		t.Errorf("Expected [daily weekly], got %v", modes)
	}
}

func TestParseDocumentRejectsBadValue(t *testing.T) {
	raw := []byte(`{"daily": [{"name": "A", "values": [{"date": "2024-01-01", "value": "abc"}]}]}`)
	if _, err := ParseDocument(raw); err == nil {
		t.Error("Expected error for non-numeric value")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"daily", ModeDaily},
		{"weekly", ModeWeekly},
		{"HOURLY", ModeHourly},
		{"", ModeDaily},
		{"monthly", ModeDaily},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModeParseDate(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		raw    string
		want   time.Time
		wantOK bool
	}{
		{"daily", ModeDaily, "2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"daily invalid", ModeDaily, "05/03/2024", time.Time{}, false},
		{"weekly first week", ModeWeekly, "1", time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"weekly padded", ModeWeekly, "03", time.Date(1900, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"weekly zero", ModeWeekly, "0", time.Date(1899, 12, 25, 0, 0, 0, 0, time.UTC), true},
		{"weekly out of range", ModeWeekly, "54", time.Time{}, false},
		{"hourly", ModeHourly, "13:45:10", time.Date(1900, 1, 1, 13, 45, 10, 0, time.UTC), true},
		{"hourly invalid", ModeHourly, "25:00:00", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.mode.ParseDate(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPrepareLabelsPointsAndKeepsInput(t *testing.T) {
	input := []Series{
		{Name: "A", Color: "#111", Values: []Point{{Date: "2024-01-01", Value: 1}, {Date: "bogus", Value: 2}}},
	}

	prepared := Prepare(input, ModeDaily)
	if len(prepared) != 1 || len(prepared[0].Points) != 2 {
		t.Fatalf("Unexpected prepared shape: %+v", prepared)
	}
	for _, p := range prepared[0].Points {
		if p.Label != "A" {
			t.Errorf("Expected label A, got %q", p.Label)
		}
	}
	if prepared[0].Points[1].Valid {
		t.Error("Expected bogus date to be flagged invalid")
	}
	if CountInvalid(prepared) != 1 {
		t.Errorf("Expected 1 invalid point, got %d", CountInvalid(prepared))
	}
	if input[0].Values[1].Date != "bogus" {
		t.Error("Prepare must not modify its input")
	}
}

func TestNamesAndColors(t *testing.T) {
	series := []Series{{Name: "A", Color: "#111"}, {Name: "B", Color: "#222"}}
	names := Names(series)
	colors := Colors(series)
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("Unexpected names %v", names)
	}
	if len(colors) != 2 || colors[0] != "#111" || colors[1] != "#222" {
		t.Errorf("Unexpected colors %v", colors)
	}
}
