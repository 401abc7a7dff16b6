package suncalc

import (
	"testing"
	"time"
)

func TestNewSunCalc(t *testing.T) {
	latitude, longitude := 52.414, -4.082 // Aberystwyth coordinates
	sc := NewSunCalc(latitude, longitude)
	if sc == nil {
		t.Fatal("NewSunCalc returned nil")
		return
	}

	if sc.observer.Latitude != latitude {
		t.Errorf("Expected latitude %v, got %v", latitude, sc.observer.Latitude)
	}

	if sc.observer.Longitude != longitude {
		t.Errorf("Expected longitude %v, got %v", longitude, sc.observer.Longitude)
	}
}

func TestGetSunEventTimes(t *testing.T) {
	sc := NewSunCalc(52.414, -4.082)

	// Midsummer
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	// First call to calculate and cache
	times1, err := sc.GetSunEventTimes(date)
	if err != nil {
		t.Fatalf("Failed to get sun event times: %v", err)
	}

	if times1.Sunrise.IsZero() {
		t.Error("Sunrise time is zero")
	}
	if times1.Sunset.IsZero() {
		t.Error("Sunset time is zero")
	}
	if times1.CivilDawn.IsZero() {
		t.Error("Civil dawn time is zero")
	}
	if times1.CivilDusk.IsZero() {
		t.Error("Civil dusk time is zero")
	}

	if !times1.Sunrise.Before(times1.Sunset) {
		t.Error("Sunrise is not before sunset")
	}

	// Times must come back in UTC
	if times1.Sunrise.Location() != time.UTC {
		t.Errorf("Expected sunrise in UTC, got %v", times1.Sunrise.Location())
	}

	// Second call to test cache
	times2, err := sc.GetSunEventTimes(date)
	if err != nil {
		t.Fatalf("Failed to get cached sun event times: %v", err)
	}

	if !times1.Sunrise.Equal(times2.Sunrise) {
		t.Error("Cached sunrise time doesn't match original")
	}
	if !times1.Sunset.Equal(times2.Sunset) {
		t.Error("Cached sunset time doesn't match original")
	}
}

func TestGetSunriseTime(t *testing.T) {
	sc := NewSunCalc(52.414, -4.082)
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	sunrise, err := sc.GetSunriseTime(date)
	if err != nil {
		t.Fatalf("Failed to get sunrise time: %v", err)
	}

	if sunrise.IsZero() {
		t.Error("Sunrise time is zero")
	}
}

func TestGetSunsetTime(t *testing.T) {
	sc := NewSunCalc(52.414, -4.082)
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	sunset, err := sc.GetSunsetTime(date)
	if err != nil {
		t.Fatalf("Failed to get sunset time: %v", err)
	}

	if sunset.IsZero() {
		t.Error("Sunset time is zero")
	}
}

func TestGetSunEventTimesPolarNight(t *testing.T) {
	// Svalbard in midwinter, the sun never rises; the error must surface so
	// the caller can skip the day.
	sc := NewSunCalc(78.2232, 15.6267)
	date := time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)

	_, err := sc.GetSunEventTimes(date)
	if err == nil {
		t.Error("Expected an error for polar night, got nil")
	}
}
