package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pricelist-profit/internal/model"
)

func TestRateRepositoryDefaults(t *testing.T) {
	r := NewRateRepository(filepath.Join(t.TempDir(), "exchange_rates.json"), "")
	rates := r.Load()
	for cur, want := range model.DefaultRates {
		if rates[cur] != want {
			t.Fatalf("%s = %v, want %v", cur, rates[cur], want)
		}
	}
}

func TestRateRepositoryMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exchange_rates.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	r := NewRateRepository(path, "")
	if got := r.Load()["THB"]; got != 7.8 {
		t.Fatalf("expected default THB, got %v", got)
	}
}

func TestRateRepositorySetAndRateFor(t *testing.T) {
	dir := t.TempDir()
	r := NewRateRepository(filepath.Join(dir, "exchange_rates.json"), filepath.Join(dir, "history"))
	if _, err := r.Set(map[string]float64{"THB": 8.1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	cur, rate, err := r.RateFor("Thailand")
	if err != nil || cur != "THB" || rate != 8.1 {
		t.Fatalf("RateFor = %s %v %v", cur, rate, err)
	}
	// Untouched currencies keep the defaults.
	if _, rate, _ := r.RateFor("Vietnam"); rate != 5400 {
		t.Fatalf("VND = %v", rate)
	}
	if _, _, err := r.RateFor("Atlantis"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRateRepositoryRejectsBadRates(t *testing.T) {
	r := NewRateRepository(filepath.Join(t.TempDir(), "exchange_rates.json"), "")
	for _, v := range []float64{0, -1} {
		if err := r.Save(map[string]float64{"THB": v}); err == nil {
			t.Fatalf("expected error for rate %v", v)
		}
	}
}
