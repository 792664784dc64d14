package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleList = "Supplier X,,,\n" +
	"Product Name,COST,PRICE,RRP PRICE\n" +
	"Widget,20,50,55\n" +
	"Gadget,30,25,28\n"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APP_DATA_DIR", filepath.Join(dir, "data"))
	path := filepath.Join(dir, "list.csv")
	if err := os.WriteFile(path, []byte(sampleList), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCalcWritesCSV(t *testing.T) {
	path := writeSample(t)
	out := filepath.Join(filepath.Dir(path), "result.csv")

	stdout, err := execute(t, "calc", "--file", path, "--country", "Malaysia", "--fee", "10", "--out", out)
	if err != nil {
		t.Fatalf("calc: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "Wrote 4 records") {
		t.Fatalf("unexpected output %q", stdout)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 records, got %d lines:\n%s", len(lines), raw)
	}
	// Widget at 55: 55 - 20 - 5.5 = 29.5, highest first.
	if !strings.Contains(lines[1], "Widget") || !strings.Contains(lines[1], "29.5") {
		t.Fatalf("unexpected first record %q", lines[1])
	}
}

func TestColumns(t *testing.T) {
	path := writeSample(t)
	stdout, err := execute(t, "columns", "--file", path)
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	for _, want := range []string{"Header mode: single", "#0  Product Name", "cost:        #1 COST", "prices:      #2 PRICE, #3 RRP PRICE", "Widget | Gadget"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("missing %q in:\n%s", want, stdout)
		}
	}
}

func TestRatesSetAndList(t *testing.T) {
	writeSample(t)
	if _, err := execute(t, "rates", "set", "thb=8.25"); err != nil {
		t.Fatalf("rates set: %v", err)
	}
	stdout, err := execute(t, "rates", "list")
	if err != nil {
		t.Fatalf("rates list: %v", err)
	}
	if !strings.Contains(stdout, "THB  8.25 per MYR") || !strings.Contains(stdout, "VND  5400 per MYR") {
		t.Fatalf("unexpected rates:\n%s", stdout)
	}
}

func TestParseRateArgs(t *testing.T) {
	got, err := parseRateArgs([]string{"php=12.5", " IDR = 3500 "})
	if err != nil {
		t.Fatalf("parseRateArgs: %v", err)
	}
	if got["PHP"] != 12.5 || got["IDR"] != 3500 {
		t.Fatalf("unexpected %v", got)
	}
	for _, bad := range []string{"THB", "=1", "THB=x"} {
		if _, err := parseRateArgs([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
