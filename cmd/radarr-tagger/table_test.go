package main

import (
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"

	"radarrtagger/internal/reconcile"
)

const (
	escGreen = "\x1b[32m"
	escRed   = "\x1b[31m"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]tableColumn{numericCol("ID"), col("Label"), col("Managed")},
		[][]string{{"7", "custom"}, {"1", "no_score", "yes", "extra"}},
		false,
	)
	for _, want := range []string{"ID", "LABEL", "MANAGED", "custom", "no_score", "yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	if strings.Contains(out, "extra") {
		t.Fatalf("cells beyond the header should be dropped:\n%s", out)
	}
	if renderTable(nil, [][]string{{"x"}}, false) != "" {
		t.Fatal("expected empty output without columns")
	}
}

func TestRenderPlanColorsChangeColumns(t *testing.T) {
	// Colour support is detected from the environment at init.
	text.EnableColors()

	score := 150
	result := reconcile.Result{
		Movies:  1,
		Changed: 1,
		Changes: []reconcile.Change{{
			MovieID: 4,
			Title:   "Alien",
			Score:   &score,
			After:   []string{"positive_score"},
			Added:   []string{"positive_score"},
			Removed: []string{"4k"},
		}},
	}

	plain := renderPlan(result, false)
	if strings.Contains(plain, "\x1b[") {
		t.Fatalf("expected no escape codes without colour:\n%q", plain)
	}
	for _, want := range []string{"+positive_score", "-4k", "150"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("expected %q in plan:\n%s", want, plain)
		}
	}

	colored := renderPlan(result, true)
	if !strings.Contains(colored, escGreen) || !strings.Contains(colored, escRed) {
		t.Fatalf("expected green and red columns:\n%q", colored)
	}
	for _, line := range strings.Split(colored, "\n") {
		if strings.Contains(line, "RESULTING TAGS") && strings.Contains(line, "\x1b[") {
			t.Fatalf("header row must not be coloured: %q", line)
		}
	}
}

func TestRenderPlanMarksUnreadableFile(t *testing.T) {
	result := reconcile.Result{Changes: []reconcile.Change{{
		MovieID:   2,
		Title:     "Gone",
		FileError: true,
		After:     []string{"no_score"},
		Added:     []string{"no_score"},
		Removed:   []string{"motong", "4k"},
	}}}

	out := renderPlan(result, false)
	for _, want := range []string{"unavailable", "-motong -4k", "+no_score"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in plan:\n%s", want, out)
		}
	}
}
