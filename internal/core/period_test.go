package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestPeriodLabel(t *testing.T) {
	cases := []struct {
		year, month int
		want        string
	}{
		{2025, 1, "jan/25"},
		{2025, 2, "fev/25"},
		{2025, 8, "ago/25"},
		{2025, 9, "set/25"},
		{2025, 12, "dez/25"},
		{2026, 1, "jan/26"},
		{2003, 7, "jul/03"},
	}
	for _, tc := range cases {
		got, err := PeriodLabel(tc.year, tc.month)
		if err != nil {
			t.Fatalf("PeriodLabel(%d, %d): %v", tc.year, tc.month, err)
		}
		if got != tc.want {
			t.Errorf("PeriodLabel(%d, %d) = %q, want %q", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestPeriodLabelInvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		if _, err := PeriodLabel(2025, month); !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("PeriodLabel(2025, %d) err = %v, want ErrInvalidMonth", month, err)
		}
	}
}

func TestPeriodLabelInjectiveWithinCentury(t *testing.T) {
	seen := map[string]string{}
	for year := 2000; year < 2100; year++ {
		for month := 1; month <= 12; month++ {
			label, err := PeriodLabel(year, month)
			if err != nil {
				t.Fatalf("PeriodLabel(%d, %d): %v", year, month, err)
			}
			pair := fmt.Sprintf("%04d-%02d", year, month)
			if prev, ok := seen[label]; ok && prev != pair {
				t.Fatalf("label %q produced by both %s and %s", label, prev, pair)
			}
			seen[label] = pair
		}
	}
}

func TestCurrentLabel(t *testing.T) {
	got, err := CurrentLabel(NewDate(2025, 8, 19))
	if err != nil || got != "ago/25" {
		t.Fatalf("CurrentLabel(2025-08-19) = %q, %v; want \"ago/25\"", got, err)
	}
}

func TestNextLabel(t *testing.T) {
	cases := []struct {
		date Date
		want string
	}{
		{NewDate(2025, 8, 19), "set/25"},
		{NewDate(2025, 11, 30), "dez/25"},
		{NewDate(2025, 12, 26), "jan/26"},
		{NewDate(2025, 12, 1), "jan/26"},
	}
	for _, tc := range cases {
		got, err := NextLabel(tc.date)
		if err != nil {
			t.Fatalf("NextLabel(%v): %v", tc.date, err)
		}
		if got != tc.want {
			t.Errorf("NextLabel(%v) = %q, want %q", tc.date, got, tc.want)
		}
	}
}
