package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidCode(t *testing.T) {
	valid := []string{"BASIC", "HOUSING_ALLOW", "G1", "PAYE_BRACKETS", "NHF"}
	invalid := []string{"", "b", "basic", "1BASIC", "GRADE-1", "A", "TOOLONGCODE_OVER_TWENTY_CHARS"}
	for _, code := range valid {
		if !IsValidCode(code) {
			t.Errorf("IsValidCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidCode(code) {
			t.Errorf("IsValidCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidPayrollMonth(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"2025-12", true},
		{"2024-01", true},
		{"2025-13", false},
		{"2025-00", false},
		{"12-2025", false},
		{"2025/12", false},
		{"", false},
	}
	for _, c := range cases {
		_, ok := IsValidPayrollMonth(c.input)
		if ok != c.want {
			t.Errorf("IsValidPayrollMonth(%q) = %v, want %v", c.input, ok, c.want)
		}
	}
}

func TestIsValidCurrency(t *testing.T) {
	valid := []string{"NGN", "USD", "EUR"}
	invalid := []string{"ngn", "NG", "NGNN", "N1N", ""}
	for _, cur := range valid {
		if !IsValidCurrency(cur) {
			t.Errorf("IsValidCurrency(%q) = false, want true", cur)
		}
	}
	for _, cur := range invalid {
		if IsValidCurrency(cur) {
			t.Errorf("IsValidCurrency(%q) = true, want false", cur)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"monthly", "hourly", "daily"}
	if !IsInSlice("monthly", slice) {
		t.Error("IsInSlice should find existing value")
	}
	if IsInSlice("weekly", slice) {
		t.Error("IsInSlice should not find missing value")
	}
	if IsInSlice("monthly", nil) {
		t.Error("IsInSlice on nil slice should be false")
	}
}
