package validate_test

import (
	"testing"

	"marrent/internal/validate"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"ana@x.com", true},
		{"first.last+tag@sub.domain.org", true},
		{"bad@", false},
		{"@nodomain.com", false},
		{"noat.example.com", false},
		{"a@b.c", false}, // tld too short
		{"", false},
	}
	for _, c := range cases {
		if _, ok := validate.Email(c.in); ok != c.ok {
			t.Errorf("Email(%q) = %v, want %v", c.in, ok, c.ok)
		}
	}
}

func TestPhone(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"5551234567", true},
		{"+123456789012", true},
		{"123456789012345", true},
		{"12345", false},            // too short
		{"1234567890123456", false}, // too long
		{"+", false},
		{"555-123-4567", false},
		{"", false},
	}
	for _, c := range cases {
		if _, ok := validate.Phone(c.in); ok != c.ok {
			t.Errorf("Phone(%q) = %v, want %v", c.in, ok, c.ok)
		}
	}
}

func TestStatus(t *testing.T) {
	for _, s := range []string{"available", "rented", "maintenance"} {
		if _, ok := validate.Status(s); !ok {
			t.Errorf("Status(%q) rejected", s)
		}
	}
	if _, ok := validate.Status("broken"); ok {
		t.Error("Status accepted unknown value")
	}
}

func TestMoney(t *testing.T) {
	if v, ok := validate.Money("100.50"); !ok || v != 100.50 {
		t.Fatalf("Money(100.50) = %v,%v", v, ok)
	}
	if _, ok := validate.Money("-1"); ok {
		t.Error("negative amount accepted")
	}
	if _, ok := validate.Money("abc"); ok {
		t.Error("non-numeric amount accepted")
	}
}
