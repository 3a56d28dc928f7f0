package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewCasinoDataDefaults(t *testing.T) {
	c, err := NewCasinoData("  Grand Fortune  ", " https://example.com ")
	if err != nil {
		t.Fatalf("NewCasinoData: %v", err)
	}
	if c.Name != "Grand Fortune" {
		t.Errorf("Name: got %q, want trimmed %q", c.Name, "Grand Fortune")
	}
	if c.URL != "https://example.com" {
		t.Errorf("URL: got %q, want trimmed", c.URL)
	}
	if c.Licenses == nil || c.RTPInfo == nil || c.Fairness == nil ||
		c.Providers == nil || c.WithdrawalMethods == nil || c.Reviews == nil {
		t.Error("list fields should default to empty slices, not nil")
	}
	if c.Security != nil {
		t.Error("security should default to absent")
	}
	if c.CollectionDate.IsZero() {
		t.Error("collection_date should default to creation instant")
	}
}

func TestNewCasinoDataRequiredFields(t *testing.T) {
	tests := []struct {
		name, url string
		wantField string
	}{
		{"", "https://example.com", "name"},
		{"   ", "https://example.com", "name"},
		{"Casino", "", "url"},
		{"Casino", "  ", "url"},
	}

	for _, tt := range tests {
		_, err := NewCasinoData(tt.name, tt.url)
		if err == nil {
			t.Errorf("NewCasinoData(%q, %q): expected error", tt.name, tt.url)
			continue
		}
		verr, ok := err.(*ValidationError)
		if !ok {
			t.Errorf("NewCasinoData(%q, %q): expected *ValidationError, got %T", tt.name, tt.url, err)
			continue
		}
		if verr.Field != tt.wantField {
			t.Errorf("NewCasinoData(%q, %q): field %q, want %q", tt.name, tt.url, verr.Field, tt.wantField)
		}
	}
}

func TestValidateRanges(t *testing.T) {
	min := 100.0
	max := 50.0

	tests := []struct {
		desc      string
		mutate    func(*CasinoData)
		wantField string
	}{
		{
			"rtp above 100",
			func(c *CasinoData) { c.RTPInfo = []RTPEntry{{RTPPercentage: 101}} },
			"rtp_percentage",
		},
		{
			"rtp below 0",
			func(c *CasinoData) { c.RTPInfo = []RTPEntry{{RTPPercentage: -1}} },
			"rtp_percentage",
		},
		{
			"rating above 5",
			func(c *CasinoData) { c.Reviews = []Review{{Source: "X", Rating: 5.5}} },
			"rating",
		},
		{
			"max below min",
			func(c *CasinoData) {
				c.WithdrawalMethods = []WithdrawalMethod{{Method: "Visa", MinAmount: &min, MaxAmount: &max}}
			},
			"max_amount",
		},
	}

	for _, tt := range tests {
		c, err := NewCasinoData("Casino", "https://example.com")
		if err != nil {
			t.Fatalf("%s: setup: %v", tt.desc, err)
		}
		tt.mutate(c)

		err = c.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", tt.desc)
			continue
		}
		verr, ok := err.(*ValidationError)
		if !ok {
			t.Errorf("%s: expected *ValidationError, got %T", tt.desc, err)
			continue
		}
		if verr.Field != tt.wantField {
			t.Errorf("%s: field %q, want %q", tt.desc, verr.Field, tt.wantField)
		}
	}
}

func TestValidateAcceptsBoundaryValues(t *testing.T) {
	c, err := NewCasinoData("Casino", "https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	c.RTPInfo = []RTPEntry{{RTPPercentage: 0}, {RTPPercentage: 100}}
	c.Reviews = []Review{{Source: "X", Rating: 0}, {Source: "Y", Rating: 5}}

	if err := c.Validate(); err != nil {
		t.Errorf("boundary values should pass validation, got %v", err)
	}
}

func TestJSONShape(t *testing.T) {
	c, err := NewCasinoData("Grand Fortune", "https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	c.CollectionDate = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	buf, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	out := string(buf)

	for _, key := range []string{
		`"name"`, `"url"`, `"description"`, `"licenses"`, `"rtp_info"`,
		`"fairness"`, `"providers"`, `"security"`, `"withdrawal_methods"`,
		`"reviews"`, `"collection_date"`, `"data_completeness_score"`,
	} {
		if !strings.Contains(out, key) {
			t.Errorf("marshalled JSON missing key %s", key)
		}
	}
	if !strings.Contains(out, `"licenses":[]`) {
		t.Error("empty list fields should marshal as [], not null")
	}
	if !strings.Contains(out, `"security":null`) {
		t.Error("absent security should marshal as null")
	}
	if !strings.Contains(out, `"collection_date":"2025-06-01T12:00:00Z"`) {
		t.Errorf("collection_date should be RFC 3339 UTC, got: %s", out)
	}
}

func TestAverageReviewRating(t *testing.T) {
	c := &CasinoData{
		Reviews: []Review{
			{Source: "A", Rating: 4.0},
			{Source: "B", Rating: 2.0},
		},
	}
	if got := c.AverageReviewRating(); got != 3.0 {
		t.Errorf("AverageReviewRating: got %.2f, want 3.0", got)
	}

	empty := &CasinoData{}
	if got := empty.AverageReviewRating(); got != 0 {
		t.Errorf("AverageReviewRating with no reviews: got %.2f, want 0", got)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	c := &CasinoData{Name: "X", URL: "https://x.example.com"}
	c.Normalize()

	if c.CollectionDate.IsZero() {
		t.Error("Normalize should set a zero collection_date")
	}
	if c.Licenses == nil || c.Reviews == nil {
		t.Error("Normalize should replace nil list fields with empty slices")
	}
}
