// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package validation

import (
	"strings"
	"testing"
)

type graphRequest struct {
	Kind      string  `query:"type" validate:"required,mediakind"`
	Threshold float64 `query:"weighting" validate:"gte=0,lte=10"`
	TopN      int     `query:"top_n" validate:"gte=1,lte=10"`
}

type newBook struct {
	Title string `json:"title" validate:"required,max=200"`
	Year  string `json:"year" validate:"year"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("expected the same validator instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	req := graphRequest{Kind: "film", Threshold: 3, TopN: 5}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateStruct_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		req       graphRequest
		wantField string
		wantTag   string
	}{
		{"threshold too high", graphRequest{Kind: "book", Threshold: 10.5, TopN: 5}, "weighting", "lte"},
		{"threshold negative", graphRequest{Kind: "book", Threshold: -1, TopN: 5}, "weighting", "gte"},
		{"top_n zero", graphRequest{Kind: "book", Threshold: 3, TopN: 0}, "top_n", "gte"},
		{"top_n too high", graphRequest{Kind: "book", Threshold: 3, TopN: 11}, "top_n", "lte"},
		{"unknown kind", graphRequest{Kind: "music", Threshold: 3, TopN: 5}, "type", "mediakind"},
		{"missing kind", graphRequest{Threshold: 3, TopN: 5}, "type", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_Year(t *testing.T) {
	tests := []struct {
		year  string
		valid bool
	}{
		{"1965", true},
		{"", true},
		{"65", false},
		{"19a5", false},
		{"20210", false},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			err := ValidateStruct(&newBook{Title: "Dune", Year: tt.year})
			if (err == nil) != tt.valid {
				t.Errorf("ValidateStruct(year=%q) error = %v, valid %v", tt.year, err, tt.valid)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	err := ValidateStruct(&graphRequest{Kind: "book", Threshold: 3, TopN: 99})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != ErrorCode {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
	}
	if apiErr.Message != "top_n must be less than or equal to 10" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "top_n" {
		t.Errorf("Details[field] = %v, want top_n", apiErr.Details["field"])
	}
}

func TestToAPIError_Multiple(t *testing.T) {
	err := ValidateStruct(&graphRequest{Kind: "music", Threshold: 11, TopN: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] has type %T", apiErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Errorf("expected 3 field errors, got %d", len(fields))
	}
	if !strings.Contains(apiErr.Message, "type must be one of: book, film, game") {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestTranslateError_StringLength(t *testing.T) {
	err := ValidateStruct(&newBook{Title: strings.Repeat("x", 201)})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := err.Error(); got != "title must be at most 200 characters" {
		t.Errorf("Error() = %q", got)
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	err := &RequestValidationError{}
	if err.Error() != "validation failed" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.ToAPIError().Message != "Validation failed" {
		t.Errorf("ToAPIError().Message = %q", err.ToAPIError().Message)
	}
}
