package app

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insquote/internal/domain"
)

var today = time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)

func validRequest() domain.QuoteRequest {
	return domain.QuoteRequest{
		Name:       "Sra. Maria Silva",
		TaxpayerID: "123.456.789-01",
		Gender:     "",
		BirthDate:  "1990-01-15",
		StartDate:  "2026-09-01",
		EndDate:    "2027-09-01",
		Capital:    "100000",
	}
}

func fieldsOf(errs []domain.FieldError) []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}

	return fields
}

func TestValidateQuoteRequest_Valid(t *testing.T) {
	n, errs := ValidateQuoteRequest(validRequest(), today)

	require.Empty(t, errs)
	assert.Equal(t, "Sra. Maria Silva", n.Name)
	assert.Equal(t, "12345678901", n.TaxpayerID)
	assert.Equal(t, domain.GenderUnknown, n.Gender)
	assert.Equal(t, time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC), n.BirthDate)
	assert.True(t, n.Capital.Equal(decimal.RequireFromString("100000")))
}

func TestValidateQuoteRequest_ExplicitGender(t *testing.T) {
	req := validRequest()
	req.Gender = "f"

	n, errs := ValidateQuoteRequest(req, today)

	require.Empty(t, errs)
	assert.Equal(t, domain.GenderFemale, n.Gender)
}

func TestValidateQuoteRequest_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.QuoteRequest)
		field   string
		message string
	}{
		{
			name:    "blank name",
			mutate:  func(r *domain.QuoteRequest) { r.Name = "   " },
			field:   "name",
			message: "must not be blank",
		},
		{
			name:    "short taxpayer ID",
			mutate:  func(r *domain.QuoteRequest) { r.TaxpayerID = "123" },
			field:   "taxpayer_id",
			message: "must be exactly 11 digits",
		},
		{
			name:    "taxpayer ID with letters",
			mutate:  func(r *domain.QuoteRequest) { r.TaxpayerID = "1234567890a" },
			field:   "taxpayer_id",
			message: "must be exactly 11 digits",
		},
		{
			name:    "invalid gender",
			mutate:  func(r *domain.QuoteRequest) { r.Gender = "X" },
			field:   "gender",
			message: "must be 'M' or 'F'",
		},
		{
			name:    "malformed birth date",
			mutate:  func(r *domain.QuoteRequest) { r.BirthDate = "15/01/1990" },
			field:   "birth_date",
			message: "must be a valid date in YYYY-MM-DD format",
		},
		{
			name:    "birth date in the future",
			mutate:  func(r *domain.QuoteRequest) { r.BirthDate = "2030-01-01" },
			field:   "birth_date",
			message: "must be in the past",
		},
		{
			name:    "start date in the past",
			mutate:  func(r *domain.QuoteRequest) { r.StartDate = "2026-08-22" },
			field:   "start_date",
			message: "must not be in the past",
		},
		{
			name: "end date before start date",
			mutate: func(r *domain.QuoteRequest) {
				r.StartDate = "2027-09-01"
				r.EndDate = "2026-09-01"
			},
			field:   "end_date",
			message: "must be after the start date",
		},
		{
			name: "end date equal to start date",
			mutate: func(r *domain.QuoteRequest) {
				r.EndDate = r.StartDate
			},
			field:   "end_date",
			message: "must be after the start date",
		},
		{
			name:    "capital not a number",
			mutate:  func(r *domain.QuoteRequest) { r.Capital = "abc" },
			field:   "capital",
			message: "must be a number",
		},
		{
			name:    "capital zero",
			mutate:  func(r *domain.QuoteRequest) { r.Capital = "0" },
			field:   "capital",
			message: "must be greater than zero",
		},
		{
			name:    "capital negative",
			mutate:  func(r *domain.QuoteRequest) { r.Capital = "-100" },
			field:   "capital",
			message: "must be greater than zero",
		},
		{
			name:    "too young at coverage start",
			mutate:  func(r *domain.QuoteRequest) { r.BirthDate = "2010-01-01" },
			field:   "birth_date",
			message: "age at coverage start must be between 18 and 80",
		},
		{
			name:    "too old at coverage start",
			mutate:  func(r *domain.QuoteRequest) { r.BirthDate = "1940-01-01" },
			field:   "birth_date",
			message: "age at coverage start must be between 18 and 80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, errs := ValidateQuoteRequest(req, today)

			require.NotEmpty(t, errs)
			assert.Contains(t, fieldsOf(errs), tt.field)

			for _, e := range errs {
				if e.Field == tt.field {
					assert.Equal(t, tt.message, e.Message)
				}
			}
		})
	}
}

func TestValidateQuoteRequest_CollectsAllViolations(t *testing.T) {
	req := domain.QuoteRequest{
		Name:       "",
		TaxpayerID: "123",
		Gender:     "Z",
		BirthDate:  "not-a-date",
		StartDate:  "also-not-a-date",
		EndDate:    "nope",
		Capital:    "free",
	}

	_, errs := ValidateQuoteRequest(req, today)

	fields := fieldsOf(errs)
	assert.ElementsMatch(t, []string{
		"name", "taxpayer_id", "gender", "birth_date", "start_date", "end_date", "capital",
	}, fields)
}

func TestValidateQuoteRequest_BoundaryAges(t *testing.T) {
	// Exactly 18 and exactly 80 at coverage start are both insurable.
	for _, birth := range []string{"2008-09-01", "1946-09-01"} {
		req := validRequest()
		req.BirthDate = birth

		_, errs := ValidateQuoteRequest(req, today)

		assert.Empty(t, errs, "birth %s should be insurable", birth)
	}
}

func TestValidateQuoteRequest_StartToday(t *testing.T) {
	req := validRequest()
	req.StartDate = "2026-08-23"

	_, errs := ValidateQuoteRequest(req, today)

	assert.Empty(t, errs)
}
