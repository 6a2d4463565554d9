// Package app contains application services that orchestrate use cases.
package app

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"insquote/internal/domain"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// Age limits at coverage start for an insurable person.
const (
	minInsurableAge = 18
	maxInsurableAge = 80
)

// ValidateQuoteRequest checks every rule independently and collects all
// violations, so the caller receives a complete error report in one
// response. On success it returns a NormalizedRequest with strings trimmed
// and cased, dates coerced to UTC calendar dates and the capital coerced to
// a decimal. Gender stays GenderUnknown when absent; resolution happens
// later in the pipeline.
//
// today must be a calendar date (midnight UTC); it anchors the "in the past"
// and "in the future" rules.
func ValidateQuoteRequest(req domain.QuoteRequest, today time.Time) (domain.NormalizedRequest, []domain.FieldError) {
	var (
		n    domain.NormalizedRequest
		errs []domain.FieldError
	)

	fail := func(field, message string) {
		errs = append(errs, domain.FieldError{Field: field, Message: message})
	}

	n.Name = strings.TrimSpace(req.Name)
	if n.Name == "" {
		fail("name", "must not be blank")
	}

	n.TaxpayerID = stripNonDigits(req.TaxpayerID)
	if len(n.TaxpayerID) != 11 {
		fail("taxpayer_id", "must be exactly 11 digits")
	}

	switch g := strings.ToUpper(strings.TrimSpace(req.Gender)); g {
	case "":
		n.Gender = domain.GenderUnknown
	case string(domain.GenderMale), string(domain.GenderFemale):
		n.Gender = domain.Gender(g)
	default:
		fail("gender", "must be 'M' or 'F'")
	}

	birth, ok := parseDate(req.BirthDate)
	if !ok {
		fail("birth_date", "must be a valid date in YYYY-MM-DD format")
	} else if !birth.Before(today) {
		fail("birth_date", "must be in the past")
	} else {
		n.BirthDate = birth
	}

	start, ok := parseDate(req.StartDate)
	if !ok {
		fail("start_date", "must be a valid date in YYYY-MM-DD format")
	} else if start.Before(today) {
		fail("start_date", "must not be in the past")
	} else {
		n.StartDate = start
	}

	end, ok := parseDate(req.EndDate)
	switch {
	case !ok:
		fail("end_date", "must be a valid date in YYYY-MM-DD format")
	case !n.StartDate.IsZero() && !end.After(n.StartDate):
		fail("end_date", "must be after the start date")
	default:
		n.EndDate = end
	}

	capital, err := decimal.NewFromString(strings.TrimSpace(req.Capital))
	switch {
	case req.Capital == "" || err != nil:
		fail("capital", "must be a number")
	case !capital.IsPositive():
		fail("capital", "must be greater than zero")
	default:
		n.Capital = capital
	}

	// Age rule only applies once both dates individually passed.
	if !n.BirthDate.IsZero() && !n.StartDate.IsZero() {
		age := domain.AgeAt(n.BirthDate, n.StartDate)
		if age < minInsurableAge || age > maxInsurableAge {
			fail("birth_date", "age at coverage start must be between 18 and 80")
		}
	}

	if len(errs) > 0 {
		return domain.NormalizedRequest{}, errs
	}

	return n, nil
}

// stripNonDigits removes formatting punctuation ("123.456.789-01") from a
// taxpayer ID, keeping ASCII digits only.
func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// parseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}

	return domain.Date(t), true
}
