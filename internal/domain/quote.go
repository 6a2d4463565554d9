// Package domain contains core business entities and rules.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gender is the resolved gender of an insured person.
type Gender string

const (
	// GenderMale is the male gender marker.
	GenderMale Gender = "M"

	// GenderFemale is the female gender marker.
	GenderFemale Gender = "F"

	// GenderUnknown means no definite gender could be determined.
	// It never appears on a persisted Quote.
	GenderUnknown Gender = ""
)

// GenderSource identifies how a gender was inferred.
type GenderSource string

const (
	// GenderSourceTitle means the gender came from an honorific title match.
	GenderSourceTitle GenderSource = "title"

	// GenderSourceName means the gender came from the external
	// name-prediction lookup (or its fixed default).
	GenderSourceName GenderSource = "name"

	// GenderSourceRequest means the caller supplied the gender explicitly.
	GenderSourceRequest GenderSource = "request"
)

// GenderResolution is the outcome of a gender inference.
type GenderResolution struct {
	Gender Gender
	Source GenderSource
}

// QuoteRequest is the raw, untrusted input for a quote. String fields carry
// whatever the caller sent; validation normalizes them.
type QuoteRequest struct {
	// Name is the full name of the insured, optionally prefixed with an
	// honorific title ("Sra. Maria Silva").
	Name string

	// TaxpayerID is the 11-digit taxpayer ID, formatting punctuation allowed.
	TaxpayerID string

	// Gender is "M" or "F" if the caller knows it; empty means infer it.
	Gender string

	// BirthDate, StartDate and EndDate are calendar dates in YYYY-MM-DD.
	BirthDate string
	StartDate string
	EndDate   string

	// Capital is the insured capital amount as a decimal string.
	Capital string
}

// NormalizedRequest is a QuoteRequest after validation: strings trimmed and
// cased, dates coerced to UTC calendar dates, capital coerced to a decimal.
// Gender may still be GenderUnknown; the quoting pipeline resolves it before
// any Quote is built.
type NormalizedRequest struct {
	Name       string
	TaxpayerID string
	Gender     Gender
	BirthDate  time.Time
	StartDate  time.Time
	EndDate    time.Time
	Capital    decimal.Decimal
}

// Quote is a persisted premium quotation. It is write-once: the store
// assigns ID and CreatedAt on insert and no update operation exists.
type Quote struct {
	ID         int64
	Name       string
	TaxpayerID string
	Gender     Gender
	BirthDate  time.Time
	StartDate  time.Time
	EndDate    time.Time
	Capital    decimal.Decimal

	BaseRate      decimal.Decimal
	AdjustedRate  decimal.Decimal
	CoverageDays  int
	CoverageYears decimal.Decimal
	Premium       decimal.Decimal
	Description   string

	CreatedAt time.Time
}

// Date truncates t to a UTC calendar date (midnight).
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AgeAt returns the age in whole years at the reference date.
func AgeAt(birth, ref time.Time) int {
	years := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		years--
	}
	return years
}

// CoverageDaysBetween returns the coverage length in whole days: the start
// date is counted, the end date is not.
func CoverageDaysBetween(start, end time.Time) int {
	return int(Date(end).Sub(Date(start)).Hours() / 24)
}
