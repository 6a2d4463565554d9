package dto

import (
	"time"

	"insquote/internal/domain"
)

// dateLayout renders calendar dates on the wire.
const dateLayout = "2006-01-02"

// QuoteRequest is the request body for creating a quote. Every field arrives
// as a string; the application layer validates and normalizes.
type QuoteRequest struct {
	Name       string `json:"name"`
	TaxpayerID string `json:"taxpayer_id"`
	Gender     string `json:"gender,omitempty"`
	BirthDate  string `json:"birth_date"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Capital    string `json:"capital"`
}

// ToDomain converts the request body to the domain request type.
func (r QuoteRequest) ToDomain() domain.QuoteRequest {
	return domain.QuoteRequest{
		Name:       r.Name,
		TaxpayerID: r.TaxpayerID,
		Gender:     r.Gender,
		BirthDate:  r.BirthDate,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Capital:    r.Capital,
	}
}

// QuoteResponse is the response body for a quote. Monetary and rate values
// are rendered as decimal strings to avoid float artifacts on the wire.
type QuoteResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	TaxpayerID    string `json:"taxpayer_id"`
	Gender        string `json:"gender"`
	BirthDate     string `json:"birth_date"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Capital       string `json:"capital"`
	BaseRate      string `json:"base_rate"`
	AdjustedRate  string `json:"adjusted_rate"`
	CoverageDays  int    `json:"coverage_days"`
	CoverageYears string `json:"coverage_years"`
	Premium       string `json:"premium"`
	Description   string `json:"description"`
	CreatedAt     string `json:"created_at"`
}

// FromQuote converts a domain Quote to its response body.
func FromQuote(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		ID:            q.ID,
		Name:          q.Name,
		TaxpayerID:    q.TaxpayerID,
		Gender:        string(q.Gender),
		BirthDate:     q.BirthDate.Format(dateLayout),
		StartDate:     q.StartDate.Format(dateLayout),
		EndDate:       q.EndDate.Format(dateLayout),
		Capital:       q.Capital.String(),
		BaseRate:      q.BaseRate.String(),
		AdjustedRate:  q.AdjustedRate.String(),
		CoverageDays:  q.CoverageDays,
		CoverageYears: q.CoverageYears.String(),
		Premium:       q.Premium.String(),
		Description:   q.Description,
		CreatedAt:     q.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// QuoteListResponse is the response body for the quote listing.
type QuoteListResponse struct {
	Quotes []*QuoteResponse `json:"quotes"`
	Count  int              `json:"count"`
}

// FromQuotes converts a slice of domain quotes to the listing body.
func FromQuotes(quotes []*domain.Quote) *QuoteListResponse {
	items := make([]*QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, FromQuote(q))
	}

	return &QuoteListResponse{Quotes: items, Count: len(items)}
}

// GenderRequest is the request body for the standalone gender inference
// endpoint. Name carries free text, optionally with an honorific title.
type GenderRequest struct {
	Name string `json:"name"`
}

// GenderResponse reports the inferred gender and how it was resolved.
type GenderResponse struct {
	Gender string `json:"gender"`
	Source string `json:"source"`
}

// FromResolution converts a domain resolution to its response body.
func FromResolution(res domain.GenderResolution) *GenderResponse {
	return &GenderResponse{
		Gender: string(res.Gender),
		Source: string(res.Source),
	}
}
