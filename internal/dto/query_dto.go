package dto

import (
	"github.com/shopspring/decimal"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
)

// QueryRequest is the request body for answering a finance question
type QueryRequest struct {
	Question string `json:"question" binding:"required,notblank,max=500"`
}

// SeriesPointResponse is one chartable point of an answer
type SeriesPointResponse struct {
	Period string          `json:"period,omitempty"`
	Label  string          `json:"label"`
	Value  decimal.Decimal `json:"value"`
}

// QueryResponse is the response body for an answered question
type QueryResponse struct {
	Text      string                `json:"text"`
	Series    []SeriesPointResponse `json:"series"`
	Degraded  bool                  `json:"degraded"`
	RequestID string                `json:"requestId,omitempty"`
}

// ToQueryResponse converts a domain MetricResult to a QueryResponse DTO
func ToQueryResponse(result *domain.MetricResult, requestID string) QueryResponse {
	series := make([]SeriesPointResponse, 0, len(result.Series))
	for _, point := range result.Series {
		out := SeriesPointResponse{
			Label: point.Label,
			Value: point.Value,
		}
		if !point.Period.IsZero() {
			out.Period = point.Period.String()
		}
		series = append(series, out)
	}

	return QueryResponse{
		Text:      result.Text,
		Series:    series,
		Degraded:  result.Degraded,
		RequestID: requestID,
	}
}
