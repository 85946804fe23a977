package domain

import "strings"

type TrendRequest struct {
	Symbols []string `json:"symbols"`
}

// ParseSymbols splits a raw comma separated ticker list. Symbols are trimmed but otherwise
// passed through untouched: no format check, no dedup and no cap on the count.
func ParseSymbols(raw string) TrendRequest {
	parts := strings.Split(raw, ",")
	symbols := make([]string, 0, len(parts))
	for _, part := range parts {
		symbols = append(symbols, strings.TrimSpace(part))
	}

	return TrendRequest{Symbols: symbols}
}

type TrendResponse struct {
	Trends      [][]float64 `json:"trends"`
	Predictions [][]float64 `json:"predictions"`
	CPUCores    int         `json:"cpu_cores"`
	Error       string      `json:"error,omitempty"`
	Status      string      `json:"status,omitempty"`
	Message     string      `json:"message,omitempty"`
}

func (r TrendResponse) HasError() bool {
	return r.Error != ""
}

// MaxTrendLength is the longest trend series, which sizes the x axis. Prediction series
// do not count.
func (r TrendResponse) MaxTrendLength() int {
	longest := 0
	for _, trend := range r.Trends {
		if len(trend) > longest {
			longest = len(trend)
		}
	}

	return longest
}
