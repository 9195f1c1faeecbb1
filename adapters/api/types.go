package api

import (
	"lifestat/adapters/methods"
	"lifestat/domain/core"
	"lifestat/domain/lifedata"
)

// CalculateRequest is the body of a calculate or plot call. Censored is only
// read by the distribution methods; hypothesis tests take their positional
// layout in Values.
type CalculateRequest struct {
	Values   []float64 `json:"values"`
	Censored []int     `json:"censored,omitempty"`
}

// CalculateResponse carries the text report and graph series of one run.
// On failure Report holds the "Error: " text and ErrorCode is set.
type CalculateResponse struct {
	RunID      core.RunID             `json:"run_id"`
	Kind       methods.Kind           `json:"kind"`
	InputHash  core.InputHash         `json:"input_hash"`
	ComputedAt core.Timestamp         `json:"computed_at"`
	Report     string                 `json:"report"`
	Series     []lifedata.GraphSeries `json:"series"`
	ErrorCode  string                 `json:"error_code,omitempty"`
}

// ErrorResponse is returned when a request cannot reach a method at all.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}
