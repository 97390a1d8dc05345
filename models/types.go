package models

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"
)

// Submission outcome constants
const (
	OutcomeOK              = "ok"
	OutcomeValidationError = "validation_error"
	OutcomeRequestError    = "request_error"
)

// Input types

// ChannelInput is what the user entered for one channel. Efficiency stays a
// string until validation so non-numeric entries can be reported.
type ChannelInput struct {
	Efficiency string `json:"efficiency"`
	Model      string `json:"model,omitempty"`
}

// ChannelInputs maps every channel to its form entry.
type ChannelInputs map[Channel]ChannelInput

// AnalyzeRequest is the body sent to the analysis service and accepted by
// POST /api/analyze.
type AnalyzeRequest struct {
	Efficiencies map[Channel]string `json:"efficiencies"`
	Models       map[Channel]string `json:"models"`
}

// UnmarshalJSON accepts efficiencies as JSON strings or numbers. Any other
// value is kept as its raw text so validation reports it against the channel.
func (r *AnalyzeRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Efficiencies map[Channel]json.RawMessage `json:"efficiencies"`
		Models       map[Channel]string          `json:"models"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Models = raw.Models
	r.Efficiencies = nil
	if raw.Efficiencies != nil {
		r.Efficiencies = make(map[Channel]string, len(raw.Efficiencies))
		for ch, v := range raw.Efficiencies {
			r.Efficiencies[ch] = efficiencyText(v)
		}
	}
	return nil
}

func efficiencyText(v json.RawMessage) string {
	var s string
	if json.Unmarshal(v, &s) == nil {
		// also covers null, which leaves s empty
		return s
	}
	return string(bytes.TrimSpace(v))
}

func (r AnalyzeRequest) channelKeys() []Channel {
	keys := make([]Channel, 0, len(r.Efficiencies)+len(r.Models))
	for ch := range r.Efficiencies {
		keys = append(keys, ch)
	}
	for ch := range r.Models {
		if _, ok := r.Efficiencies[ch]; !ok {
			keys = append(keys, ch)
		}
	}
	return keys
}

// UnknownChannel returns the first key in the body that is not a channel.
func (r AnalyzeRequest) UnknownChannel() (string, bool) {
	var unknown []string
	for _, ch := range r.channelKeys() {
		if _, ok := ParseChannel(string(ch)); !ok {
			unknown = append(unknown, string(ch))
		}
	}
	if len(unknown) == 0 {
		return "", false
	}
	slices.Sort(unknown)
	return unknown[0], true
}

// Inputs converts a request body back into form entries.
func (r AnalyzeRequest) Inputs() ChannelInputs {
	inputs := make(ChannelInputs, len(r.Efficiencies))
	for ch, eff := range r.Efficiencies {
		inputs[ch] = ChannelInput{Efficiency: eff, Model: r.Models[ch]}
	}
	for ch, model := range r.Models {
		if _, ok := inputs[ch]; !ok {
			// efficiency missing; keep the model so validation names the channel
			inputs[ch] = ChannelInput{Model: model}
		}
	}
	return inputs
}

// Response types

// ChannelAllocation is one per-channel record returned by the analysis service.
type ChannelAllocation struct {
	Channel          string  `json:"channel"`
	SelectedModel    string  `json:"selected_model"`
	TargetEfficiency float64 `json:"target_efficiency"`
	Budget           float64 `json:"budget"`
	Reach            float64 `json:"reach"`
}

// AllocationResult is the analysis service response. Totals are trusted as
// sent and never recomputed.
type AllocationResult struct {
	Results     []ChannelAllocation `json:"results"`
	TotalBudget float64             `json:"total_budget"`
	TotalReach  float64             `json:"total_reach"`
}

// Domain types

// Submission is an audit record of one submit attempt. It never carries the
// allocation result.
type Submission struct {
	ID           string             `json:"id"`
	Efficiencies map[Channel]string `json:"efficiencies"`
	Models       map[Channel]string `json:"models"`
	Outcome      string             `json:"outcome"`
	Message      string             `json:"message,omitempty"`
	DurationMs   int64              `json:"duration_ms"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
