// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/mmm-reach/models"
)

// Efficiency bounds, inclusive.
const (
	MinEfficiency = 0.0
	MaxEfficiency = 100.0
)

// ParseEfficiency converts a raw form value to a percentage in [0, 100].
func ParseEfficiency(ch models.Channel, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &ValidationError{Channel: ch, Value: raw, Reason: ReasonMissing}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Channel: ch, Value: raw, Reason: ReasonNotNumeric}
	}

	if v < MinEfficiency || v > MaxEfficiency {
		return 0, &ValidationError{Channel: ch, Value: raw, Reason: ReasonOutOfRange}
	}

	return v, nil
}

// Violations checks every channel and returns all rejected inputs in channel
// order. An empty result means the inputs are complete and valid.
func Violations(inputs models.ChannelInputs) []*ValidationError {
	var violations []*ValidationError

	for _, ch := range models.Channels {
		in, ok := inputs[ch]
		if !ok {
			violations = append(violations, &ValidationError{Channel: ch, Reason: ReasonMissing})
			continue
		}

		if _, err := ParseEfficiency(ch, in.Efficiency); err != nil {
			violations = append(violations, err.(*ValidationError))
			continue
		}

		if in.Model != "" && !ch.SupportsModel(in.Model) {
			violations = append(violations, &ValidationError{Channel: ch, Value: in.Model, Reason: ReasonBadModel})
		}
	}

	return violations
}

// BuildRequest validates inputs and returns the request body for the analysis
// service. The first failing channel, in channel order, is returned as a
// *ValidationError and no request is built.
func BuildRequest(inputs models.ChannelInputs) (models.AnalyzeRequest, error) {
	if v := Violations(inputs); len(v) > 0 {
		return models.AnalyzeRequest{}, v[0]
	}

	req := models.AnalyzeRequest{
		Efficiencies: make(map[models.Channel]string, len(models.Channels)),
		Models:       make(map[models.Channel]string, len(models.Channels)),
	}

	for _, ch := range models.Channels {
		in := inputs[ch]
		eff, _ := ParseEfficiency(ch, in.Efficiency)
		req.Efficiencies[ch] = strconv.FormatFloat(eff, 'f', -1, 64)

		model := in.Model
		if model == "" {
			model = ch.DefaultModel()
		}
		req.Models[ch] = model
	}

	return req, nil
}
