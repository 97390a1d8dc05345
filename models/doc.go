// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines channel, request, response, and audit types.

# Channels

The fixed channel set, in form order:

	ChannelTV, ChannelFacebook, ChannelYouTube, ChannelRadio, ChannelPress

Each channel knows its measurement model catalog:

	models.ChannelTV.Models()        // "TV", "TV 2+", ... "TV_Dec"
	models.ChannelRadio.DefaultModel() // "Radio"

# Request Types

  - ChannelInput: efficiency (raw string) and selected model
  - AnalyzeRequest: efficiencies, models (both keyed by channel)

# Response Types

  - AllocationResult: results, total_budget, total_reach
  - ChannelAllocation: channel, selected_model, target_efficiency, budget, reach
  - ErrorResponse: error, message

# Audit Types

  - Submission: one submit attempt with its outcome

Outcome values:

	OutcomeOK              = "ok"
	OutcomeValidationError = "validation_error"
	OutcomeRequestError    = "request_error"
*/
package models
