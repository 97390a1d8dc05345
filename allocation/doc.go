// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package allocation is the client for the remote media mix analysis service.

# Submitting

A Client is built with the endpoint URL and submits one set of channel
inputs at a time:

	client := allocation.NewClient(cfg.AnalyzeURL)
	result, err := client.Submit(ctx, inputs)

Submit moves the client from StateIdle to StateSubmitting for the duration of
the call. A second Submit while a request is outstanding returns
ErrSubmissionInFlight without touching the network. Both success and failure
return the client to StateIdle.

# Validation

Every channel in models.Channels must have an efficiency in [0, 100]:

	req, err := allocation.BuildRequest(inputs)

BuildRequest checks all channels and reports the first failure in channel
order. Violations returns every failure for callers that show them all.

# Errors

	var vErr *allocation.ValidationError  // bad input, names the channel
	var rErr *allocation.RequestError     // transport, status, or decode failure

RequestError always reads "failed to get prediction". Detail carries the
status and cause for logs. No retry is attempted.
*/
package allocation
