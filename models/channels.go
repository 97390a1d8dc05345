// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Channel is one of the fixed media categories an allocation is computed for.
type Channel string

const (
	ChannelTV       Channel = "TV"
	ChannelFacebook Channel = "Facebook"
	ChannelYouTube  Channel = "YouTube"
	ChannelRadio    Channel = "Radio"
	ChannelPress    Channel = "Press"
)

// Channels lists every channel in form and validation order.
var Channels = []Channel{
	ChannelTV,
	ChannelFacebook,
	ChannelYouTube,
	ChannelRadio,
	ChannelPress,
}

// Measurement model catalog per channel. The first entry is the default.
// Radio and Press have no choice and send their channel name.
var channelModels = map[Channel][]string{
	ChannelTV: {
		"TV", "TV 2+", "TV 3+", "TV 4+", "TV 5+", "TV 6+", "TV 7+", "TV 8+", "TV 9+", "TV 10+",
		"TV_Jan", "TV_Feb", "TV_Mar", "TV_Apr", "TV_May", "TV_Jun", "TV_Jul", "TV_Aug",
		"TV_Sep", "TV_Oct", "TV_Nov", "TV_Dec",
	},
	ChannelFacebook: {"FB 1+", "FB 4+", "FB 6+"},
	ChannelYouTube:  {"Youtube 1+", "Youtube 4+", "Youtube 6+"},
}

// ParseChannel returns the channel named s. Matching is exact.
func ParseChannel(s string) (Channel, bool) {
	for _, ch := range Channels {
		if string(ch) == s {
			return ch, true
		}
	}
	return "", false
}

func (c Channel) String() string {
	return string(c)
}

// Models returns the selectable measurement models, or nil when the channel
// has no model choice.
func (c Channel) Models() []string {
	opts := channelModels[c]
	if opts == nil {
		return nil
	}
	out := make([]string, len(opts))
	copy(out, opts)
	return out
}

// HasModelChoice reports whether the form offers a model select for c.
func (c Channel) HasModelChoice() bool {
	return len(channelModels[c]) > 0
}

// DefaultModel is the model used when none was selected.
func (c Channel) DefaultModel() string {
	if opts := channelModels[c]; len(opts) > 0 {
		return opts[0]
	}
	return string(c)
}

// SupportsModel reports whether model may be sent for c.
func (c Channel) SupportsModel(model string) bool {
	opts := channelModels[c]
	if len(opts) == 0 {
		return model == string(c)
	}
	for _, m := range opts {
		if m == model {
			return true
		}
	}
	return false
}
