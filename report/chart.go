// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"math"

	"github.com/danielhkuo/mmm-reach/models"
)

const (
	ChartRadius = 120.0
	ChartCenter = 140.0
	ChartSize   = 2 * ChartCenter
)

// Palette is cycled across slices in response order.
var Palette = []string{"#ff9999", "#66b3ff", "#99ff99", "#ffcc99", "#c2c2f0", "#f7b7b7", "#c2f0c2"}

// Slice is one pie segment. Path is an SVG path for the wedge; Full marks a
// slice that covers the whole circle and must be drawn as one. Slices with no
// share have neither and only appear in the legend.
type Slice struct {
	Channel string  `json:"channel"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Share   float64 `json:"share"`
	Color   string  `json:"color"`
	Path    string  `json:"path,omitempty"`
	Full    bool    `json:"full,omitempty"`
	Reach   string  `json:"reach"`
	Budget  string  `json:"budget"`
}

type Chart struct {
	Slices     []Slice `json:"slices"`
	Radius     float64 `json:"radius"`
	Center     float64 `json:"center"`
	Size       float64 `json:"size"`
	TotalReach string  `json:"total_reach"`
}

// BuildChart computes one slice per result, clockwise from twelve o'clock.
func BuildChart(res models.AllocationResult) Chart {
	chart := Chart{
		Slices:     make([]Slice, 0, len(res.Results)),
		Radius:     ChartRadius,
		Center:     ChartCenter,
		Size:       ChartSize,
		TotalReach: FormatPercent(res.TotalReach),
	}

	angle := -math.Pi / 2
	for i, r := range res.Results {
		share := Share(r.Budget, res.TotalBudget)
		s := Slice{
			Channel: r.Channel,
			Label:   fmt.Sprintf("%s (%s)", r.Channel, FormatPercent(share)),
			Value:   r.Budget,
			Share:   share,
			Color:   Palette[i%len(Palette)],
			Reach:   FormatPercent(r.Reach),
			Budget:  FormatCurrency(r.Budget),
		}

		sweep := share / 100 * 2 * math.Pi
		switch {
		case share >= 99.995:
			s.Full = true
		case sweep > 0:
			s.Path = wedgePath(angle, angle+sweep)
		}
		angle += sweep

		chart.Slices = append(chart.Slices, s)
	}

	return chart
}

func wedgePath(from, to float64) string {
	x1 := ChartCenter + ChartRadius*math.Cos(from)
	y1 := ChartCenter + ChartRadius*math.Sin(from)
	x2 := ChartCenter + ChartRadius*math.Cos(to)
	y2 := ChartCenter + ChartRadius*math.Sin(to)

	largeArc := 0
	if to-from > math.Pi {
		largeArc = 1
	}

	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.0f %.0f 0 %d 1 %.2f %.2f Z",
		ChartCenter, ChartCenter, x1, y1, ChartRadius, ChartRadius, largeArc, x2, y2)
}
