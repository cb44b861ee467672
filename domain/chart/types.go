package chart

import (
	"fmt"

	"healthlab/domain/core"
	"healthlab/domain/health"
)

// Kind is the chart type of a Figure
type Kind string

const (
	KindHistogram Kind = "histogram"
	KindBoxPlot   Kind = "boxplot"
	KindBar       Kind = "bar"
)

// GridMode controls which gridlines are drawn
type GridMode string

const (
	GridNone GridMode = "none"
	GridY    GridMode = "y"
	GridBoth GridMode = "both"
)

// Bar is one labelled bar of a bar chart
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Figure describes a chart completely. It is a plain value: building or
// rendering one never touches another.
type Figure struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Grid   GridMode `json:"grid"`

	// BarEdges outlines histogram bars in black
	BarEdges bool `json:"bar_edges,omitempty"`

	Bins  []health.HistogramBin `json:"bins,omitempty"`
	Boxes []health.BoxSummary   `json:"boxes,omitempty"`
	Bars  []Bar                 `json:"bars,omitempty"`
}

// Validate checks that the figure carries data for its kind
func (f Figure) Validate() error {
	switch f.Kind {
	case KindHistogram:
		if len(f.Bins) == 0 {
			return fmt.Errorf("%w: histogram %q has no bins", core.ErrInvalidArgument, f.Title)
		}
	case KindBoxPlot:
		if len(f.Boxes) == 0 {
			return fmt.Errorf("%w: boxplot %q has no boxes", core.ErrInvalidArgument, f.Title)
		}
	case KindBar:
		if len(f.Bars) == 0 {
			return fmt.Errorf("%w: bar chart %q has no bars", core.ErrInvalidArgument, f.Title)
		}
	default:
		return fmt.Errorf("%w: unknown chart kind %q", core.ErrInvalidArgument, f.Kind)
	}
	return nil
}

// Artifact is a rendered figure on disk
type Artifact struct {
	ID     core.ArtifactID `json:"id"`
	Name   string          `json:"name"`
	Path   string          `json:"path"`
	Format string          `json:"format"`
	Kind   Kind            `json:"kind"`
	Title  string          `json:"title"`
}
