package ports

import (
	"context"

	"healthlab/domain/chart"
)

// ChartRenderer turns a figure into an artifact (a file on disk for the plot adapter)
type ChartRenderer interface {
	// Render draws fig and stores it under name. Each call uses a fresh canvas.
	Render(ctx context.Context, fig chart.Figure, name string) (chart.Artifact, error)
}
