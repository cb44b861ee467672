package testkit

import (
	"context"
	"math"
	"path/filepath"
	"sort"
	"sync"

	"healthlab/domain/chart"
	"healthlab/domain/core"
	"healthlab/domain/health"
	"healthlab/internal/healthgen"
)

// SmallRecords returns four hand-written records covering both sexes, both
// smoker values and a 0.5 disease rate
func SmallRecords() []health.Record {
	return []health.Record{
		{Age: 54, Height: 178, Weight: 82, SystolicBP: 138, Cholesterol: 5.6, Sex: "Male", Smoker: "yes", Disease: 1},
		{Age: 38, Height: 162, Weight: 61, SystolicBP: 121, Cholesterol: 4.9, Sex: "Female", Smoker: "no", Disease: 0},
		{Age: 61, Height: 181, Weight: 95, SystolicBP: 152, Cholesterol: 6.3, Sex: "Male", Smoker: "yes", Disease: 1},
		{Age: 45, Height: 168, Weight: 70, SystolicBP: 126, Cholesterol: 5.1, Sex: "Female", Smoker: "yes", Disease: 0},
	}
}

// SmallDataset wraps SmallRecords
func SmallDataset() *health.Dataset {
	ds, err := health.NewDataset("small", SmallRecords())
	if err != nil {
		panic(err)
	}
	return ds
}

// SyntheticDataset generates count records with a fixed seed
func SyntheticDataset(count int, seed uint64) *health.Dataset {
	cfg := healthgen.DefaultConfig()
	cfg.Count = count
	cfg.Seed = seed
	ds, err := healthgen.NewGenerator(cfg).GenerateDataset()
	if err != nil {
		panic(err)
	}
	return ds
}

// WithMissing returns a copy of records where every numeric cell of row i is NaN
func WithMissing(records []health.Record, i int) []health.Record {
	out := make([]health.Record, len(records))
	copy(out, records)
	nan := math.NaN()
	out[i].Age, out[i].Height, out[i].Weight, out[i].SystolicBP, out[i].Cholesterol = nan, nan, nan, nan, nan
	return out
}

// RecordingRenderer stores figures instead of drawing them. Safe for concurrent use.
type RecordingRenderer struct {
	mu      sync.Mutex
	dir     string
	figures map[string]chart.Figure
}

// NewRecordingRenderer creates a renderer that pretends to write into dir
func NewRecordingRenderer(dir string) *RecordingRenderer {
	return &RecordingRenderer{
		dir:     dir,
		figures: make(map[string]chart.Figure),
	}
}

// Render records fig under name
func (r *RecordingRenderer) Render(ctx context.Context, fig chart.Figure, name string) (chart.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return chart.Artifact{}, err
	}
	if err := fig.Validate(); err != nil {
		return chart.Artifact{}, err
	}

	r.mu.Lock()
	r.figures[name] = fig
	r.mu.Unlock()

	return chart.Artifact{
		ID:     core.NewArtifactID(),
		Name:   name,
		Path:   filepath.Join(r.dir, name+".png"),
		Format: "png",
		Kind:   fig.Kind,
		Title:  fig.Title,
	}, nil
}

// Figure returns the figure recorded under name
func (r *RecordingRenderer) Figure(name string) (chart.Figure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fig, ok := r.figures[name]
	return fig, ok
}

// Names returns the recorded names in order
func (r *RecordingRenderer) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.figures))
	for n := range r.figures {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
