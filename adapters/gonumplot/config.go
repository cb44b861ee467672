package gonumplot

import (
	"fmt"
	"strings"

	"healthlab/domain/core"

	"gonum.org/v1/plot/vg"
)

// SupportedFormats lists the file formats the renderer writes
var SupportedFormats = []string{"png", "svg", "pdf"}

// RendererConfig holds output settings for rendered charts
type RendererConfig struct {
	OutputDir string  `json:"output_dir"`
	Format    string  `json:"format"`    // png, svg or pdf
	WidthCm   float64 `json:"width_cm"`  // canvas width
	HeightCm  float64 `json:"height_cm"` // canvas height
}

// DefaultRendererConfig returns sensible defaults
func DefaultRendererConfig(outputDir string) RendererConfig {
	return RendererConfig{
		OutputDir: outputDir,
		Format:    "png",
		WidthCm:   16,
		HeightCm:  12,
	}
}

// Validate checks the format and canvas size
func (c RendererConfig) Validate() error {
	if c.OutputDir == "" {
		return core.NewInvalidArgumentError("output dir", "is required")
	}
	if c.WidthCm <= 0 || c.HeightCm <= 0 {
		return core.NewInvalidArgumentError("canvas size", fmt.Sprintf("must be positive, got %gx%g cm", c.WidthCm, c.HeightCm))
	}
	for _, f := range SupportedFormats {
		if strings.EqualFold(c.Format, f) {
			return nil
		}
	}
	return core.NewInvalidArgumentError("format", fmt.Sprintf("%q is not one of %s", c.Format, strings.Join(SupportedFormats, ", ")))
}

func (c RendererConfig) width() vg.Length  { return vg.Length(c.WidthCm) * vg.Centimeter }
func (c RendererConfig) height() vg.Length { return vg.Length(c.HeightCm) * vg.Centimeter }
