package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"healthlab/internal/healthgen"
)

func main() {
	out := flag.String("out", "health_data.xlsx", "output file path")
	rows := flag.Int("rows", 500, "number of people")
	format := flag.String("format", "", "output format: xlsx or csv (default inferred from -out)")
	seed := flag.Uint64("seed", 42, "RNG seed (deterministic)")
	missing := flag.Float64("missing", 0, "chance that a numeric cell is left empty")
	flag.Parse()

	if *rows <= 0 {
		fmt.Fprintln(os.Stderr, "rows must be > 0")
		os.Exit(2)
	}
	if *missing < 0 || *missing >= 1 {
		fmt.Fprintln(os.Stderr, "missing must be in [0, 1)")
		os.Exit(2)
	}

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	if fmtName == "" {
		switch strings.ToLower(filepath.Ext(*out)) {
		case ".csv":
			fmtName = "csv"
		default:
			fmtName = "xlsx"
		}
	}

	cfg := healthgen.DefaultConfig()
	cfg.Count = *rows
	cfg.Seed = *seed
	cfg.MissingRate = *missing
	records := healthgen.NewGenerator(cfg).Generate()

	switch fmtName {
	case "csv":
		if err := healthgen.WriteCSV(*out, records); err != nil {
			fmt.Fprintln(os.Stderr, "error writing csv:", err)
			os.Exit(1)
		}
	case "xlsx":
		if err := healthgen.WriteXLSX(*out, records); err != nil {
			fmt.Fprintln(os.Stderr, "error writing xlsx:", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "unsupported format:", fmtName)
		os.Exit(2)
	}

	fmt.Printf("Health dataset written: %s\n", *out)
	fmt.Printf("Columns: %d | Rows: %d\n", len(healthgen.Header()), len(records))
}
