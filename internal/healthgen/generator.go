package healthgen

import (
	"math"
	"math/rand/v2"

	"healthlab/domain/health"

	"gonum.org/v1/gonum/stat/distuv"
)

// Config configures the synthetic health data generator
type Config struct {
	Count       int     `json:"count"`
	MaleShare   float64 `json:"male_share"`
	SmokerShare float64 `json:"smoker_share"`
	DiseaseBase float64 `json:"disease_base"`
	MissingRate float64 `json:"missing_rate"` // chance that any numeric cell is left empty
	OutlierRate float64 `json:"outlier_rate"` // chance of an extreme weight
	Seed        uint64  `json:"seed"`
}

// DefaultConfig returns sensible defaults for health data generation
func DefaultConfig() Config {
	return Config{
		Count:       500,
		MaleShare:   0.5,
		SmokerShare: 0.25,
		DiseaseBase: 0.08,
		OutlierRate: 0.01,
		Seed:        42,
	}
}

// Generator generates plausible health records
type Generator struct {
	config Config
	rng    *rand.Rand
	src    rand.Source
}

// NewGenerator creates a new health data generator
func NewGenerator(config Config) *Generator {
	src := rand.NewPCG(config.Seed, config.Seed^0x9e3779b97f4a7c15)
	return &Generator{
		config: config,
		rng:    rand.New(src),
		src:    src,
	}
}

// Generate produces config.Count records
func (g *Generator) Generate() []health.Record {
	records := make([]health.Record, g.config.Count)
	for i := range records {
		records[i] = g.generateRecord()
	}
	return records
}

// GenerateDataset wraps Generate in a Dataset
func (g *Generator) GenerateDataset() (*health.Dataset, error) {
	return health.NewDataset("synthetic", g.Generate())
}

func (g *Generator) generateRecord() health.Record {
	male := g.rng.Float64() < g.config.MaleShare
	smoker := g.rng.Float64() < g.config.SmokerShare

	age := g.normal(50, 15, 18, 90)
	var height, weight float64
	if male {
		height = g.normal(178, 7, 150, 205)
		weight = g.normal(84, 12, 50, 140)
	} else {
		height = g.normal(165, 6.5, 140, 190)
		weight = g.normal(68, 11, 40, 120)
	}
	if g.rng.Float64() < g.config.OutlierRate {
		weight += 60
	}

	// blood pressure and cholesterol drift upward with age
	bp := g.normal(110+0.5*age, 12, 85, 210)
	chol := g.normal(4.2+0.02*age, 0.8, 2.5, 9)

	// disease risk follows age and smoking
	risk := g.config.DiseaseBase + 0.003*(age-50)
	if smoker {
		risk += 0.1
	}
	risk = math.Min(math.Max(risk, 0), 1)
	disease := distuv.Bernoulli{P: risk, Src: g.src}.Rand()

	rec := health.Record{
		Age:         math.Round(age),
		Height:      math.Round(height*10) / 10,
		Weight:      math.Round(weight*10) / 10,
		SystolicBP:  math.Round(bp),
		Cholesterol: math.Round(chol*100) / 100,
		Sex:         "Female",
		Smoker:      "no",
		Disease:     int(disease),
	}
	if male {
		rec.Sex = "Male"
	}
	if smoker {
		rec.Smoker = "yes"
	}

	if g.config.MissingRate > 0 {
		for _, dst := range []*float64{&rec.Age, &rec.Height, &rec.Weight, &rec.SystolicBP, &rec.Cholesterol} {
			if g.rng.Float64() < g.config.MissingRate {
				*dst = math.NaN()
			}
		}
	}
	return rec
}

// normal draws from N(mu, sigma) clamped to [lo, hi]
func (g *Generator) normal(mu, sigma, lo, hi float64) float64 {
	v := distuv.Normal{Mu: mu, Sigma: sigma, Src: g.src}.Rand()
	return math.Min(math.Max(v, lo), hi)
}
