package seed

import (
	"math/rand/v2"

	"github.com/okian/maturity/internal/domain/model"
)

// Score profiles. Each picks a base level and a spread around it.
type profile struct {
	name   string
	base   float64
	spread float64
}

var profiles = []profile{
	{name: "nascent", base: 15, spread: 15},
	{name: "developing", base: 40, spread: 20},
	{name: "established", base: 65, spread: 15},
	{name: "leading", base: 88, spread: 12},
}

// Generator produces element score maps for a framework.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Scores returns a score in [0, 100] for every element of dims. All elements
// of one dimension share a profile so dimension scores spread out.
func (g *Generator) Scores(dims []model.Dimension) map[string]float64 {
	out := make(map[string]float64)
	for _, d := range dims {
		p := profiles[g.rng.IntN(len(profiles))]
		for _, e := range d.Elements {
			v := p.base + (g.rng.Float64()*2-1)*p.spread
			out[e.ID] = float64(int(clamp(v)))
		}
	}
	return out
}

func clamp(v float64) float64 {
	return min(max(v, 0), 100)
}
