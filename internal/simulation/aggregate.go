package simulation

import (
	"fmt"
	"math"
	"sort"

	"github.com/aretw0/aeon/pkg/domain"
)

// Ensemble holds the recorded particle values for every node at each report
// day: node -> report-day index -> particle.
type Ensemble struct {
	reportDays []int
	particles  int
	samples    map[string][][]float64
}

func newEnsemble(g *domain.Graph, reportDays []int, particles int) *Ensemble {
	samples := make(map[string][][]float64, g.Len())
	for _, n := range g.Nodes() {
		perDay := make([][]float64, len(reportDays))
		for i := range perDay {
			perDay[i] = make([]float64, particles)
		}
		samples[n.ID] = perDay
	}
	return &Ensemble{
		reportDays: reportDays,
		particles:  particles,
		samples:    samples,
	}
}

// record copies a particle's report-day values out of its full history.
func (e *Ensemble) record(particle int, hist map[string][]float64) {
	for id, h := range hist {
		for i, day := range e.reportDays {
			e.samples[id][i][particle] = h[day]
		}
	}
}

// ReportDays returns the sampled days.
func (e *Ensemble) ReportDays() []int {
	return e.reportDays
}

// Particles returns the ensemble size.
func (e *Ensemble) Particles() int {
	return e.particles
}

// Values returns the particle values for a node at the i-th report day.
func (e *Ensemble) Values(node string, i int) []float64 {
	return e.samples[node][i]
}

// Point is one aggregated report day for a node.
type Point struct {
	Day  int
	Mean float64
	Low  float64 // empirical 2.5th percentile
	High float64 // empirical 97.5th percentile
}

// Summarize collapses the ensemble into per-day mean and empirical 95%
// confidence bounds for the given nodes. No parametric assumption is made:
// the bounds are order statistics of the sampled set.
//
// A NaN anywhere in the ensemble is an internal invariant violation and
// fails loudly rather than being coerced.
func Summarize(e *Ensemble, nodes []string) (map[string][]Point, error) {
	out := make(map[string][]Point, len(nodes))
	scratch := make([]float64, e.particles)

	for _, node := range nodes {
		perDay, ok := e.samples[node]
		if !ok {
			return nil, fmt.Errorf("node %q not present in ensemble", node)
		}

		points := make([]Point, len(e.reportDays))
		for i, day := range e.reportDays {
			values := perDay[i]

			sum := 0.0
			for _, v := range values {
				if math.IsNaN(v) {
					return nil, fmt.Errorf("NaN in ensemble for node %q at day %d", node, day)
				}
				sum += v
			}
			mean := sum / float64(len(values))

			copy(scratch, values)
			sort.Float64s(scratch)

			points[i] = Point{
				Day:  day,
				Mean: mean,
				Low:  percentile(scratch, 2.5),
				High: percentile(scratch, 97.5),
			}
		}
		out[node] = points
	}
	return out, nil
}

// percentile computes the q-th percentile of sorted data using linear
// interpolation between closest ranks.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
