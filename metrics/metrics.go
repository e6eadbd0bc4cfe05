// Package metrics exports search progress to Prometheus.
//
// Collector owns the metric vectors; Run binds them to one (instance, run)
// label pair and returns a tsp.Observer for that run. Prometheus metrics are
// goroutine-safe, so independent runs executing in parallel may share one
// Collector while each keeps its own observer.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/tspdeep/tsp"
)

// namespace prefixes every metric name.
const namespace = "tspdeep"

var runLabels = []string{"instance", "run"}

// Collector holds the metric vectors of a process.
type Collector struct {
	constructions  *prometheus.CounterVec
	improvements   *prometheus.CounterVec
	gain           *prometheus.CounterVec
	depthIncreases *prometheus.CounterVec
	searches       *prometheus.CounterVec
	initialLength  *prometheus.GaugeVec
	length         *prometheus.GaugeVec
	depth          *prometheus.GaugeVec
	lowerBound     *prometheus.GaugeVec
	passes         prometheus.Histogram
}

// NewCollector registers the metric vectors with reg.
// Registering twice with the same registerer panics, as with promauto.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)

	return &Collector{
		constructions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "constructions_total",
			Help:      "Greedy tours constructed.",
		}, runLabels),
		improvements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "improvements_total",
			Help:      "Improving moves committed by the local search.",
		}, runLabels),
		gain: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gain_total",
			Help:      "Sum of tour-length reductions of committed moves.",
		}, runLabels),
		depthIncreases: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "depth_increases_total",
			Help:      "Depth bound increases after fruitless passes.",
		}, runLabels),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Completed local-search calls.",
		}, runLabels),
		initialLength: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "initial_tour_length",
			Help:      "Length of the greedy tour.",
		}, runLabels),
		length: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tour_length",
			Help:      "Current committed tour length.",
		}, runLabels),
		depth: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "search_depth",
			Help:      "Current depth bound of the local search.",
		}, runLabels),
		lowerBound: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lower_bound",
			Help:      "Held-Karp lower bound of the instance.",
		}, []string{"instance"}),
		passes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_passes",
			Help:      "Passes over all start nodes per local-search call.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

// Run returns an observer whose samples carry the given instance and run labels.
func (c *Collector) Run(instance string, run int) tsp.Observer {
	var l = prometheus.Labels{"instance": instance, "run": strconv.Itoa(run)}

	return &runObserver{
		c:              c,
		constructions:  c.constructions.With(l),
		improvements:   c.improvements.With(l),
		gain:           c.gain.With(l),
		depthIncreases: c.depthIncreases.With(l),
		searches:       c.searches.With(l),
		initialLength:  c.initialLength.With(l),
		length:         c.length.With(l),
		depth:          c.depth.With(l),
	}
}

// SetLowerBound publishes the lower bound computed for instance.
func (c *Collector) SetLowerBound(instance string, value int64) {
	c.lowerBound.WithLabelValues(instance).Set(float64(value))
}

// runObserver implements tsp.Observer with pre-resolved children so that
// callbacks never hash label values.
type runObserver struct {
	c              *Collector
	constructions  prometheus.Counter
	improvements   prometheus.Counter
	gain           prometheus.Counter
	depthIncreases prometheus.Counter
	searches       prometheus.Counter
	initialLength  prometheus.Gauge
	length         prometheus.Gauge
	depth          prometheus.Gauge
}

var _ tsp.Observer = (*runObserver)(nil)

func (r *runObserver) ConstructionDone(length int64) {
	r.constructions.Inc()
	r.initialLength.Set(float64(length))
	r.length.Set(float64(length))
}

func (r *runObserver) Improved(length, gain int64, depth int) {
	r.improvements.Inc()
	r.gain.Add(float64(gain))
	r.length.Set(float64(length))
	r.depth.Set(float64(depth))
}

func (r *runObserver) DepthIncreased(depth int) {
	r.depthIncreases.Inc()
	r.depth.Set(float64(depth))
}

func (r *runObserver) SearchDone(length int64, passes int) {
	r.searches.Inc()
	r.length.Set(float64(length))
	r.c.passes.Observe(float64(passes))
}
