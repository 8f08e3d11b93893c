package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the allocation metrics exported for a set of nodes
type Registry struct {
	// Per-node allocation
	NodePort *prometheus.GaugeVec

	// Totals
	NodesTotal  *prometheus.GaugeVec
	ChainsTotal *prometheus.GaugeVec

	registry *prometheus.Registry
	mu       sync.Mutex
	chains   map[string]struct{}
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		chains:   make(map[string]struct{}),
	}

	r.initAllocationMetrics()

	return r
}
