package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAllocationMetrics() {
	r.NodePort = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portgen_node_port",
			Help: "Port allocated to a node",
		},
		[]string{"name", "role", "chain", "network", "instance", "address"},
	)

	r.NodesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portgen_nodes_total",
			Help: "Number of allocated nodes",
		},
		[]string{"network", "role"},
	)

	r.ChainsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portgen_chains_total",
			Help: "Number of chains with allocated nodes",
		},
		[]string{"network", "kind"}, // system, custom
	)
}
