package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/common/expfmt"

	"github.com/dd0wney/portgen/pkg/nodename"
)

// RecordNodes adds nodes to the allocation metrics. Recording a node twice
// leaves its port unchanged but counts it again in the totals.
func (r *Registry) RecordNodes(nodes ...nodename.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range nodes {
		r.NodePort.WithLabelValues(
			n.Name(),
			n.Role.String(),
			n.Chain.String(),
			n.Network.String(),
			strconv.Itoa(n.Instance),
			n.Addr().String(),
		).Set(float64(n.Port()))

		r.NodesTotal.WithLabelValues(n.Network.String(), n.Role.String()).Inc()

		key := n.Chain.String() + "/" + n.Network.String()
		if _, seen := r.chains[key]; seen {
			continue
		}
		r.chains[key] = struct{}{}
		r.ChainsTotal.WithLabelValues(n.Network.String(), chainKind(n.Chain)).Inc()
	}
}

func chainKind(c nodename.Chain) string {
	if c.IsCustom() {
		return "custom"
	}
	return "system"
}

// WriteText writes every metric in the Prometheus text exposition format,
// as read by the node_exporter textfile collector.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
