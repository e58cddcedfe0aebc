package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue sums the counter samples of name whose labels include want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestRecorder_RecordEstimate(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordEstimate("api", 14, 3595.33, []string{"assembly_not_found", "assembly_not_found"}, 2*time.Millisecond)
	r.RecordEstimate("cli", 3, 500, nil, time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, reg, "reno_estimates_total", map[string]string{"source": "api"}))
	assert.Equal(t, 2.0, counterValue(t, reg, "reno_estimates_total", nil))
	assert.Equal(t, 17.0, counterValue(t, reg, "reno_line_items_total", nil))
	assert.Equal(t, 2.0, counterValue(t, reg, "reno_estimate_diagnostics_total", map[string]string{"code": "assembly_not_found"}))
}

func TestRecorder_RecordStore(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordStore("save", nil)
	r.RecordStore("save", errors.New("disk full"))
	r.RecordStore("save", nil)

	assert.Equal(t, 2.0, counterValue(t, reg, "reno_store_operations_total", map[string]string{"op": "save", "status": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "reno_store_operations_total", map[string]string{"status": "error"}))
}

func TestNew_PanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
