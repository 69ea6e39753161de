package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Storefront records cart and order activity. A nil *Storefront is valid
// and records nothing.
type Storefront struct {
	cartMutations     *prometheus.CounterVec
	ordersCreated     prometheus.Counter
	statusTransitions *prometheus.CounterVec
	sanitizedFields   prometheus.Counter
}

// NewStorefront registers the storefront metrics on reg.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return nil
	}
	s := &Storefront{
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sutra_cart_mutations_total",
			Help: "Persisted cart mutations by operation.",
		}, []string{"op"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sutra_orders_created_total",
			Help: "Orders created at checkout.",
		}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sutra_order_status_appends_total",
			Help: "Status history entries appended, by target status.",
		}, []string{"status"}),
		sanitizedFields: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sutra_order_fields_defaulted_total",
			Help: "Order fields replaced by defaults while reading stored records.",
		}),
	}
	reg.MustRegister(s.cartMutations, s.ordersCreated, s.statusTransitions, s.sanitizedFields)
	return s
}

func (s *Storefront) CartMutation(op string) {
	if s == nil {
		return
	}
	s.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func (s *Storefront) OrderCreated() {
	if s == nil {
		return
	}
	s.ordersCreated.Inc()
}

func (s *Storefront) StatusAppended(status string) {
	if s == nil {
		return
	}
	s.statusTransitions.WithLabelValues(normalizeLabel(status)).Inc()
}

func (s *Storefront) FieldsDefaulted(n int) {
	if s == nil || n <= 0 {
		return
	}
	s.sanitizedFields.Add(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
