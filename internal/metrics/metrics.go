package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics métricas de domínio das ordens de serviço.
type OrderMetrics struct {
	ordersCreated      prometheus.Counter
	statusTransitions  *prometheus.CounterVec
	validationFailures prometheus.Counter
	sequenceRetries    prometheus.Counter
	geocodeFailures    prometheus.Counter
}

// NewOrderMetrics cria as métricas no registry padrão.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewOrderMetricsWithRegisterer permite injetar um registry próprio em testes.
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "apoio_orders_created_total",
			Help: "Total de ordens de serviço criadas",
		}),
		statusTransitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "apoio_order_status_transitions_total",
			Help: "Total de transições de status aplicadas, por status de destino",
		}, []string{"to"}),
		validationFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "apoio_order_validation_failures_total",
			Help: "Total de criações/edições rejeitadas na validação",
		}),
		sequenceRetries: registerCounter(registerer, prometheus.CounterOpts{
			Name: "apoio_order_sequence_retries_total",
			Help: "Total de tentativas extras do gerador de numero_ordem por conflito",
		}),
		geocodeFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "apoio_geocode_failures_total",
			Help: "Total de falhas na geocodificação de endereços",
		}),
	}
}

func (m *OrderMetrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *OrderMetrics) StatusTransition(to string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(to).Inc()
}

func (m *OrderMetrics) ValidationFailure() {
	if m == nil {
		return
	}
	m.validationFailures.Inc()
}

func (m *OrderMetrics) SequenceRetry() {
	if m == nil {
		return
	}
	m.sequenceRetries.Inc()
}

func (m *OrderMetrics) GeocodeFailure() {
	if m == nil {
		return
	}
	m.geocodeFailures.Inc()
}

// registerCounter registra o counter ignorando duplicação (útil quando dois
// componentes compartilham o registry padrão).
func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := registerer.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return c
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return c
}
