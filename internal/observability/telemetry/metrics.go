package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Métricas de negócio
	InterpretationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aloy_nlp_interpretations_total",
		Help: "Total de mensagens interpretadas",
	}, []string{"intent", "command_type"})

	DirectCommandsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aloy_nlp_direct_commands_total",
		Help: "Comandos resolvidos sem consultar o modelo remoto",
	})

	InterpretationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aloy_nlp_interpretation_latency_seconds",
		Help:    "Latência do pipeline de interpretação",
		Buckets: prometheus.DefBuckets,
	})

	// Métricas do modelo remoto
	ModelRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aloy_nlp_model_requests_total",
		Help: "Chamadas ao serviço de completion",
	}, []string{"mode", "status"})

	ModelRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aloy_nlp_model_retries_total",
		Help: "Novas tentativas após falha de transporte",
	})

	ModelFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aloy_nlp_model_fallbacks_total",
		Help: "Respostas de fallback geradas localmente",
	}, []string{"mode"})

	ModelLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aloy_nlp_model_latency_seconds",
		Help:    "Latência das chamadas ao modelo remoto",
		Buckets: prometheus.DefBuckets,
	})
)
