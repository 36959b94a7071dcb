package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/hellofriends/rights-engine/pkg/rights/render"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rights_queries_total",
		Help: "Handled queries by terminal kind.",
	}, []string{"kind"})

	translationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rights_translation_fallback_total",
		Help: "Responses that fell back to the default language.",
	})
)

// observe records one handled query.
func observe(resp render.Response) {
	queriesTotal.WithLabelValues(string(resp.Kind)).Inc()
	if resp.TranslationFallback {
		translationFallbacks.Inc()
	}
}

// metricsHandler adapts the Prometheus handler to fiber.
func metricsHandler() fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		h(c.Context())
		return nil
	}
}
