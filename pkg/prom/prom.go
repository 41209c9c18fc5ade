package prom

import (
	"fmt"
	"sync"
	"time"

	xhttp "github.com/aminrz/transfer-registry/pkg/http"
	"github.com/aminrz/transfer-registry/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	SystemHTTP     = "http"
	SystemRegistry = "registry"
)

const (
	MetricRequestDuration = "request_duration_seconds"
	MetricEntityOps       = "entity_operations_total"
)

var lockCreateMetricLock = &sync.Mutex{}
var namespace = "none"

var MetricSystemEnabled = false

var MetricCollectionCounterVec = make(map[string]*prometheus.CounterVec)
var MetricCollectionHistogramVec = make(map[string]*prometheus.HistogramVec)

var defaultLabels prometheus.Labels

func Create(host string, env string, nameSpace string) error {
	defaultLabels = make(prometheus.Labels)
	defaultLabels["env"] = env
	defaultLabels["instance"] = host
	namespace = nameSpace
	MetricSystemEnabled = true

	var err error
	hasError := func(e error) {
		if err == nil && e != nil {
			err = e
		}
	}

	hasError(createHistogramVec(SystemHTTP, MetricRequestDuration, []string{"method", "status"}))
	hasError(createCounterVec(SystemRegistry, MetricEntityOps, []string{"entity", "operation", "outcome"}))

	return err
}

// ObserveRequestDuration records the latency of one handled HTTP request.
func ObserveRequestDuration(method string, status int, d time.Duration) {
	if !MetricSystemEnabled {
		return
	}
	m, ok := MetricCollectionHistogramVec[SystemHTTP+MetricRequestDuration]
	if !ok {
		return
	}
	m.WithLabelValues(method, fmt.Sprintf("%d", status)).Observe(d.Seconds())
}

// CountEntityOp counts one repository-level operation per entity and outcome.
func CountEntityOp(entity, operation, outcome string) {
	if !MetricSystemEnabled {
		return
	}
	m, ok := MetricCollectionCounterVec[SystemRegistry+MetricEntityOps]
	if !ok {
		return
	}
	m.WithLabelValues(entity, operation, outcome).Inc()
}

// Middleware feeds the request-duration histogram. A no-op until Create
// has run.
func Middleware(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		ObserveRequestDuration(string(ctx.Method()), ctx.Response.StatusCode(), time.Since(start))
	}
}

func ListenAndServe(port string, url string) {
	hh := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s := xhttp.CreateServer()
	s.GET(url, hh)
	logger.Info("[metrics-server] listening...", "url", url)
	if err := s.ListenAndServe(port); err != nil {
		logger.Panic("[metrics-server] http listen error", "error", err)
	}
}

func createCounterVec(subsystem, name string, labels []string) error {
	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()
	MetricCollectionCounterVec[subsystem+name] = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        "",
		ConstLabels: defaultLabels,
	}, labels)
	return prometheus.Register(MetricCollectionCounterVec[subsystem+name])
}

func createHistogramVec(subsystem, name string, labels []string) error {
	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()
	MetricCollectionHistogramVec[subsystem+name] = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        "",
		ConstLabels: defaultLabels,
	}, labels)
	return prometheus.Register(MetricCollectionHistogramVec[subsystem+name])
}
