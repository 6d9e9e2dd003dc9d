package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "casino_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	Settlements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_settlements_total",
		Help: "Money movements by flow and outcome",
	}, []string{"flow", "result"})

	PlatformFees = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_platform_fees_total",
		Help: "Platform fees collected, by currency",
	}, []string{"currency"})

	PayoutCompensations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casino_payout_compensations_total",
		Help: "Withdrawals re-credited after a failed payout",
	})

	StalePendingWithdrawals = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "casino_stale_pending_withdrawals",
		Help: "Withdrawals pending longer than the configured timeout",
	})

	LedgerEventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_ledger_events_processed_total",
		Help: "Ledger stream events handled by the stats worker",
	}, []string{"result"})
)

// Result labels.
const (
	ResultOK       = "ok"
	ResultReplayed = "replayed"
	ResultFailed   = "failed"
)

func ObserveSettlement(flow string, err error, replayed bool) {
	switch {
	case err != nil:
		Settlements.WithLabelValues(flow, ResultFailed).Inc()
	case replayed:
		Settlements.WithLabelValues(flow, ResultReplayed).Inc()
	default:
		Settlements.WithLabelValues(flow, ResultOK).Inc()
	}
}

func AddPlatformFee(currency string, fee decimal.Decimal) {
	if fee.IsPositive() {
		PlatformFees.WithLabelValues(currency).Add(fee.InexactFloat64())
	}
}

// Middleware records request count and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		httpLatency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		httpReqTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		return err
	}
}
