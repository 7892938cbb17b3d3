// Package metrics defines and registers all custom Prometheus metrics for the
// shipment tracker API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shiptrack"

// ShipmentsCreatedTotal counts newly created shipments. Idempotent replays of
// the same Idempotency-Key are not counted again.
var ShipmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created.",
	},
)

// StatusTransitionsTotal counts applied status transitions.
// Label:
//   - status: the new shipment status (e.g. "IN_TRANSIT")
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of shipment status transitions applied, by target status.",
	},
	[]string{"status"},
)

// EventsAppendedTotal counts tracking events appended directly to a shipment
// history, excluding events generated by status transitions.
// Label:
//   - event: the event type (e.g. "PICKED_UP")
var EventsAppendedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_appended_total",
		Help:      "Total number of tracking events appended, by event type.",
	},
	[]string{"event"},
)

// LoginFailuresTotal counts rejected login attempts.
var LoginFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed login attempts.",
	},
)
