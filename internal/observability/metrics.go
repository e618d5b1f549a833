package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full or its channel already closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibehub_websocket_backpressure_drops_total",
		Help: "Messages dropped due to websocket client backpressure",
	}, []string{"hub", "reason"})

	// SweeperDeletions counts unverified accounts removed by the background sweep.
	SweeperDeletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vibehub_sweeper_deletions_total",
		Help: "Unverified user accounts deleted by the maintenance sweeper",
	})

	// ActiveWebSockets tracks currently open websocket connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vibehub_active_websockets",
		Help: "Currently open websocket connections",
	})

	// FeedPagesServed counts home feed pages served, labelled by filter.
	FeedPagesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibehub_feed_pages_served_total",
		Help: "Home feed pages served",
	}, []string{"filter"})
)
