package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/orosp/dpll/dpll"
	"github.com/orosp/dpll/output"
)

const monitorUsage = "usage: dpll monitor"

// runMonitor drives the Notification Loop (§4.10): it opens the output
// array scope, subscribes to the monitor multicast group, and renders every
// delivered event until ctx is cancelled. A per-event decode error is
// soft — logged and skipped, the loop keeps running — matching the
// propagation policy §7 gives the notification loop specifically.
func runMonitor(ctx context.Context, client *dpll.Client, sink output.Sink, pollInterval time.Duration) error {
	sink.OpenArray("monitor")

	err := client.Monitor(ctx, pollInterval, func(cmd dpll.Command, body []byte) {
		ev, derr := dpll.DecodeEvent(cmd, body)
		if derr != nil {
			slog.Warn("dpll: dropping unrenderable notification", "err", derr)
			return
		}
		output.RenderEvent(sink, *ev)
	})
	sink.CloseArray()

	// Finish is what actually writes a jsonSink's buffered tree to the
	// underlying io.Writer (textSink's Finish is a no-op) — it must run
	// even on a clean ctx-cancelled exit, or -j monitor produces no
	// stdout output at all.
	if ferr := sink.Finish(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}
