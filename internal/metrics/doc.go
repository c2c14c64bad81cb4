// Package metrics records request statistics for one CLI invocation.
//
// A single [Collector] is created per invocation and handed to the API
// client, which records every request's latency and error state. Commands
// running with --verbose log the aggregated summary when they finish.
//
//	collector := metrics.NewCollector()
//	collector.RecordRequest(latency, err)
//	stats := collector.Stats(collector.Elapsed())
//
// Latencies go into an HDR histogram covering 1µs to 60s at 3 significant
// figures. Failures are counted by Go error type; [FriendlyErrorName]
// renders those type keys for display.
//
// The Collector is safe for concurrent use, though the CLI issues requests
// one at a time.
package metrics
