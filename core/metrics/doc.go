// Package metrics defines the sink interface used to record scheduling runs.
// Implementations such as PromSink and InfluxSink live in infra/metrics and
// register themselves with the factory so they can be selected from
// configuration. NewSink returns a MultiSink automatically when several
// sinks are configured.
package metrics
