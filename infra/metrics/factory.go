package metrics

import (
	"github.com/kilianp07/jobsched/core/factory"
	coremetrics "github.com/kilianp07/jobsched/core/metrics"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterSink("nop", func(map[string]any) (coremetrics.Sink, error) {
		return coremetrics.NopSink{}, nil
	})

	// Records into the default registry, for programs that serve it.
	_ = coremetrics.RegisterSink("prometheus", func(map[string]any) (coremetrics.Sink, error) {
		return NewPromSink()
	})

	// Pushes after every run, for one-shot CLI invocations.
	_ = coremetrics.RegisterSink("pushgateway", func(conf map[string]any) (coremetrics.Sink, error) {
		var c struct {
			URL string `json:"url"`
			Job string `json:"job"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewPushSink(c.URL, c.Job)
	})

	_ = coremetrics.RegisterSink("influx", func(conf map[string]any) (coremetrics.Sink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})
}
