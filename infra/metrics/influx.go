package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/jobsched/core/metrics"
	"github.com/kilianp07/jobsched/infra/logger"
)

// InfluxSink writes run summaries to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes the run as a scheduler_run point.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, runPoint(ev))
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() { s.client.Close() }

func runPoint(ev coremetrics.RunEvent) *write.Point {
	return write.NewPointWithMeasurement("scheduler_run").
		AddTag("algorithm", ev.Algorithm).
		AddTag("run_id", ev.RunID).
		AddField("jobs", ev.Jobs).
		AddField("machines", ev.Machines).
		AddField("late_jobs", ev.LateJobs).
		AddField("chunks", ev.Chunks).
		AddField("makespan", round3(ev.Makespan)).
		AddField("duration_us", ev.Duration.Microseconds()).
		SetTime(ev.Time)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
