// Package telemetry groups the observability packages of the fate
// service: structured logging (telemetry/logging) and Prometheus
// metrics (telemetry/metrics).
package telemetry
