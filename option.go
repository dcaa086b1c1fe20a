package jsrepl

import (
	"github.com/viant/jsrepl/model/entry"
	"github.com/viant/jsrepl/model/operation"
	"github.com/viant/jsrepl/policy"
	"github.com/viant/jsrepl/service/dao"
	"github.com/viant/jsrepl/service/messaging"
	"github.com/viant/jsrepl/service/vfs"
	"github.com/viant/jsrepl/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the service
type Option func(s *Service)

// WithConfig replaces the default configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithEntryDAO sets the durable entry store backing the file system
func WithEntryDAO(dao dao.Service[string, entry.Entry]) Option {
	return func(s *Service) {
		s.runtime.entryDAO = dao
	}
}

// WithQueue sets the operation queue consumed by the processor
func WithQueue(queue messaging.Queue[operation.Operation]) Option {
	return func(s *Service) {
		s.runtime.queue = queue
	}
}

// WithSeed replaces the default seed entries
func WithSeed(entries ...*vfs.SeedEntry) Option {
	return func(s *Service) {
		s.seed = entries
	}
}

// WithPolicy sets the capability policy applied to every shell
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times; the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
