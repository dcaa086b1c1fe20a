// Package tracing wraps OpenTelemetry so that the evaluator and the file
// store workers can record spans without importing the SDK directly. When
// Init is never called the global no-op provider makes every span free.
package tracing
