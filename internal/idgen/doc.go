// Package idgen wraps the UUID generator so that it can be stubbed in tests.
// Session and operation identifiers should be treated as opaque strings.
package idgen
