// Package processor hosts the workers that execute queued file store
// operations. Every worker consumes operations from the queue, runs them
// against the executor and resolves the operation's pending call, which is
// what a blocked Sync Bridge caller is waiting on.
package processor
