// Package poller provides the I/O primitives behind waitforapp's readiness
// loop.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with per-request timeouts and pooling
//   - [Sleep]: context-aware pause between attempts
//
// Users of the waitforapp library should not need to interact with this
// package directly.
package poller
