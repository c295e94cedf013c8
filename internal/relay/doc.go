// Package relay moves sealed challenge envelopes between a prover and a
// remote verifier over HTTP.
//
// HTTP is a domain.ChallengeTransport client. Server is the matching
// store-and-forward service that queues envelopes per DID in memory; cmd/relay
// runs it. The relay only ever sees ciphertext, nonces and public salts.
//
// Supported operations:
//   - Delivering an envelope to a DID's queue.
//   - Fetching up to N pending envelopes for a DID.
//   - Acknowledging (dropping) the first N envelopes of a queue.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx statuses are returned as errors with the HTTP method,
// path, and status text to aid diagnostics.
package relay
