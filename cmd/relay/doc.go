// Package main runs the in-memory HTTP relay used by didauth during development
// and tests. It queues sealed challenge envelopes per DID until the verifier
// fetches and acknowledges them.
//
// HTTP API
//
//	POST /challenge/{did}
//	    Enqueue a ChallengeEnvelope for {did}. If CreatedAt is zero, the
//	    server fills it with the current Unix time. An envelope naming a
//	    different DID, or carrying no ciphertext, is rejected with 400.
//
//	GET /challenge/{did}?limit=N
//	    Return up to N queued envelopes for {did}. If limit is absent or
//	    greater than the queue length, all queued envelopes are returned.
//
//	POST /challenge/{did}/ack { "count": N }
//	    Drop the first N queued envelopes for {did}. If N exceeds the queue
//	    length, the queue is cleared.
//
//	GET /metrics
//	    Prometheus metrics for the relay.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Non-2xx statuses carry a short error message.
//   - A zerolog access log records method, path, remote, status, bytes and
//     duration for each request.
//   - The default listen address is :8080.
//
// The relay never sees a session key or a plaintext challenge; it stores
// ciphertext, nonces and public salts only.
package main
