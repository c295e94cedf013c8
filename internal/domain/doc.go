// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (keys, paths, sessions) and contracts (interfaces)
// only; behaviour lives in the protocol and services packages.
package domain
