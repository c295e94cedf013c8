// Package app wires application dependencies for the CLI.
//
// It loads Config from YAML and the environment, then builds the identity
// store, the KDF engine, the session coordinator and the relay client,
// exposing them via the Wire struct for commands to use.
package app
