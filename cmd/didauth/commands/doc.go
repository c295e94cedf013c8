// Package commands defines the didauth CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init     Create the local identity and print its mnemonic
//   - import   Restore the local identity from a mnemonic
//   - did      Print the local DID
//   - path     Parse and validate a derivation path
//   - derive   Derive the key pair at a derivation path
//   - start    Seal a challenge under a fresh session key
//   - verify   Open a sealed challenge bundle as the verifier
//   - send     Deliver a sealed challenge bundle through the relay
//   - recv     Fetch and verify challenges queued for a DID
//
// # Implementation
//
// The root command loads config.yaml from the home directory, applies flag
// overrides and builds the dependency graph (identity store, KDF engine,
// session coordinator, relay client) before any subcommand runs.
package commands
