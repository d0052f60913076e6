// Package cli provides the interactive authgate command-line client.
//
// It wires configuration, the HTTP API client, and an interactive REPL.
// Typical flow: register or log in with email and password, then refresh or
// revoke the session from the prompt.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
