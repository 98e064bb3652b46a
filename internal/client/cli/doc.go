// Package cli provides the interactive Kinship terminal client.
//
// It wires configuration, the durable credential store, the API client, the
// session manager, and the query cache into an interactive REPL. The visible
// command set follows the session flow: sign-in commands before
// authentication, profile setup after a fresh verification, and the full
// feed/matches/chat surface once onboarded.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
