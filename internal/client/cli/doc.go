// Package cli provides the interactive FitFlow command-line client.
//
// It wires configuration, the local database, API services, and an
// interactive REPL. Typical flow: restore a saved session, surface a lockout
// left over from a previous run, start a background connectivity watcher,
// and execute user commands.
//
// Key features:
//   - Login / Logout with the consecutive-failure lockout and its countdown
//   - Status of the session, lockout and connectivity
//   - Subscribe to a plan: payment intent, authorization prompt, then
//     settlement confirmation behind a spinner
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
