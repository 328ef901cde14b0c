// Package cli provides the interactive myjar command-line client.
//
// It wires configuration, the gRPC directory client and an interactive REPL.
// A background watcher pings the server and flips the prompt between online
// and offline mode.
//
// Key features:
//   - Add / Edit / Delete clients
//   - Show a client by id
//   - List clients page by page
//   - Find clients by field substrings
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
