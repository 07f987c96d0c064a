// Package admin provides the interactive CloudPix administration console.
//
// It wires configuration, the persisted session, the API services, and an
// interactive REPL covering tenant management, system statistics and health,
// storage credentials and connection tests, user listings, and the request
// audit log.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// A background watcher keeps the stats and health views fresh while a
// session is active.
package admin
