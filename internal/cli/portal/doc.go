// Package portal provides the interactive CloudPix tenant portal.
//
// It covers the tenant-facing surface: photo listing and upload (with local
// pre-checks before the presigned PUT), deletion, storage quota, account
// info, and the usage audit trail.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package portal
