package admin

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ListTenants(ctx context.Context) error
	CreateTenant(ctx context.Context) error
	ShowTenant(ctx context.Context) error
	UpdateTenant(ctx context.Context) error
	SetStorageLimit(ctx context.Context) error
	DeleteTenant(ctx context.Context) error
	ShowStats(ctx context.Context) error
	ShowHealth(ctx context.Context) error
	ListCredentials(ctx context.Context) error
	TestConnection(ctx context.Context) error
	ShowStorageConfig(ctx context.Context) error
	UpdateStorageConfig(ctx context.Context) error
	ListUsers(ctx context.Context) error
	ShowLogs(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands requiring a session are rejected locally when logged out; the
// server still enforces authorization on every request.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cpx-admin %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Tenants:  (t)enants, create, tenant, update, limit, delete")
				printlnFn("System:   stats, health, users, logs")
				printlnFn("Storage:  creds, test, config, setconfig")
				printlnFn("Session:  passwd, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}
			continue

		case "login":
			_ = a.Login(ctx)
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}

		switch cmd {
		case "t", "tenants":
			_ = a.ListTenants(ctx)
		case "create":
			_ = a.CreateTenant(ctx)
		case "tenant":
			_ = a.ShowTenant(ctx)
		case "update":
			_ = a.UpdateTenant(ctx)
		case "limit":
			_ = a.SetStorageLimit(ctx)
		case "delete":
			_ = a.DeleteTenant(ctx)
		case "stats":
			_ = a.ShowStats(ctx)
		case "health":
			_ = a.ShowHealth(ctx)
		case "creds":
			_ = a.ListCredentials(ctx)
		case "test":
			_ = a.TestConnection(ctx)
		case "config":
			_ = a.ShowStorageConfig(ctx)
		case "setconfig":
			_ = a.UpdateStorageConfig(ctx)
		case "users":
			_ = a.ListUsers(ctx)
		case "logs":
			_ = a.ShowLogs(ctx)
		case "passwd":
			_ = a.ChangePassword(ctx)
		case "logout":
			_ = a.Logout(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
