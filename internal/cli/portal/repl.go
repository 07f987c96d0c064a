package portal

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
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ListPhotos(ctx context.Context) error
	ShowPhoto(ctx context.Context) error
	Upload(ctx context.Context) error
	DeletePhoto(ctx context.Context) error
	ShowStorage(ctx context.Context) error
	ShowAccount(ctx context.Context) error
	ShowUsage(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF
// or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cpx %s> ", statusFn()))
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
				printlnFn("Available commands: (l)ist, show, upload, delete, storage, account, usage, passwd, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
			continue

		case "login":
			_ = a.Login(ctx)
			continue

		case "register":
			_ = a.Register(ctx)
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
		case "l", "list":
			_ = a.ListPhotos(ctx)
		case "show":
			_ = a.ShowPhoto(ctx)
		case "upload":
			_ = a.Upload(ctx)
		case "delete":
			_ = a.DeletePhoto(ctx)
		case "storage":
			_ = a.ShowStorage(ctx)
		case "account":
			_ = a.ShowAccount(ctx)
		case "usage":
			_ = a.ShowUsage(ctx)
		case "passwd":
			_ = a.ChangePassword(ctx)
		case "logout":
			_ = a.Logout(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
