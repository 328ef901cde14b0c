package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Find(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the myjar CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. The remaining tokens are passed
// to commands that take an id or a page number. Interactive commands read
// their own input from the same reader. The loop exits on EOF
// or when the user types "exit" or "quit".
//
//	help             show available commands
//	add              create a client (interactive)
//	show [id]        show a single client
//	(l)ist [page]    list clients, one page at a time
//	find             search clients by field=query lines
//	edit [id]        modify fields of a client
//	delete [id]      remove a client
//	exit | quit      leave the program
//
// Errors returned by command handlers are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("myjar %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: add, show, (l)ist, find, edit, delete, exit")

		case "add":
			_ = a.Add(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "l", "list":
			_ = a.List(ctx, args)

		case "find":
			_ = a.Find(ctx)

		case "edit":
			_ = a.Edit(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
