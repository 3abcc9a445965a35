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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	Matches(ctx context.Context) error
	Results(ctx context.Context, args []string) error
	SelectHero(ctx context.Context) error
	Coaches(ctx context.Context, args []string) error
	Slots(ctx context.Context, args []string) error
	Book(ctx context.Context, args []string) error
	Review(ctx context.Context, args []string) error
	Subscription(ctx context.Context) error
	Billing(ctx context.Context) error
	Checkout(ctx context.Context, args []string) error
	CancelPlan(ctx context.Context) error
	ResumePlan(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the replaycoach CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands while logged out: help, register, login, exit.
// Commands while logged in: upload <path>, matches, results <match_id>,
// selecthero, coaches [spec=..] [minrating=..] [maxrate=..] [available=..],
// slots <coach_id> <date>, book <coach_id> <date> <time> <minutes>,
// review <coach_id> <rating> [comment], subscription, billing,
// checkout <price_id>, cancel, resume, logout, exit.
//
// Errors returned by command handlers are ignored here; handlers surface
// their own messages. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rc (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: upload <path>, matches, results <match_id>, selecthero,")
				printlnFn("  coaches [spec=..] [minrating=..] [maxrate=..] [available=..],")
				printlnFn("  slots <coach_id> <date>, book <coach_id> <date> <time> <minutes>,")
				printlnFn("  review <coach_id> <rating> [comment], subscription, billing,")
				printlnFn("  checkout <price_id>, cancel, resume, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "upload":
			_ = a.Upload(ctx, args)

		case "matches":
			_ = a.Matches(ctx)

		case "results":
			_ = a.Results(ctx, args)

		case "selecthero":
			_ = a.SelectHero(ctx)

		case "coaches":
			_ = a.Coaches(ctx, args)

		case "slots":
			_ = a.Slots(ctx, args)

		case "book":
			_ = a.Book(ctx, args)

		case "review":
			_ = a.Review(ctx, args)

		case "subscription":
			_ = a.Subscription(ctx)

		case "billing":
			_ = a.Billing(ctx)

		case "checkout":
			_ = a.Checkout(ctx, args)

		case "cancel":
			_ = a.CancelPlan(ctx)

		case "resume":
			_ = a.ResumePlan(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
