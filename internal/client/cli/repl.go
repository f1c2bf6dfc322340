package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/uni-jay/ican-portal/internal/common"
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
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	ClearError()
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Transactions(ctx context.Context) error
	Events(ctx context.Context) error
	JoinEvent(ctx context.Context, eventID string) error
	CPD(ctx context.Context) error
	Elections(ctx context.Context) error
	Vote(ctx context.Context, electionID, candidateID string) error
	Chat(ctx context.Context) error
	Send(ctx context.Context, text string) error
}

const (
	helpGuest  = "Available commands: register, login, forgot, reset, help, exit"
	helpMember = "Available commands: whoami, profile, transactions, events, join <id>, cpd, " +
		"elections, vote <election> <candidate>, chat, send [text], clear, logout, help, exit"
)

// runREPL starts a read–eval–print loop over lines read from in.
//
// The first token of each line is the command, the rest its arguments.
// Member commands are refused until the session is authenticated. The loop
// exits on EOF or when the user types "exit" or "quit"; after "logout" it
// keeps running.
//
// Errors returned by handlers are printed and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ican %s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if memberOnly(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}
		report(dispatch(ctx, a, cmd, args))
	}
}

func memberOnly(cmd string) bool {
	switch cmd {
	case "whoami", "profile", "transactions", "events", "join", "cpd", "elections", "vote", "chat", "send", "logout":
		return true
	}
	return false
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpMember)
		} else {
			printlnFn(helpGuest)
		}
		return nil

	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "forgot":
		return a.ForgotPassword(ctx)
	case "reset":
		return a.ResetPassword(ctx)
	case "clear":
		a.ClearError()
		return nil
	case "logout":
		return a.Logout(ctx)

	case "whoami":
		return a.WhoAmI(ctx)
	case "profile":
		return a.Profile(ctx)
	case "transactions":
		return a.Transactions(ctx)
	case "events":
		return a.Events(ctx)
	case "join":
		if len(args) != 1 {
			printlnFn("Usage: join <event id>")
			return nil
		}
		return a.JoinEvent(ctx, args[0])
	case "cpd":
		return a.CPD(ctx)
	case "elections":
		return a.Elections(ctx)
	case "vote":
		if len(args) != 2 {
			printlnFn("Usage: vote <election id> <candidate id>")
			return nil
		}
		return a.Vote(ctx, args[0], args[1])
	case "chat":
		return a.Chat(ctx)
	case "send":
		return a.Send(ctx, strings.Join(args, " "))

	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

func report(err error) {
	if err == nil {
		return
	}
	printlnFn("Error:", err)
	if errors.Is(err, common.ErrUnauthorized) {
		printlnFn("Your session has ended. Please log in again.")
	}
}
