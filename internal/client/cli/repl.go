package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

var errUnknownCommand = errors.New("unknown command")

// execIface is the command surface the loop dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.Register(ctx, args)
	case "login":
		return a.Login(ctx, args)
	case "logout":
		return a.Logout(ctx, args)
	case "whoami":
		return a.Whoami(ctx, args)
	case "l", "list":
		return a.List(ctx, args)
	case "add":
		return a.Add(ctx, args)
	case "update":
		return a.Update(ctx, args)
	case "done":
		return a.Done(ctx, args)
	case "delete", "rm":
		return a.Delete(ctx, args)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}
}

// runREPL reads commands line by line until EOF or "exit"/"quit".
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tf %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, update, done, delete, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			if err := dispatch(ctx, a, parts[0], parts[1:]); err != nil {
				printlnFn("Error:", err)
			}
		}
	}
}
