package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App implements it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Sellers(ctx context.Context) error
	Seller(ctx context.Context, id string) error
	Books(ctx context.Context) error
	AddBook(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	DeleteBook(ctx context.Context, id string) error
}

var errUsage = errors.New("usage")

const (
	helpGuest    = "Available commands: register, login, sellers, books, addbook, exit"
	helpLoggedIn = "Available commands: sellers, seller <id>, books, addbook, delete <id>, deletebook <id>, register, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a. It returns on
// EOF, "exit"/"quit" or when ctx is done. Command errors are printed and the
// loop continues. Commands that prompt read from the same reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		prompt := "books> "
		if s := statusFn(); s != "" {
			prompt = fmt.Sprintf("books (%s)> ", s)
		}
		printlnFn(prompt)

		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpGuest)
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "sellers":
			err = a.Sellers(ctx)
		case "seller":
			err = withID(args, "seller <id>", func(id string) error { return a.Seller(ctx, id) })
		case "books":
			err = a.Books(ctx)
		case "addbook":
			err = a.AddBook(ctx)
		case "delete":
			err = withID(args, "delete <id>", func(id string) error { return a.Delete(ctx, id) })
		case "deletebook":
			err = withID(args, "deletebook <id>", func(id string) error { return a.DeleteBook(ctx, id) })
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func withID(args []string, usage string, fn func(string) error) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
	return fn(args[0])
}
