package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. *CLI satisfies
// it; tests use a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	ListTasks(ctx context.Context) error
	AddTask(ctx context.Context) error
	EditTask(ctx context.Context, ref string) error
	CompleteTask(ctx context.Context, ref string) error
	DeleteTask(ctx context.Context, ref string) error
	ListCategories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context, ref string) error
	Filter(ctx context.Context, args []string) error
	Stats(ctx context.Context) error

	ListNotes(ctx context.Context) error
	AddNote(ctx context.Context) error
	EditNote(ctx context.Context, ref string) error
	PinNote(ctx context.Context, ref string) error
	DeleteNote(ctx context.Context, ref string) error

	Search(ctx context.Context, query string) error

	ShowSettings(ctx context.Context) error
	SetTheme(ctx context.Context, theme string) error
	SetBiometric(ctx context.Context, mode string) error
}

const (
	helpLoggedOut = "Available commands: register, login, settings, theme, biometric, help, exit"
	helpLoggedIn  = "Available commands: tasks, addtask, edittask <n>, done <n>, deltask <n>, " +
		"categories, addcategory, delcategory <name>, " +
		"notes, addnote, editnote <n>, pin <n>, delnote <n>, search <text>, filter ..., stats, " +
		"settings, theme <light|dark|system>, biometric <on|off>, logout, help, exit"
)

var authOnly = map[string]bool{
	"tasks": true, "addtask": true, "edittask": true, "done": true, "deltask": true,
	"categories": true, "addcategory": true, "delcategory": true,
	"notes": true, "addnote": true, "editnote": true, "pin": true, "delnote": true,
	"search": true, "filter": true, "stats": true, "logout": true,
}

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. Handler errors are printed and the loop continues.
// Commands share reader with the prompts they show, so input is never
// buffered ahead of them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "managex%s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := strings.Join(args, " ")

		if authOnly[cmd] && !a.isLoggedIn() {
			fmt.Fprintln(out, "Please login first.")
			continue
		}

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "tasks", "t":
			err = a.ListTasks(ctx)
		case "addtask":
			err = a.AddTask(ctx)
		case "edittask":
			err = a.EditTask(ctx, arg)
		case "done":
			err = a.CompleteTask(ctx, arg)
		case "deltask":
			err = a.DeleteTask(ctx, arg)
		case "categories":
			err = a.ListCategories(ctx)
		case "addcategory":
			err = a.AddCategory(ctx)
		case "delcategory":
			err = a.DeleteCategory(ctx, arg)
		case "filter":
			err = a.Filter(ctx, args)
		case "stats":
			err = a.Stats(ctx)

		case "notes", "n":
			err = a.ListNotes(ctx)
		case "addnote":
			err = a.AddNote(ctx)
		case "editnote":
			err = a.EditNote(ctx, arg)
		case "pin":
			err = a.PinNote(ctx, arg)
		case "delnote":
			err = a.DeleteNote(ctx, arg)

		case "search":
			err = a.Search(ctx, arg)

		case "settings":
			err = a.ShowSettings(ctx)
		case "theme":
			err = a.SetTheme(ctx, arg)
		case "biometric":
			err = a.SetBiometric(ctx, arg)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(out, errorColor.Sprint("Error: "+err.Error()))
		}
	}
}
