package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	failOn   string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	if call == f.failOn {
		return errors.New("failed " + call)
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Register(context.Context) error { return f.record("register") }

func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}

func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func (f *fakeExec) ListTasks(context.Context) error { return f.record("tasks") }
func (f *fakeExec) AddTask(context.Context) error   { return f.record("addtask") }

func (f *fakeExec) EditTask(_ context.Context, ref string) error     { return f.record("edittask " + ref) }
func (f *fakeExec) CompleteTask(_ context.Context, ref string) error { return f.record("done " + ref) }
func (f *fakeExec) DeleteTask(_ context.Context, ref string) error   { return f.record("deltask " + ref) }

func (f *fakeExec) ListCategories(context.Context) error { return f.record("categories") }
func (f *fakeExec) AddCategory(context.Context) error    { return f.record("addcategory") }

func (f *fakeExec) DeleteCategory(_ context.Context, ref string) error {
	return f.record("delcategory " + ref)
}

func (f *fakeExec) Filter(_ context.Context, args []string) error {
	return f.record("filter " + strings.Join(args, ","))
}

func (f *fakeExec) Stats(context.Context) error     { return f.record("stats") }
func (f *fakeExec) ListNotes(context.Context) error { return f.record("notes") }
func (f *fakeExec) AddNote(context.Context) error   { return f.record("addnote") }

func (f *fakeExec) EditNote(_ context.Context, ref string) error   { return f.record("editnote " + ref) }
func (f *fakeExec) PinNote(_ context.Context, ref string) error    { return f.record("pin " + ref) }
func (f *fakeExec) DeleteNote(_ context.Context, ref string) error { return f.record("delnote " + ref) }
func (f *fakeExec) Search(_ context.Context, q string) error       { return f.record("search " + q) }

func (f *fakeExec) ShowSettings(context.Context) error { return f.record("settings") }

func (f *fakeExec) SetTheme(_ context.Context, theme string) error { return f.record("theme " + theme) }
func (f *fakeExec) SetBiometric(_ context.Context, m string) error { return f.record("biometric " + m) }

func TestRunREPL_Dispatch(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"tasks",
		"login",
		"help",
		"",
		"tasks",
		"addtask",
		"edittask 1",
		"done 2",
		"deltask task-01",
		"categories",
		"addcategory",
		"delcategory Side projects",
		"filter priority high",
		"stats",
		"notes",
		"addnote",
		"editnote 2",
		"pin 1",
		"delnote 3",
		"search  budget   2024 ",
		"settings",
		"theme dark",
		"biometric on",
		"foobar",
		"logout",
		"exit",
		"tasks",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return " (status)" }, rdr(input), &out)

	assert.Equal(t, []string{
		"login", "tasks", "addtask", "edittask 1", "done 2", "deltask task-01", "categories",
		"addcategory", "delcategory Side projects",
		"filter priority,high", "stats", "notes", "addnote", "editnote 2", "pin 1", "delnote 3",
		"search budget 2024", "settings", "theme dark", "biometric on", "logout",
	}, exec.calls)

	s := out.String()
	assert.Contains(t, s, "managex (status)> ")
	assert.Contains(t, s, helpLoggedOut)
	assert.Contains(t, s, helpLoggedIn)
	assert.Contains(t, s, "Please login first.")
	assert.Contains(t, s, "Unknown command: foobar")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_EditCommandsNeedLogin(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return "" }, rdr("edittask 1\naddcategory\neditnote 1\n"), &out)

	assert.Empty(t, exec.calls)
	assert.Equal(t, 3, strings.Count(out.String(), "Please login first."))
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	exec := &fakeExec{loggedIn: true, failOn: "stats"}
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return "" }, rdr("stats\nnotes\n"), &out)

	assert.Equal(t, []string{"stats", "notes"}, exec.calls)
	assert.Contains(t, out.String(), "Error: failed stats")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return "" }, rdr("notes"), &out)

	assert.Equal(t, []string{"notes"}, exec.calls)
}
