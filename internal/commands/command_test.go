package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/daygrid/internal/prefs"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/goto 2024-06", TypeGoto},
		{"goto 2024-06-10", TypeGoto},
		{"/today", TypeToday},
		{"/add pay rent", TypeAdd},
		{"/clear", TypeClear},
		{"/theme dark", TypeTheme},
		{"  /RELOAD  ", TypeReload},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseGoto(t *testing.T) {
	cmd, err := Parse("/goto 2024-06")
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	if cmd.Goto.HasDay || cmd.Goto.Date.Month != time.June || cmd.Goto.Date.Day != 1 {
		t.Fatalf("unexpected month target: %+v", cmd.Goto)
	}

	cmd, err = Parse("/goto 2024-02-29")
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	if !cmd.Goto.HasDay || cmd.Goto.Date.Day != 29 {
		t.Fatalf("unexpected day target: %+v", cmd.Goto)
	}

	for _, in := range []string{"/goto", "/goto tomorrow", "/goto 2023-02-29", "/goto 2024-06 extra"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseTheme(t *testing.T) {
	cmd, err := Parse("/theme")
	if err != nil {
		t.Fatalf("parse toggle: %v", err)
	}
	if cmd.Theme.Theme != "" {
		t.Fatalf("expected toggle, got %q", cmd.Theme.Theme)
	}
	cmd, err = Parse("/theme LIGHT")
	if err != nil || cmd.Theme.Theme != prefs.ThemeLight {
		t.Fatalf("expected light, got %+v %v", cmd.Theme, err)
	}
	if _, err := Parse("/theme neon"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]ErrorCode{
		"":             ErrCodeEmptyInput,
		"/":            ErrCodeEmptyInput,
		"/unknown x":   ErrCodeUnknownCommand,
		"/add   ":      ErrCodeInvalidArgument,
		"/today now":   ErrCodeInvalidArgument,
		"/reload hard": ErrCodeInvalidArgument,
	}
	for in, want := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != want {
			t.Fatalf("parse %q: expected %s, got %v", in, want, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteNoArgCommands(t *testing.T) {
	var got []Type
	handlers := Handlers{
		Today:  func() (Result, error) { got = append(got, TypeToday); return Result{}, nil },
		Clear:  func() (Result, error) { got = append(got, TypeClear); return Result{}, nil },
		Reload: func() (Result, error) { got = append(got, TypeReload); return Result{}, nil },
	}
	for _, in := range []string{"/today", "/clear", "/reload"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if _, err := Execute(cmd, handlers); err != nil {
			t.Fatalf("execute %q: %v", in, err)
		}
	}
	if len(got) != 3 || got[0] != TypeToday || got[2] != TypeReload {
		t.Fatalf("unexpected dispatch order: %v", got)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("/theme dark")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}

func TestNamesCoverEveryCommand(t *testing.T) {
	if len(Names()) != 6 {
		t.Fatalf("expected 6 palette entries, got %d", len(Names()))
	}
}
