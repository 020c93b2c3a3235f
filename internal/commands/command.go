package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/prefs"
)

type Type string

const (
	TypeGoto   Type = "goto"
	TypeToday  Type = "today"
	TypeAdd    Type = "add"
	TypeClear  Type = "clear"
	TypeTheme  Type = "theme"
	TypeReload Type = "reload"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GotoArgs targets a month, or a single day when HasDay is set.
type GotoArgs struct {
	Date   calendar.Date
	HasDay bool
}

type AddArgs struct {
	Title string
}

// ThemeArgs with an empty Theme means toggle.
type ThemeArgs struct {
	Theme prefs.Theme
}

type Command struct {
	Type  Type
	Raw   string
	Goto  *GotoArgs
	Add   *AddArgs
	Theme *ThemeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeGoto:
		return parseGoto(input, args)
	case TypeAdd:
		return parseAdd(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeToday, TypeClear, TypeReload:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires YYYY-MM or YYYY-MM-DD"}
	}
	if d, err := calendar.ParseKey(args[0]); err == nil {
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: d, HasDay: true}}, nil
	}
	month, err := time.Parse("2006-01", args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid date %q", args[0])}
	}
	d := calendar.NewDate(month.Year(), month.Month(), 1)
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: d}}, nil
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	switch len(args) {
	case 0:
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{}}, nil
	case 1:
		theme, err := prefs.ParseTheme(args[0])
		if err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme must be light or dark"}
		}
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: theme}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme takes at most one argument"}
	}
}
