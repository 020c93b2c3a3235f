package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Goto   func(GotoArgs) (Result, error)
	Today  func() (Result, error)
	Add    func(AddArgs) (Result, error)
	Clear  func() (Result, error)
	Theme  func(ThemeArgs) (Result, error)
	Reload func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goto(*cmd.Goto)
	case TypeToday:
		if handlers.Today == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Today()
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Theme(*cmd.Theme)
	case TypeReload:
		if handlers.Reload == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reload()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

// Names lists the palette commands with a short usage line each.
func Names() []Usage {
	return []Usage{
		{Name: "/goto", Args: "YYYY-MM[-DD]", Help: "jump to a month or day"},
		{Name: "/today", Help: "select today"},
		{Name: "/add", Args: "<title>", Help: "add a task to the selected day"},
		{Name: "/clear", Help: "remove every task from the selected day"},
		{Name: "/theme", Args: "[light|dark]", Help: "switch theme"},
		{Name: "/reload", Help: "reload tasks from the backend"},
	}
}

type Usage struct {
	Name string
	Args string
	Help string
}
