package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/model"
	"github.com/sandeepkv93/daygrid/internal/prefs"
	"github.com/sandeepkv93/daygrid/internal/scheduler"
	"github.com/sandeepkv93/daygrid/internal/session"
	"github.com/sandeepkv93/daygrid/internal/tasks"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type PaletteState struct {
	Active bool
	Input  string
}

// EditorState is the day dialog. Editing is the task whose text the input
// currently holds; the zero ID means the input adds a new task.
type EditorState struct {
	Active    bool
	Day       calendar.Date
	Cursor    int
	ListFocus bool
	Editing   model.ID
}

type KeyBinding struct {
	Key    string
	Action string
}

type Model struct {
	Store     *tasks.Store
	Prefs     *prefs.Store
	Scheduler *scheduler.Engine
	Clock     calendar.Clock
	Week      calendar.Week
	Theme     prefs.Theme
	Nudge     NudgeTime

	Today    calendar.Date
	Selected calendar.Date
	Month    calendar.Date

	Editor      EditorState
	Palette     PaletteState
	Status      StatusBar
	LastError   error
	HelpVisible bool
	Quitting    bool

	Width  int
	Height int

	editorInput   textinput.Model
	commandInput  textinput.Model
	bar           progress.Model
	syncSpinner   spinner.Model
	spinnerActive bool
	inFlight      int
	helpModel     help.Model

	log zerolog.Logger
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// LoadedMsg reports the end of a full reload.
type LoadedMsg struct {
	Err error
}

// CommittedMsg reports the end of a day write. The store has reloaded by the
// time it arrives, whether or not Err is set.
type CommittedMsg struct {
	Key calendar.Key
	Err error
}

type SchedulerEventMsg struct {
	Event scheduler.Event
}

// NewModel builds the app around opts. A nil Store gets an in-memory store for
// a "local" session; a nil Clock uses the system clock.
func NewModel(opts Options) Model {
	logger := opts.Logger
	clock := opts.Clock
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	store := opts.Store
	if store == nil {
		store = tasks.NewStore(tasks.NewMemoryBackend(), session.Static{User: "local"}, logger)
	}
	today := calendar.Today(clock)

	m := Model{
		Store:     store,
		Prefs:     opts.Prefs,
		Scheduler: opts.Scheduler,
		Clock:     clock,
		Week:      opts.Week,
		Theme:     opts.Theme,
		Nudge:     opts.Nudge,
		Today:     today,
		Selected:  today,
		Month:     today.FirstOfMonth(),
		log:       logger,
	}
	if m.Theme == "" {
		m.Theme = prefs.ThemeLight
	}
	if theme, err := loadTheme(m.Prefs, m.Theme); err != nil {
		m.Status = StatusBar{Text: "could not read preferences: " + err.Error(), IsError: true}
		m.log.Warn().Err(err).Msg("prefs load failed")
	} else {
		m.Theme = theme
	}

	m.initBubbleComponents()
	// The initial load is started by Init.
	m.inFlight = 1
	m.spinnerActive = true
	return m
}

func (m *Model) initBubbleComponents() {
	m.editorInput = textinput.New()
	m.editorInput.Prompt = "> "
	m.editorInput.Placeholder = "task title | optional markdown description"
	m.editorInput.CharLimit = 512
	m.editorInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.bar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24))

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}
