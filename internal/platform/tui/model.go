package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"vimaze/internal/config"
	"vimaze/internal/core"
	"vimaze/internal/game/player"
	"vimaze/internal/game/session"
	"vimaze/internal/game/tick"
	"vimaze/internal/level"
	"vimaze/internal/storage"
)

// commandMode says what the bottom input line is collecting.
type commandMode int

const (
	cmdNone commandMode = iota
	cmdEx
	cmdSearch
)

// flashState is the highlight service handed to the collision engine.
// Pointer-shared so session callbacks reach the model between frames.
type flashState struct {
	pos    core.Pos
	active bool
}

func (f *flashState) FlashWall(pos core.Pos) {
	f.pos = pos
	f.active = true
}

func (f *flashState) ClearFlash() {
	f.active = false
}

// Model is the Bubble Tea model driving the whole game.
type Model struct {
	sched *tick.Scheduler
	sess  *session.Session
	store *storage.Store

	levels []*level.Level
	done   map[string]bool
	best   *storage.Completion

	keys    *KeyMapper
	cmdline textinput.Model
	cmdMode commandMode
	flash   *flashState

	screen    *core.Screen
	notice    string
	prevState session.State

	width    int
	height   int
	tickRate int
	cursor   int
	quitting bool
}

// NewModel wires the scheduler, session, and input state. The store may
// be nil to disable persistence.
func NewModel(levels []*level.Level, store *storage.Store, logger *log.Logger, cfg config.Config) Model {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}

	sched := tick.NewScheduler()
	var sessStore session.Store
	if store != nil {
		sessStore = store
	}
	sess := session.New(sched, sessStore, logger)
	sess.SetTickRate(tickRate)
	sess.SetTuning(cfg.FlashTicks(), cfg.DetectionRadius)

	flash := &flashState{}
	sess.SetHighlighter(flash)

	cmdline := textinput.New()
	cmdline.Prompt = ":"
	cmdline.CharLimit = 64

	m := Model{
		sched:     sched,
		sess:      sess,
		store:     store,
		levels:    levels,
		done:      map[string]bool{},
		keys:      NewKeyMapper(),
		cmdline:   cmdline,
		flash:     flash,
		screen:    core.NewScreen(80, 24),
		prevState: session.StateLore,
		tickRate:  tickRate,
	}
	// Load the menu completion marks here, not in Init: Init runs on a
	// copy of the value model, so writes there never reach the running
	// program.
	m.refreshCompletions()
	return m
}

// Init starts the scheduler and the heartbeat.
func (m Model) Init() tea.Cmd {
	m.sched.Start()
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
		return m, nil

	case TickMsg:
		m.sched.Advance()
		if st := m.sess.State(); st != m.prevState {
			m = m.onStateChange(st)
		}
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

// onStateChange runs platform-side entry work for auto-transitions
// (timed defeat/fireworks advances happen inside Advance, not on a key).
func (m Model) onStateChange(st session.State) Model {
	m.prevState = st
	m.keys.Reset()
	m.cmdMode = cmdNone
	m.cmdline.Blur()
	m.notice = ""

	switch st {
	case session.StateLore:
		m.refreshCompletions()
	case session.StateResults:
		m.best = nil
		if m.store != nil {
			if best, err := m.store.Best(m.sess.LastResult().LevelID); err == nil {
				m.best = best
			}
		}
	}
	return m
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.cmdMode != cmdNone {
		return m.handleCommandLineKey(msg)
	}

	switch m.sess.State() {
	case session.StateLore:
		return m.handleLoreKey(msg)
	case session.StateGameplay:
		return m.handleGameplayKey(msg)
	case session.StateResults:
		switch msg.String() {
		case "enter", "esc", " ":
			m.sess.Transition(session.StateLore)
			return m.onStateChange(session.StateLore), nil
		}
	}
	// Fireworks and defeat screens ignore input; they advance on timers.
	return m, nil
}

func (m Model) handleLoreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, core.Max(len(m.levels)-1, 0))

	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, core.Max(len(m.levels)-1, 0))

	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.sess.SelectLevel(m.levels[m.cursor])
			return m.onStateChange(session.StateGameplay), nil
		}

	case MenuActionCommand:
		m = m.openCommandLine(cmdEx)
	}

	return m, nil
}

func (m Model) handleGameplayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	m.notice = ""

	switch action {
	case core.ActionNone, core.ActionConfirm, core.ActionBack:
		return m, nil

	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionCommand:
		return m.openCommandLine(cmdEx), nil

	case core.ActionSearch:
		if m.sess.Level().Blocks(core.MotionSearch) {
			m.notice = "E486: search is sealed in this room"
			return m, nil
		}
		return m.openCommandLine(cmdSearch), nil
	}

	m = m.applyMotion(action)
	return m, nil
}

// applyMotion routes a movement action: blocked categories are rejected
// before any movement, step motions go through the mode-appropriate
// path, larger motions land wherever the host would put the cursor and
// let the collision engine judge the result.
func (m Model) applyMotion(a core.Action) Model {
	lvl := m.sess.Level()
	p := m.sess.Player()
	if lvl == nil || p == nil {
		return m
	}

	if cat := a.Category(); cat != core.MotionStep && lvl.Blocks(cat) {
		m.notice = "E21: that motion is sealed in this room"
		return m
	}

	if dir, ok := a.Dir(); ok {
		if p.Mode() == player.ModeTicked {
			p.Queue(dir)
		} else {
			p.Commit(dir.Step(p.Pos()))
		}
		return m
	}

	pos := p.Pos()
	switch a {
	case core.ActionLineStart:
		p.Commit(core.Pos{Row: pos.Row, Col: 1})
	case core.ActionLineEnd:
		p.Commit(core.Pos{Row: pos.Row, Col: lvl.Cols})
	case core.ActionTop:
		p.Commit(core.Pos{Row: 1, Col: pos.Col})
	case core.ActionBottom:
		p.Commit(core.Pos{Row: lvl.Rows, Col: pos.Col})
	}
	return m
}

func (m Model) openCommandLine(mode commandMode) Model {
	m.cmdMode = mode
	if mode == cmdSearch {
		m.cmdline.Prompt = "/"
	} else {
		m.cmdline.Prompt = ":"
	}
	m.cmdline.SetValue("")
	m.cmdline.Focus()
	return m
}

func (m Model) handleCommandLineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.cmdMode = cmdNone
		m.cmdline.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.cmdline.Value())
		mode := m.cmdMode
		m.cmdMode = cmdNone
		m.cmdline.Blur()
		if mode == cmdSearch {
			return m.executeSearch(text)
		}
		return m.executeCommand(text)
	}

	var cmd tea.Cmd
	m.cmdline, cmd = m.cmdline.Update(msg)
	return m, cmd
}

// executeCommand interprets the ex-command line. Quit commands go
// through the session first; it consumes them during gameplay (win or
// defeat decision) and passes them back everywhere else.
func (m Model) executeCommand(text string) (tea.Model, tea.Cmd) {
	switch text {
	case "":
		return m, nil

	case "q", "quit", "wq", "x":
		if m.sess.QuitRequested(false) {
			return m.onStateChange(m.sess.State()), nil
		}
		m.quitting = true
		return m, tea.Quit

	case "q!", "quit!":
		if m.sess.QuitRequested(true) {
			return m.onStateChange(m.sess.State()), nil
		}
		m.quitting = true
		return m, tea.Quit

	case "help":
		m.notice = "move hjkl · :q on the exit to escape · :q! to abandon"
		return m, nil
	}

	m.notice = "E492: not an editor command: " + text
	return m, nil
}

// executeSearch jumps the player to the first occurrence of the needle
// in the document, subject to normal collision rules.
func (m Model) executeSearch(text string) (tea.Model, tea.Cmd) {
	if text == "" || m.sess.State() != session.StateGameplay {
		return m, nil
	}
	doc := m.sess.Doc()
	for row := 1; row <= doc.Rows(); row++ {
		if col := runeIndex(doc.Line(row), text); col > 0 {
			m.sess.Player().Commit(core.Pos{Row: row, Col: col})
			return m, nil
		}
	}
	m.notice = "E486: pattern not found: " + text
	return m, nil
}

// runeIndex returns the 1-indexed character column of the first
// occurrence of needle in line, or 0.
func runeIndex(line, needle string) int {
	idx := strings.Index(line, needle)
	if idx < 0 {
		return 0
	}
	return len([]rune(line[:idx])) + 1
}

// refreshCompletions re-reads the completion marks shown on the menu.
func (m *Model) refreshCompletions() {
	if m.store == nil {
		return
	}
	if done, err := m.store.CompletedLevels(); err == nil {
		m.done = done
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen.Width() < 10 || m.screen.Height() < 5 {
		return "terminal too small"
	}

	m.screen.Clear()
	switch m.sess.State() {
	case session.StateLore:
		m.drawLore()
	case session.StateGameplay:
		m.drawGameplay()
	case session.StateFireworks:
		m.drawFireworks()
	case session.StateResults:
		m.drawResults()
	case session.StateDefeat:
		m.drawDefeat()
	}

	out := RenderScreen(m.screen)
	if m.cmdMode != cmdNone {
		return out + "\n" + m.cmdline.View()
	}
	if m.notice != "" {
		return out + "\n" + colorStyles[core.ColorDanger].Render(m.notice)
	}
	return out + "\n"
}

// Run starts the Bubble Tea program. A non-empty startID skips the menu
// and drops straight into that level.
func Run(levels []*level.Level, store *storage.Store, logger *log.Logger, cfg config.Config, startID string) error {
	model := NewModel(levels, store, logger, cfg)

	if startID != "" {
		for i, lvl := range levels {
			if lvl.ID == startID {
				model.cursor = i
				model.sess.SelectLevel(lvl)
				break
			}
		}
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
