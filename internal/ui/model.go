package ui

import (
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"modelgrip/internal/catalog"
	"modelgrip/internal/config"
	"modelgrip/internal/domain"
	"modelgrip/internal/eventbus"
	"modelgrip/internal/ui/keys"
	"modelgrip/internal/ui/palette"
	"modelgrip/internal/ui/quickpick"
	"modelgrip/internal/ui/views"
	"modelgrip/internal/ui/wizard"
)

// maxOverlayWidth caps overlay rendering on wide terminals
const maxOverlayWidth = 64

// Model is the root Bubble Tea model. It owns the home view and at most one
// active overlay (wizard flow, palette or quick pick); every keystroke is
// routed to the overlay first, so home bindings never fire underneath one.
type Model struct {
	bus      eventbus.EventBus
	cfg      *config.Config
	cfgSvc   config.Service
	cat      catalog.Catalog
	switcher catalog.Switcher

	styles *views.Styles
	keymap KeyMap
	help   help.Model

	width  int
	height int

	program *tea.Program // for terminal handoff to the help pager

	flow     *wizard.Flow
	flowDone func(*wizard.Result)
	pal      *palette.Palette
	pick     *quickpick.Pick
	pickFavs []domain.Favourite

	status   string
	severity domain.Severity

	quitting      bool
	helpRequested bool
}

// NewModel creates the root model
func NewModel(bus eventbus.EventBus, cfgSvc config.Service, cfg *config.Config, cat catalog.Catalog, sw catalog.Switcher) *Model {
	m := &Model{
		bus:      bus,
		cfg:      cfg,
		cfgSvc:   cfgSvc,
		cat:      cat,
		switcher: sw,
		styles:   views.NewStyles(),
		keymap:   DefaultKeyMap(),
		help:     help.New(),
	}

	bus.Subscribe(eventbus.EventNotification, func(e eventbus.DomainEvent) {
		if n, ok := e.(domain.NotificationEvent); ok {
			m.status = n.Message
			m.severity = n.Severity
		}
	})

	return m
}

// SetProgram sets the Bubble Tea program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("help pager failed: %v", msg.err)
			m.notify("failed to open help pager", domain.SeverityError)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.flow != nil {
		if res := m.flow.HandleEvent(keys.Classify(msg)); res != nil {
			done := m.flowDone
			m.flow, m.flowDone = nil, nil
			if done != nil {
				done(res)
			}
		}
		return m, nil
	}

	if m.pal != nil {
		if res := m.pal.HandleEvent(keys.Classify(msg)); res != nil {
			m.pal = nil
			if res.Action != nil {
				return m, m.runAction(res.Action)
			}
		}
		return m, nil
	}

	if m.pick != nil {
		if out := m.pick.HandleEvent(keys.Classify(msg)); out != nil {
			m.pick = nil
			if !out.Cancelled {
				m.applyFavourite(out.Value)
			}
			m.pickFavs = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.SwitchModel):
		m.startModelSwitch()
	case key.Matches(msg, m.keymap.Favourites):
		m.startFavourites()
	case key.Matches(msg, m.keymap.Palette):
		m.openPalette()
	case key.Matches(msg, m.keymap.Help):
		return m, m.showHelpCmd()
	}
	return m, nil
}

// runAction executes a palette effect behind a panic boundary. A broken
// effect must not take the whole UI down.
func (m *Model) runAction(a *palette.Action) tea.Cmd {
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("palette action %q panicked: %v\n%s", a.Label, r, debug.Stack())
				m.notify("command failed, see log", domain.SeverityError)
			}
		}()
		if a.Run != nil {
			a.Run()
		}
	}()

	if m.quitting {
		return tea.Quit
	}
	if m.helpRequested {
		m.helpRequested = false
		return m.showHelpCmd()
	}
	return nil
}

func (m *Model) openPalette() {
	pal, err := palette.New("Commands",
		palette.GroupEntry(palette.Group{Key: 'm', Label: "Model", Actions: []palette.Action{
			{Key: 's', Label: "Switch model", Description: "provider, model, thinking", Run: m.startModelSwitch},
			{Key: 'f', Label: "Favourites", Description: "apply a saved preset", Run: m.startFavourites},
			{Key: 't', Label: "Thinking level", Description: "for the current model", Run: m.startThinking},
		}}),
		palette.ActionEntry(palette.Action{Key: 'h', Label: "Help", Run: func() { m.helpRequested = true }}),
		palette.ActionEntry(palette.Action{Key: 'q', Label: "Quit", Run: func() { m.quitting = true }}),
	)
	if err != nil {
		log.Printf("palette construction failed: %v", err)
		m.notify("command palette unavailable", domain.SeverityError)
		return
	}
	m.pal = pal
}

// startModelSwitch opens the provider/model/thinking wizard. Each step is
// resolved lazily from the choices so far; cancelling anywhere discards all
// of them.
func (m *Model) startModelSwitch() {
	window := m.cfg.UI.Window

	providerStep := func(chosen []string) (wizard.Step, error) {
		providers := m.cat.Providers()
		if len(providers) == 0 {
			return wizard.Step{}, catalog.ErrNoProviders
		}
		cands := make([]domain.Candidate, len(providers))
		for i, p := range providers {
			cands[i] = domain.Candidate{
				Value:       p,
				Label:       p,
				Description: fmt.Sprintf("%d models", len(m.cat.ModelsFor(p))),
			}
		}
		return wizard.Step{Title: "Select provider", Candidates: cands, Window: window}, nil
	}

	modelStep := func(chosen []string) (wizard.Step, error) {
		models := m.cat.ModelsFor(chosen[0])
		if len(models) == 0 {
			return wizard.Step{}, fmt.Errorf("%w: %s", catalog.ErrNoModels, chosen[0])
		}
		cands := make([]domain.Candidate, len(models))
		for i, mod := range models {
			cands[i] = domain.Candidate{
				Value:       mod.ID,
				Label:       mod.Name,
				Description: strings.Join(mod.Input, ", "),
			}
		}
		return wizard.Step{Title: "Select model", Candidates: cands, Window: window}, nil
	}

	thinkingStep := func(chosen []string) (wizard.Step, error) {
		mod, err := m.cat.Resolve(chosen[0], chosen[1])
		if err != nil {
			return wizard.Step{}, err
		}
		if !mod.Reasoning {
			return wizard.Skipped(string(domain.ThinkingOff)), nil
		}
		return thinkingLevelStep(window), nil
	}

	flow := wizard.NewFlow(providerStep, modelStep, thinkingStep)
	m.flowDone = m.finishModelSwitch
	if res := flow.Start(); res != nil {
		m.flowDone = nil
		m.finishModelSwitch(res)
		return
	}
	m.flow = flow
}

func thinkingLevelStep(window int) wizard.Step {
	cands := make([]domain.Candidate, len(domain.ThinkingLevels))
	highlight := 0
	for i, lvl := range domain.ThinkingLevels {
		cands[i] = domain.Candidate{Value: string(lvl), Label: string(lvl)}
		if lvl == domain.ThinkingMedium {
			highlight = i
		}
	}
	return wizard.Step{Title: "Thinking level", Candidates: cands, Window: window, Highlight: highlight}
}

func (m *Model) finishModelSwitch(res *wizard.Result) {
	if res.Cancelled {
		return
	}
	if res.Err != nil {
		m.notifyFlowError(res.Err)
		return
	}
	lvl, ok := domain.ParseThinkingLevel(res.Values[2])
	if !ok {
		lvl = domain.ThinkingOff
	}
	m.applySelection(res.Values[0], res.Values[1], lvl, true)
}

// startThinking opens a single-step picker for the current model
func (m *Model) startThinking() {
	cur := m.switcher.Current()
	if cur.Provider == "" || cur.Model == "" {
		m.notify("no model selected", domain.SeverityWarning)
		return
	}
	mod, err := m.cat.Resolve(cur.Provider, cur.Model)
	if err != nil {
		m.notifyFlowError(err)
		return
	}
	if !mod.Reasoning {
		m.notify(fmt.Sprintf("%s does not support thinking levels", mod.Ref()), domain.SeverityWarning)
		return
	}

	flow := wizard.NewFlow(func(chosen []string) (wizard.Step, error) {
		return thinkingLevelStep(m.cfg.UI.Window), nil
	})
	m.flowDone = m.finishThinking
	if res := flow.Start(); res != nil {
		m.flowDone = nil
		m.finishThinking(res)
		return
	}
	m.flow = flow
}

func (m *Model) finishThinking(res *wizard.Result) {
	if res.Cancelled {
		return
	}
	if res.Err != nil {
		m.notifyFlowError(res.Err)
		return
	}
	lvl, ok := domain.ParseThinkingLevel(res.Values[0])
	if !ok {
		lvl = domain.ThinkingOff
	}
	if err := m.switcher.SetThinking(lvl); err != nil {
		m.notifyFlowError(err)
		return
	}
	m.bus.Publish(domain.ThinkingChangedEvent{Level: lvl})
	m.notify("thinking level set to "+string(lvl), domain.SeverityInfo)
	m.persistSelection()
}

// startFavourites opens the quick pick over the persisted presets
func (m *Model) startFavourites() {
	favs := m.cfg.ValidFavourites()
	if len(favs) == 0 {
		m.notify("no favourites configured", domain.SeverityWarning)
		return
	}
	items := make([]quickpick.Item, len(favs))
	for i, f := range favs {
		desc := f.Provider + "/" + f.Model
		if f.Thinking != "" && f.Thinking != domain.ThinkingOff {
			desc += " · thinking " + string(f.Thinking)
		}
		items[i] = quickpick.Item{
			Key: []rune(f.Key)[0],
			Candidate: domain.Candidate{
				Value:       f.Key,
				Label:       f.Label,
				Description: desc,
			},
		}
	}
	m.pickFavs = favs
	m.pick = quickpick.New("Favourites", items)
}

func (m *Model) applyFavourite(key string) {
	for _, f := range m.pickFavs {
		if f.Key == key {
			m.applySelection(f.Provider, f.Model, f.Thinking, f.Thinking != "")
			return
		}
	}
}

// applySelection resolves and applies a model choice. A failed apply leaves
// the switcher state untouched.
func (m *Model) applySelection(provider, modelID string, lvl domain.ThinkingLevel, setThinking bool) {
	mod, err := m.cat.Resolve(provider, modelID)
	if err != nil {
		m.notifyFlowError(err)
		return
	}
	if err := m.switcher.SetModel(mod.Provider, mod.ID); err != nil {
		m.notifyFlowError(err)
		return
	}
	if setThinking {
		if err := m.switcher.SetThinking(lvl); err != nil {
			m.notifyFlowError(err)
			return
		}
	}
	cur := m.switcher.Current()
	m.bus.Publish(domain.ModelChangedEvent{Selection: cur})
	m.notify("switched to "+cur.String(), domain.SeverityInfo)
	m.persistSelection()
}

func (m *Model) persistSelection() {
	cur := m.switcher.Current()
	m.cfg.Model = config.ModelSettings{
		Provider: cur.Provider,
		Model:    cur.Model,
		Thinking: string(cur.Thinking),
	}
	if err := m.cfgSvc.Save(m.cfg); err != nil {
		log.Printf("failed to save config: %v", err)
		m.notify("failed to save config", domain.SeverityWarning)
		return
	}
	m.bus.Publish(domain.ConfigSavedEvent{})
}

// notifyFlowError maps flow failures onto notification severities. Empty
// catalogs and missing credentials are warnings; a stale or unknown model
// reference is an error.
func (m *Model) notifyFlowError(err error) {
	switch {
	case errors.Is(err, catalog.ErrNoProviders),
		errors.Is(err, catalog.ErrNoModels),
		errors.Is(err, catalog.ErrNoCredential):
		m.notify(err.Error(), domain.SeverityWarning)
	default:
		m.notify(err.Error(), domain.SeverityError)
	}
}

func (m *Model) notify(message string, severity domain.Severity) {
	m.bus.Publish(domain.NotificationEvent{Message: message, Severity: severity})
}

func (m *Model) showHelpCmd() tea.Cmd {
	return func() tea.Msg {
		ops := NewHelpOps(m.program)
		content := NewHelpRenderer().RenderHelpContent()
		return helpPagerMsg{err: ops.ShowHelpInPager(content)}
	}
}

func (m *Model) overlayWidth() int {
	w := m.width
	if w <= 0 || w > maxOverlayWidth {
		w = maxOverlayWidth
	}
	return w
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.overlayWidth()
	switch {
	case m.flow != nil:
		return m.flow.View(m.styles, width)
	case m.pal != nil:
		return m.pal.View(m.styles, width)
	case m.pick != nil:
		return m.pick.View(m.styles, width)
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("modelgrip"))
	b.WriteString("\n\n")

	cur := m.switcher.Current()
	if cur.Provider == "" || cur.Model == "" {
		b.WriteString(m.styles.Empty.Render("no model selected"))
	} else {
		b.WriteString("model: ")
		b.WriteString(m.styles.Current.Render(cur.String()))
	}
	b.WriteString("\n")

	if m.status != "" {
		style := m.styles.StatusInfo
		switch m.severity {
		case domain.SeverityWarning:
			style = m.styles.StatusWarn
		case domain.SeverityError:
			style = m.styles.StatusError
		}
		b.WriteString(style.Render(views.Truncate(m.status, width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}
