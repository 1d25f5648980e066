package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnatoleLucet/reveal"
	"github.com/AnatoleLucet/reveal/clock"
	"github.com/AnatoleLucet/reveal/internal/config"
	"github.com/AnatoleLucet/reveal/internal/content"
	"github.com/AnatoleLucet/reveal/marquee"
	"github.com/AnatoleLucet/reveal/viewport"
)

const (
	// rows taken by the navbar and the footer
	chromeHeight = 2

	// the navbar switches style past this many rows
	scrolledThreshold = 1

	frameInterval = 33 * time.Millisecond

	defaultWidth  = 80
	defaultHeight = 24
)

// Options wires the model to its dependencies.
type Options struct {
	Config  config.Config
	Content content.Content

	// Clock drives the reveal and the marquee. Its callbacks must run on the
	// goroutine that calls Update, as clock.Fake does in tests.
	Clock clock.Clock

	// Loop, when set, is the clock whose callbacks are run inside Update.
	// It takes precedence over Clock. With neither, the real clock is wrapped in one.
	Loop *clock.Loop

	// Send delivers contact messages. Without one they are only logged.
	Send Sender

	Logger *slog.Logger

	Width  int
	Height int
}

// Model is the portfolio page.
type Model struct {
	cfg     config.Config
	content content.Content
	clock   clock.Clock
	loop    *clock.Loop
	logger  *slog.Logger
	keys    keyMap
	form    formKeyMap
	help    help.Model

	width  int
	height int

	vp      *viewport.Viewport
	page    *page
	view    *reveal.Owner
	panel   *reveal.Panel
	cards   []*reveal.Card
	marquee *marquee.Marquee
	contact *contactForm

	// units shown over the whole panel, kept up to date by an effect
	revealed int

	quitting bool
}

type callbackMsg struct{ fn func() }

type frameMsg time.Time

// New builds the page and mounts its animations under a single owner.
func New(opts Options) *Model {
	m := &Model{
		cfg:     opts.Config,
		content: opts.Content,
		clock:   opts.Clock,
		loop:    opts.Loop,
		logger:  opts.Logger,
		keys:    newKeyMap(),
		form:    newFormKeyMap(),
		help:    newHelp(),
		width:   opts.Width,
		height:  opts.Height,
	}

	if m.loop == nil && m.clock == nil {
		m.loop = clock.NewLoop(clock.Real())
	}
	if m.loop != nil {
		m.clock = m.loop
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.width <= 0 {
		m.width = defaultWidth
	}
	if m.height <= 0 {
		m.height = defaultHeight
	}

	m.vp = viewport.New(m.viewportHeight())
	m.page = layoutPage(m.content, m.vp)
	m.marquee = marquee.New(m.content.LogoNames(), m.cfg.Marquee.Gap)
	m.contact = newContactForm(m.cfg.Contact, m.clock, opts.Send, m.logger)
	m.contact.resize(m.width)

	m.mount()

	return m
}

func (m *Model) mount() {
	m.view = reveal.NewOwner()

	m.view.Run(func() error {
		m.cards = make([]*reveal.Card, len(m.content.Projects))
		stagger := reveal.Stagger{PerOwner: m.cfg.Showcase.Stagger}
		for i, project := range m.content.Projects {
			m.cards[i] = reveal.NewCard(reveal.CardConfig{
				Title:     project.Title,
				Clock:     m.clock,
				Observer:  m.vp,
				Ref:       reveal.NewRef(m.page.card(i)),
				Threshold: reveal.Threshold(m.cfg.Showcase.Threshold),
				Delay:     stagger.Delay(i+1, 0),
				Fade:      m.cfg.Showcase.Fade,
				Logger:    m.logger,
			})
		}

		items := make([]reveal.Item, len(m.content.Counters))
		for i, c := range m.content.Counters {
			items[i] = reveal.Item{Label: c.Label, Detail: c.Detail}
		}

		m.panel = reveal.NewPanel(reveal.PanelConfig{
			Items:    items,
			Clock:    m.clock,
			Observer: m.vp,
			Element:  m.page.element,
			Stagger: reveal.Stagger{
				PerOwner: m.cfg.Reveal.PerOwnerDelay,
				PerUnit:  m.cfg.Reveal.PerUnitDelay,
			},
			Threshold:  reveal.Threshold(m.cfg.Reveal.Threshold),
			TickPeriod: m.cfg.Reveal.TickPeriod,
			Fade:       m.cfg.Reveal.Fade,
			Logger:     m.logger,
		})

		reveal.NewEffect(func() {
			m.revealed = m.panel.Revealed()
			if m.revealed == m.panel.Total() && m.revealed > 0 {
				m.logger.Info("counters revealed", "units", m.revealed)
			}
		})

		reveal.NewEffect(func() {
			for _, c := range m.cards {
				if !c.Shown() {
					return
				}
			}
			if len(m.cards) > 0 {
				m.logger.Debug("project cards shown", "cards", len(m.cards))
			}
		})

		ticker := m.clock.Every(m.cfg.Marquee.Speed, m.marquee.Step)
		reveal.OnCleanup(func() { ticker.Stop() })
		reveal.OnCleanup(m.contact.stop)

		return nil
	})

	m.logger.Debug("page mounted",
		"rows", len(m.page.rows),
		"projects", len(m.content.Projects),
		"counters", len(m.content.Counters),
		"logos", len(m.content.Logos),
	)
}

// Close tears the page down: every reveal, observation and timer.
func (m *Model) Close() {
	m.view.Dispose()
	if m.loop != nil {
		m.loop.Close()
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForCallback(), frame())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case callbackMsg:
		m.runCallbacks(msg.fn)
		return m, m.waitForCallback()
	case frameMsg:
		if m.quitting {
			return m, nil
		}
		return m, frame()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Resize(m.viewportHeight())
		m.contact.resize(m.width)
		return m, nil
	case tea.KeyMsg:
		if m.contact.focused() {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}

	// cursor blinks of the focused field
	if m.contact.focused() {
		return m, m.contact.update(msg)
	}

	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.vp.Height()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Contact):
		m.jumpTo(content.SectionContact)
		return m, m.contact.focusField(fieldName)
	case key.Matches(msg, m.keys.Down):
		m.vp.ScrollBy(1)
	case key.Matches(msg, m.keys.Up):
		m.vp.ScrollBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.vp.ScrollBy(page)
	case key.Matches(msg, m.keys.PageUp):
		m.vp.ScrollBy(-page)
	case key.Matches(msg, m.keys.Top):
		m.vp.ScrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.vp.ScrollTo(m.vp.ContentHeight())
	case key.Matches(msg, m.keys.Jump):
		m.jump(int(msg.String()[0] - '1'))
	}

	return m, nil
}

// updateForm handles keys while a field of the contact form has the cursor.
// Everything but the form keys is typed into the field.
func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.form.Quit):
		return m.quit()
	case key.Matches(msg, m.form.Leave):
		return m, m.contact.focusField(noField)
	case key.Matches(msg, m.form.Next):
		return m, m.contact.cycle(1)
	case key.Matches(msg, m.form.Prev):
		return m, m.contact.cycle(-1)
	case key.Matches(msg, m.form.Send):
		m.contact.submit()
		return m, nil
	case msg.Type == tea.KeyEnter && m.contact.focus != fieldMessage:
		return m, m.contact.cycle(1)
	}

	return m, m.contact.update(msg)
}

// jump scrolls to the section of the i-th nav link.
func (m *Model) jump(i int) {
	if i < 0 || i >= len(m.content.Nav) {
		return
	}

	m.jumpTo(m.content.Nav[i].Section)
}

func (m *Model) jumpTo(section string) {
	top, ok := m.page.sections[section]
	if !ok {
		return
	}

	m.logger.Debug("jump to section", "section", section, "row", top)
	m.vp.ScrollTo(top)
}

// runCallbacks runs fn and whatever else is already queued in one batch,
// so effects see the state of the whole round once.
func (m *Model) runCallbacks(fn func()) {
	reveal.NewBatch(func() {
		fn()

		for {
			select {
			case next := <-m.loop.C():
				next()
			default:
				return
			}
		}
	})
}

func (m *Model) waitForCallback() tea.Cmd {
	if m.loop == nil {
		return nil
	}

	ch := m.loop.C()
	return func() tea.Msg {
		return callbackMsg{fn: <-ch}
	}
}

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = helpKeyStyle.Background(colorMantle)
	h.Styles.ShortDesc = helpDescStyle.Background(colorMantle)
	h.Styles.ShortSeparator = helpSepStyle.Background(colorMantle)
	h.Styles.Ellipsis = helpSepStyle.Background(colorMantle)

	return h
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) viewportHeight() int {
	return max(m.height-chromeHeight, 1)
}

// Revealed returns the number of counter units shown so far.
func (m *Model) Revealed() int {
	return m.revealed
}
