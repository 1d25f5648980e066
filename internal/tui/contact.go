package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnatoleLucet/reveal/clock"
	"github.com/AnatoleLucet/reveal/internal/config"
)

// Message is what the contact form hands to its sender.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Sender delivers a contact message.
type Sender func(Message) error

const (
	fieldName = iota
	fieldEmail
	fieldMessage
	fieldCount

	noField = -1
)

const (
	messageRows  = 5
	maxFormWidth = 60

	// name and email with a spacer each, the message, a spacer and the button
	formHeight = 3 + 3 + 1 + messageRows + 2
)

var (
	errMissingField = errors.New("please fill in every field")
	errBadEmail     = errors.New("please enter a valid email")
)

type formState int

const (
	formIdle formState = iota
	formSending
	formSent
)

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

type toast struct {
	kind toastKind
	text string
}

// contactForm is the name, email and message form at the bottom of the page.
// Its timers run through the model's clock, so on the Update goroutine.
type contactForm struct {
	cfg    config.ContactConfig
	clock  clock.Clock
	send   Sender
	logger *slog.Logger

	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focus   int

	state formState
	toast *toast

	sendTimer  clock.Timer
	resetTimer clock.Timer
	toastTimer clock.Timer
}

func newContactForm(cfg config.ContactConfig, clk clock.Clock, send Sender, logger *slog.Logger) *contactForm {
	f := &contactForm{
		cfg:    cfg,
		clock:  clk,
		send:   send,
		logger: logger,
		focus:  noField,
	}

	if f.send == nil {
		f.send = f.deliverLocally
	}

	f.name = textinput.New()
	f.name.Prompt = "> "
	f.name.Placeholder = "What's your good name?"
	f.name.CharLimit = 80

	f.email = textinput.New()
	f.email.Prompt = "> "
	f.email.Placeholder = "What's your email address?"
	f.email.CharLimit = 120

	f.message = textarea.New()
	f.message.Placeholder = "How can I help you?"
	f.message.ShowLineNumbers = false
	f.message.SetHeight(messageRows)
	f.message.Blur()

	return f
}

// deliverLocally logs the message. Nothing leaves the machine.
func (f *contactForm) deliverLocally(msg Message) error {
	f.logger.Info("contact message", "name", msg.Name, "email", msg.Email, "length", len(msg.Body))
	return nil
}

func (f *contactForm) resize(width int) {
	w := max(min(width-4, maxFormWidth), 10)

	f.name.Width = w - len(f.name.Prompt) - 1
	f.email.Width = w - len(f.email.Prompt) - 1
	f.message.SetWidth(w)
}

func (f *contactForm) focused() bool {
	return f.focus != noField
}

// focusField moves the cursor to field i, or out of the form with noField.
func (f *contactForm) focusField(i int) tea.Cmd {
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()

	f.focus = i
	switch i {
	case fieldName:
		return f.name.Focus()
	case fieldEmail:
		return f.email.Focus()
	case fieldMessage:
		return f.message.Focus()
	}

	return nil
}

func (f *contactForm) cycle(dir int) tea.Cmd {
	return f.focusField((f.focus + dir + fieldCount) % fieldCount)
}

// update forwards msg to the focused field.
func (f *contactForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldEmail:
		f.email, cmd = f.email.Update(msg)
	case fieldMessage:
		f.message, cmd = f.message.Update(msg)
	}

	return cmd
}

func (f *contactForm) values() Message {
	return Message{
		Name:  strings.TrimSpace(f.name.Value()),
		Email: strings.TrimSpace(f.email.Value()),
		Body:  strings.TrimSpace(f.message.Value()),
	}
}

func validate(msg Message) error {
	if msg.Name == "" || msg.Email == "" || msg.Body == "" {
		return errMissingField
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return errBadEmail
	}

	return nil
}

// submit starts sending the form. The message goes out once the send delay
// elapsed, and the button is disabled until then.
func (f *contactForm) submit() {
	if f.state != formIdle {
		return
	}

	msg := f.values()
	if err := validate(msg); err != nil {
		f.notify(toastError, capitalize(err.Error())+".")
		return
	}

	f.state = formSending
	f.logger.Debug("contact form sending", "email", msg.Email)

	f.sendTimer = f.clock.AfterFunc(f.cfg.SendDelay, func() { f.deliver(msg) })
}

func (f *contactForm) deliver(msg Message) {
	f.sendTimer = nil
	if f.state != formSending {
		return
	}

	if err := f.send(msg); err != nil {
		f.logger.Error("contact form failed", "error", err)
		f.state = formIdle
		f.notify(toastError, "Failed to send message.")
		return
	}

	f.name.Reset()
	f.email.Reset()
	f.message.Reset()

	f.state = formSent
	f.notify(toastSuccess, "Message sent successfully!")

	f.resetTimer = f.clock.AfterFunc(f.cfg.SentReset, func() {
		f.resetTimer = nil
		if f.state == formSent {
			f.state = formIdle
		}
	})
}

// notify shows a toast, replacing the previous one, and hides it later.
func (f *contactForm) notify(kind toastKind, text string) {
	if f.toastTimer != nil {
		f.toastTimer.Stop()
	}

	t := &toast{kind: kind, text: text}
	f.toast = t
	f.toastTimer = f.clock.AfterFunc(f.cfg.Toast, func() {
		if f.toast == t {
			f.toast = nil
			f.toastTimer = nil
		}
	})
}

// stop cancels every pending timer of the form.
func (f *contactForm) stop() {
	for _, t := range []clock.Timer{f.sendTimer, f.resetTimer, f.toastTimer} {
		if t != nil {
			t.Stop()
		}
	}

	f.sendTimer, f.resetTimer, f.toastTimer = nil, nil, nil
}

func (f *contactForm) buttonLabel() string {
	switch f.state {
	case formSending:
		return "Sending..."
	case formSent:
		return "Sent ✓"
	default:
		return "Send"
	}
}

// lines renders the form on exactly formHeight lines.
func (f *contactForm) lines() []string {
	label := func(i int, s string) string {
		if f.focus == i {
			return formLabelActiveStyle.Render(s)
		}
		return formLabelStyle.Render(s)
	}

	out := make([]string, 0, formHeight)
	out = append(out, label(fieldName, "Your name"), f.name.View(), "")
	out = append(out, label(fieldEmail, "Your Email"), f.email.View(), "")
	out = append(out, label(fieldMessage, "Your Message"))

	rows := strings.Split(f.message.View(), "\n")
	for i := range messageRows {
		if i < len(rows) {
			out = append(out, rows[i])
		} else {
			out = append(out, "")
		}
	}

	button := buttonStyle
	if f.state != formIdle {
		button = buttonDisabledStyle
	}
	out = append(out, "", button.Render(f.buttonLabel()))

	return out
}

func (t *toast) render() string {
	if t.kind == toastError {
		return toastErrorStyle.Render(fmt.Sprintf("✕ %s", t.text))
	}

	return toastSuccessStyle.Render(fmt.Sprintf("✓ %s", t.text))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
