package queue

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go-turnip-automation/internal/browser"
)

var (
	// ErrNavigationTimeout means the detail page never showed its marker element.
	ErrNavigationTimeout = errors.New("navigation timeout")
	// ErrElementNotFound means a control never became visible or could not be activated.
	ErrElementNotFound = errors.New("element not found")
	// ErrSessionUsed is returned when Run is called a second time.
	ErrSessionUsed = errors.New("join session already used")
	// ErrEmptyIdentity is returned when no display name is given.
	ErrEmptyIdentity = errors.New("display name is required")
)

type State int

const (
	StateIdle State = iota
	StatePageLoaded
	StateNoticeDismissed
	StateJoinRequested
	StateIdentitySubmitted
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePageLoaded:
		return "page-loaded"
	case StateNoticeDismissed:
		return "notice-dismissed"
	case StateJoinRequested:
		return "join-requested"
	case StateIdentitySubmitted:
		return "identity-submitted"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// StepError is the failure of one transition.
// errors.Is matches both its kind and the underlying cause.
type StepError struct {
	From     State
	Selector string
	Kind     error
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v waiting for %s: %v", e.From, e.Kind, e.Selector, e.Err)
}

func (e *StepError) Unwrap() []error { return []error{e.Kind, e.Err} }

// Selectors name the controls of the island detail page.
type Selectors struct {
	PageMarker    string
	NoticeButton  string
	JoinButton    string
	IdentityField string
	ConfirmButton string
}

// JoinSession drives one queue join on one listing. It is single use and
// never retries: the first wait that exceeds its bound ends it in StateFailed.
// The browser session is left open either way so the user can take over.
type JoinSession struct {
	session   browser.Session
	selectors Selectors
	timeout   time.Duration

	state   State
	history []State
	err     error
}

func NewJoinSession(session browser.Session, selectors Selectors, timeout time.Duration) *JoinSession {
	return &JoinSession{
		session:   session,
		selectors: selectors,
		timeout:   timeout,
		state:     StateIdle,
		history:   []State{StateIdle},
	}
}

func (j *JoinSession) State() State { return j.state }

// History lists every state visited, starting with StateIdle.
func (j *JoinSession) History() []State {
	out := make([]State, len(j.history))
	copy(out, j.history)
	return out
}

// Err is the failure that moved the session to StateFailed, if any.
func (j *JoinSession) Err() error { return j.err }

// Run joins the queue at detailURL under displayName.
func (j *JoinSession) Run(detailURL, displayName string) error {
	if j.state != StateIdle {
		return ErrSessionUsed
	}

	if strings.TrimSpace(displayName) == "" {
		return j.fail(ErrEmptyIdentity)
	}

	steps := []struct {
		to  State
		run func() error
	}{
		{StatePageLoaded, func() error { return j.loadPage(detailURL) }},
		{StateNoticeDismissed, func() error { return j.activate(j.selectors.NoticeButton) }},
		{StateJoinRequested, func() error { return j.activate(j.selectors.JoinButton) }},
		{StateIdentitySubmitted, func() error { return j.submitIdentity(displayName) }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return j.fail(err)
		}
		j.transition(step.to)
	}
	j.transition(StateDone)
	return nil
}

func (j *JoinSession) loadPage(url string) error {
	if err := j.session.Navigate(url); err != nil {
		return j.stepError(j.selectors.PageMarker, ErrNavigationTimeout, err)
	}
	if err := j.session.WaitForVisible(j.selectors.PageMarker, j.timeout); err != nil {
		return j.stepError(j.selectors.PageMarker, ErrNavigationTimeout, err)
	}
	return nil
}

func (j *JoinSession) activate(selector string) error {
	if err := j.session.WaitForVisible(selector, j.timeout); err != nil {
		return j.stepError(selector, ErrElementNotFound, err)
	}
	if err := j.session.Click(selector); err != nil {
		return j.stepError(selector, ErrElementNotFound, err)
	}
	return nil
}

func (j *JoinSession) submitIdentity(name string) error {
	field := j.selectors.IdentityField
	if err := j.session.WaitForVisible(field, j.timeout); err != nil {
		return j.stepError(field, ErrElementNotFound, err)
	}
	if err := j.session.TypeText(field, name); err != nil {
		return j.stepError(field, ErrElementNotFound, err)
	}
	return j.activate(j.selectors.ConfirmButton)
}

func (j *JoinSession) stepError(selector string, kind, err error) error {
	return &StepError{From: j.state, Selector: selector, Kind: kind, Err: err}
}

func (j *JoinSession) transition(to State) {
	log.Printf("🚦 Join: %s -> %s", j.state, to)
	j.state = to
	j.history = append(j.history, to)
}

func (j *JoinSession) fail(err error) error {
	if j.state.Terminal() {
		return err
	}
	j.err = err
	j.transition(StateFailed)
	if shot, ok := j.session.(browser.Screenshotter); ok {
		if serr := shot.Screenshot("join-" + j.history[len(j.history)-2].String()); serr != nil {
			log.Printf("⚠️ Failed to capture join screenshot: %v", serr)
		}
	}
	return err
}
