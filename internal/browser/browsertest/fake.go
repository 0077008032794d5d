// Package browsertest provides a scripted browser.Session for tests.
package browsertest

import (
	"fmt"
	"sync"
	"time"

	"go-turnip-automation/internal/browser"
)

// Call records one interaction in the order it was issued.
type Call struct {
	Op       string
	Selector string
	Arg      string
}

// FakeSession answers waits from a fixed set of visible selectors.
// Selectors that are not visible time out immediately.
type FakeSession struct {
	mu sync.Mutex

	Visible     map[string]bool
	HTML        string
	NavigateErr error
	ClickErr    map[string]error

	Calls       []Call
	Closed      bool
	Screenshots []string
}

func NewFakeSession(html string, visible ...string) *FakeSession {
	v := make(map[string]bool, len(visible))
	for _, sel := range visible {
		v[sel] = true
	}
	return &FakeSession{Visible: v, HTML: html, ClickErr: map[string]error{}}
}

func (f *FakeSession) record(op, sel, arg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Op: op, Selector: sel, Arg: arg})
}

func (f *FakeSession) Navigate(url string) error {
	f.record("navigate", "", url)
	return f.NavigateErr
}

func (f *FakeSession) WaitForVisible(selector string, timeout time.Duration) error {
	f.record("wait", selector, timeout.String())
	if f.Visible[selector] {
		return nil
	}
	return fmt.Errorf("%s after %v: %w", selector, timeout, browser.ErrWaitTimeout)
}

func (f *FakeSession) Snapshot() (string, error) {
	f.record("snapshot", "", "")
	return f.HTML, nil
}

func (f *FakeSession) Click(selector string) error {
	f.record("click", selector, "")
	return f.ClickErr[selector]
}

func (f *FakeSession) TypeText(selector, text string) error {
	f.record("type", selector, text)
	return nil
}

func (f *FakeSession) Screenshot(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Screenshots = append(f.Screenshots, name)
	return nil
}

func (f *FakeSession) Close() error {
	f.record("close", "", "")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Ops returns the operation names in call order.
func (f *FakeSession) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Typed returns every text sent through TypeText.
func (f *FakeSession) Typed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.Calls {
		if c.Op == "type" {
			out = append(out, c.Arg)
		}
	}
	return out
}

var _ browser.Session = (*FakeSession)(nil)
var _ browser.Screenshotter = (*FakeSession)(nil)
