// Narrow view of a live browser tab.
// Every call blocks until the page confirms the action or the bound elapses.

package browser

import (
	"errors"
	"time"
)

// ErrWaitTimeout is returned by WaitForVisible when the selector never became visible.
var ErrWaitTimeout = errors.New("wait timed out")

// Session is the browser-session collaborator consumed by the scraper and the join flow.
type Session interface {
	Navigate(url string) error
	WaitForVisible(selector string, timeout time.Duration) error
	Snapshot() (string, error)
	Click(selector string) error
	TypeText(selector, text string) error
	Close() error
}

// Screenshotter is implemented by sessions that can capture the current page.
type Screenshotter interface {
	Screenshot(name string) error
}
