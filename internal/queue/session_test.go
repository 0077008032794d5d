package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-turnip-automation/internal/browser"
	"go-turnip-automation/internal/browser/browsertest"
)

var testSelectors = Selectors{
	PageMarker:    "#detail",
	NoticeButton:  "#notice",
	JoinButton:    "#join",
	IdentityField: "#name",
	ConfirmButton: "#confirm",
}

const detailURL = "https://turnip.test/island/abc"

func allVisible() []string {
	return []string{"#detail", "#notice", "#join", "#name", "#confirm"}
}

func without(sel string) []string {
	var out []string
	for _, s := range allVisible() {
		if s != sel {
			out = append(out, s)
		}
	}
	return out
}

func TestJoinSession_HappyPath(t *testing.T) {
	fake := browsertest.NewFakeSession("", allVisible()...)
	j := NewJoinSession(fake, testSelectors, 10*time.Second)

	require.NoError(t, j.Run(detailURL, "Isabelle"))
	assert.Equal(t, StateDone, j.State())
	assert.Equal(t, []State{
		StateIdle, StatePageLoaded, StateNoticeDismissed,
		StateJoinRequested, StateIdentitySubmitted, StateDone,
	}, j.History())

	assert.Equal(t, []string{
		"navigate", "wait", "wait", "click", "wait", "click", "wait", "type", "wait", "click",
	}, fake.Ops())
	assert.Equal(t, detailURL, fake.Calls[0].Arg)
	assert.Equal(t, "10s", fake.Calls[1].Arg)
	assert.Equal(t, []string{"Isabelle"}, fake.Typed())
	assert.False(t, fake.Closed, "session stays open for the user")
	assert.Empty(t, fake.Screenshots)
}

func TestJoinSession_Failures(t *testing.T) {
	tests := []struct {
		name      string
		hidden    string
		kind      error
		lastState State
	}{
		{name: "page marker", hidden: "#detail", kind: ErrNavigationTimeout, lastState: StateIdle},
		{name: "notice", hidden: "#notice", kind: ErrElementNotFound, lastState: StatePageLoaded},
		{name: "join", hidden: "#join", kind: ErrElementNotFound, lastState: StateNoticeDismissed},
		{name: "identity field", hidden: "#name", kind: ErrElementNotFound, lastState: StateJoinRequested},
		{name: "confirm", hidden: "#confirm", kind: ErrElementNotFound, lastState: StateJoinRequested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := browsertest.NewFakeSession("", without(tt.hidden)...)
			j := NewJoinSession(fake, testSelectors, 10*time.Second)

			err := j.Run(detailURL, "Isabelle")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.True(t, errors.Is(err, browser.ErrWaitTimeout))
			assert.Equal(t, StateFailed, j.State())
			assert.Equal(t, err, j.Err())

			h := j.History()
			assert.Equal(t, tt.lastState, h[len(h)-2])

			var stepErr *StepError
			require.True(t, errors.As(err, &stepErr))
			assert.Equal(t, tt.hidden, stepErr.Selector)
			assert.Len(t, fake.Screenshots, 1)
			assert.False(t, fake.Closed)
		})
	}
}

func TestJoinSession_IdentityNeverTypedWhenFieldMissing(t *testing.T) {
	fake := browsertest.NewFakeSession("", without("#name")...)
	j := NewJoinSession(fake, testSelectors, 10*time.Second)

	err := j.Run(detailURL, "Isabelle")
	assert.True(t, errors.Is(err, ErrElementNotFound))
	assert.Equal(t, StateFailed, j.State())
	assert.Empty(t, fake.Typed())
	assert.NotContains(t, fake.Ops(), "type")
}

func TestJoinSession_NoRetryAfterTimeout(t *testing.T) {
	fake := browsertest.NewFakeSession("", without("#notice")...)
	j := NewJoinSession(fake, testSelectors, 10*time.Second)

	require.Error(t, j.Run(detailURL, "Isabelle"))
	waits := 0
	for _, c := range fake.Calls {
		if c.Op == "wait" && c.Selector == "#notice" {
			waits++
		}
	}
	assert.Equal(t, 1, waits)
}

func TestJoinSession_NavigateError(t *testing.T) {
	fake := browsertest.NewFakeSession("", allVisible()...)
	fake.NavigateErr = errors.New("net::ERR_NAME_NOT_RESOLVED")
	j := NewJoinSession(fake, testSelectors, time.Second)

	err := j.Run(detailURL, "Isabelle")
	assert.True(t, errors.Is(err, ErrNavigationTimeout))
	assert.Equal(t, StateFailed, j.State())
	assert.Equal(t, []string{"navigate"}, fake.Ops())
}

func TestJoinSession_ClickError(t *testing.T) {
	fake := browsertest.NewFakeSession("", allVisible()...)
	fake.ClickErr["#join"] = errors.New("element detached")
	j := NewJoinSession(fake, testSelectors, time.Second)

	err := j.Run(detailURL, "Isabelle")
	assert.True(t, errors.Is(err, ErrElementNotFound))
	assert.Equal(t, StateFailed, j.State())
}

func TestJoinSession_SingleUse(t *testing.T) {
	fake := browsertest.NewFakeSession("", allVisible()...)
	j := NewJoinSession(fake, testSelectors, time.Second)

	require.NoError(t, j.Run(detailURL, "Isabelle"))
	assert.ErrorIs(t, j.Run(detailURL, "Isabelle"), ErrSessionUsed)
	assert.Equal(t, StateDone, j.State())
}

func TestJoinSession_SingleUseAfterFailure(t *testing.T) {
	fake := browsertest.NewFakeSession("", without("#join")...)
	j := NewJoinSession(fake, testSelectors, time.Second)

	first := j.Run(detailURL, "Isabelle")
	require.Error(t, first)
	calls := len(fake.Calls)

	assert.ErrorIs(t, j.Run(detailURL, "Isabelle"), ErrSessionUsed)
	assert.Len(t, fake.Calls, calls, "a finished session issues no more interactions")
	assert.Equal(t, StateFailed, j.State())
	assert.Equal(t, first, j.Err())
	assert.Len(t, fake.Screenshots, 1)
}

func TestJoinSession_EmptyName(t *testing.T) {
	fake := browsertest.NewFakeSession("", allVisible()...)
	j := NewJoinSession(fake, testSelectors, time.Second)

	assert.ErrorIs(t, j.Run(detailURL, "  "), ErrEmptyIdentity)
	assert.Equal(t, StateFailed, j.State())
	assert.NotContains(t, fake.Ops(), "navigate")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "identity-submitted", StateIdentitySubmitted.String())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateJoinRequested.Terminal())
}
