package render

import (
	"fmt"
	"time"
)

const (
	defaultWaitTimeout  = 2 * time.Second
	defaultPollInterval = 5 * time.Millisecond
)

// Session drives one mounted tree through simulated interactions and
// retrying assertions. Each scenario gets a fresh Session, so no state can
// leak between scenarios.
type Session struct {
	host         *Host
	waitTimeout  time.Duration
	pollInterval time.Duration
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithWaitTimeout bounds how long settle-and-check assertions retry.
func WithWaitTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.waitTimeout = d }
}

// WithPollInterval sets the delay between assertion retries.
func WithPollInterval(d time.Duration) SessionOption {
	return func(s *Session) { s.pollInterval = d }
}

// NewSession constructs a Session with its own Host.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		host:         NewHost(),
		waitTimeout:  defaultWaitTimeout,
		pollInterval: defaultPollInterval,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Mount installs the root component and renders the initial tree.
func (s *Session) Mount(root Component) {
	s.host.Mount(root, nil)
}

// Flush re-renders if anything is dirty.
func (s *Session) Flush() {
	s.host.Flush()
}

// After schedules deferred work on the host task queue, e.g. resolving an
// asynchronous validation from a scenario body.
func (s *Session) After(d time.Duration, fn func()) {
	s.host.After(d, fn)
}

// Type simulates typing text into the input with the given id, one rune at
// a time, flushing after each keystroke. The accumulated value is tracked
// locally: a stale tree keeps showing its old value, but the user keeps
// typing on top of what they entered.
func (s *Session) Type(id, text string) error {
	input, err := s.findInput(id)
	if err != nil {
		return err
	}

	current := input.Value

	for _, r := range text {
		if input.OnInput == nil {
			return fmt.Errorf("input %q has no handler", id)
		}

		current += string(r)
		input.OnInput(current)
		s.host.Flush()

		if fresh, ferr := s.findInput(id); ferr == nil {
			input = fresh
		}
	}

	return nil
}

// Click simulates clicking the button with the given id.
func (s *Session) Click(id string) error {
	node := findNode(s.host.Tree(), id)

	button, ok := node.(*ButtonNode)
	if !ok {
		return fmt.Errorf("button %q: %w", id, ErrNodeNotFound)
	}

	if button.OnClick == nil {
		return fmt.Errorf("button %q has no handler", id)
	}

	button.OnClick()
	s.host.Flush()

	return nil
}

// SelectOption simulates choosing a value in the selector with the given id.
func (s *Session) SelectOption(id, value string) error {
	node := findNode(s.host.Tree(), id)

	sel, ok := node.(*SelectNode)
	if !ok {
		return fmt.Errorf("select %q: %w", id, ErrNodeNotFound)
	}

	if sel.OnChange == nil {
		return fmt.Errorf("select %q has no handler", id)
	}

	sel.OnChange(value)
	s.host.Flush()

	return nil
}

// Text returns the current value of the text node with the given id.
func (s *Session) Text(id string) (string, error) {
	node := findNode(s.host.Tree(), id)

	text, ok := node.(*TextNode)
	if !ok {
		return "", fmt.Errorf("text %q: %w", id, ErrNodeNotFound)
	}

	return text.Value, nil
}

// InputValue returns the rendered value of the input with the given id.
func (s *Session) InputValue(id string) (string, error) {
	input, err := s.findInput(id)
	if err != nil {
		return "", err
	}

	return input.Value, nil
}

// Has reports whether any node with the given id is currently rendered.
func (s *Session) Has(id string) bool {
	return findNode(s.host.Tree(), id) != nil
}

// WaitFor retries check until it succeeds or the settle timeout elapses,
// pumping due tasks and flushing between attempts. A timeout yields a
// TimeoutError wrapping the last failing check.
func (s *Session) WaitFor(check func() error) error {
	deadline := time.Now().Add(s.waitTimeout)

	for {
		s.host.RunDueTasks()
		s.host.Flush()

		last := check()
		if last == nil {
			return nil
		}

		if time.Now().After(deadline) {
			return &TimeoutError{After: s.waitTimeout, Err: last}
		}

		time.Sleep(s.pollInterval)
	}
}

// WaitForText waits until the text node with the given id shows want.
func (s *Session) WaitForText(id, want string) error {
	return s.WaitFor(func() error {
		got, err := s.Text(id)
		if err != nil {
			return err
		}

		if got != want {
			return fmt.Errorf("text %q is %q, want %q", id, got, want)
		}

		return nil
	})
}

// WaitForInputValue waits until the input with the given id shows want.
func (s *Session) WaitForInputValue(id, want string) error {
	return s.WaitFor(func() error {
		got, err := s.InputValue(id)
		if err != nil {
			return err
		}

		if got != want {
			return fmt.Errorf("input %q is %q, want %q", id, got, want)
		}

		return nil
	})
}

// WaitForPresent waits until a node with the given id appears.
func (s *Session) WaitForPresent(id string) error {
	return s.WaitFor(func() error {
		if !s.Has(id) {
			return fmt.Errorf("node %q: %w", id, ErrNodeNotFound)
		}

		return nil
	})
}

// StaysAbsent pumps and settles for the full window and reports an error
// if a node with the given id ever appears. It is the negative counterpart
// of WaitForPresent for sections that must never render.
func (s *Session) StaysAbsent(id string, window time.Duration) error {
	deadline := time.Now().Add(window)

	for {
		s.host.RunDueTasks()
		s.host.Flush()

		if s.Has(id) {
			return fmt.Errorf("node %q appeared unexpectedly", id)
		}

		if time.Now().After(deadline) {
			return nil
		}

		time.Sleep(s.pollInterval)
	}
}

func (s *Session) findInput(id string) (*InputNode, error) {
	node := findNode(s.host.Tree(), id)

	input, ok := node.(*InputNode)
	if !ok {
		return nil, fmt.Errorf("input %q: %w", id, ErrNodeNotFound)
	}

	return input, nil
}
