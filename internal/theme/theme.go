// Package theme owns the dark/light display preference of a visitor. A
// Controller resolves the preference from a Store once, reflects it onto a
// styling Root and keeps both in sync on every change.
package theme

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-pkgz/lgr"
)

// StorageKey is the single key the preference is persisted under.
const StorageKey = "theme-preference"

// Mode is a display mode, also the literal value persisted in the store.
type Mode string

// enum of supported modes
const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// ErrInvalidMode is returned by Set for anything other than Dark or Light.
var ErrInvalidMode = errors.New("invalid theme mode")

// ParseMode accepts exactly "dark" or "light".
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Dark, Light:
		return Mode(s), true
	default:
		return "", false
	}
}

// String returns the persisted literal.
func (m Mode) String() string { return string(m) }

// Inverse returns the mode a toggle would switch to.
func (m Mode) Inverse() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Label is the human readable name used on toggle controls.
func (m Mode) Label() string {
	if m == Dark {
		return "Dark Mode"
	}
	return "Light Mode"
}

func modeOf(isDark bool) Mode {
	if isDark {
		return Dark
	}
	return Light
}

// State is a point-in-time view of a Controller.
type State struct {
	IsDark      bool `json:"is_dark"`
	Initialized bool `json:"initialized"`
}

// Mode of the state.
func (s State) Mode() Mode { return modeOf(s.IsDark) }

// Root is the styling root a mode is reflected onto.
type Root interface {
	Apply(m Mode)
}

// Controller is the single owner of the preference. It's safe for concurrent use.
type Controller struct {
	store Store
	root  Root
	log   lgr.L

	mu          sync.Mutex
	isDark      bool
	initialized bool
	subs        []subscription
	nextSubID   int
}

type subscription struct {
	id int
	fn func(State)
}

// Option configures a Controller.
type Option func(c *Controller)

// WithLogger sets the logger used to report storage failures.
func WithLogger(l lgr.L) Option {
	return func(c *Controller) { c.log = l }
}

// New makes a Controller with the default (dark, not initialized) state.
// A nil root is allowed for consumers that only need the state.
func New(store Store, root Root, opts ...Option) *Controller {
	c := &Controller{store: store, root: root, log: lgr.Default(), isDark: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize resolves the persisted preference. It runs once, later calls are no-ops.
// Storage failures fall back to dark and are only logged.
func (c *Controller) Initialize() {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return
	}
	c.isDark = c.resolve()
	c.initialized = true
	c.apply()
	st := c.stateLocked()
	subs := c.subscribers()
	c.mu.Unlock()

	notify(subs, st)
}

// resolve reads the store, writing the default back when the value is missing or corrupt.
func (c *Controller) resolve() bool {
	if c.store == nil {
		return true
	}
	val, err := c.store.Get(StorageKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		c.log.Logf("[WARN] theme storage not available, using %s as default: %v", Dark, err)
		return true
	}
	if m, ok := ParseMode(val); ok && err == nil {
		return m == Dark
	}
	if err := c.store.Set(StorageKey, Dark.String()); err != nil {
		c.log.Logf("[WARN] failed to save default theme preference: %v", err)
	}
	return true
}

// Toggle flips the preference and returns the new state.
func (c *Controller) Toggle() State {
	c.mu.Lock()
	st := c.change(!c.isDark)
	subs := c.subscribers()
	c.mu.Unlock()

	notify(subs, st)
	return st
}

// Set switches to an explicit mode.
func (c *Controller) Set(m Mode) error {
	if _, ok := ParseMode(string(m)); !ok {
		return fmt.Errorf("set theme %q: %w", m, ErrInvalidMode)
	}
	c.mu.Lock()
	st := c.change(m == Dark)
	subs := c.subscribers()
	c.mu.Unlock()

	notify(subs, st)
	return nil
}

// change applies and persists a new value, caller holds the lock.
func (c *Controller) change(isDark bool) State {
	c.isDark = isDark
	c.apply()
	if c.store != nil {
		if err := c.store.Set(StorageKey, modeOf(isDark).String()); err != nil {
			c.log.Logf("[WARN] failed to save theme preference: %v", err)
		}
	}
	return c.stateLocked()
}

func (c *Controller) apply() {
	if c.root != nil {
		c.root.Apply(modeOf(c.isDark))
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{IsDark: c.isDark, Initialized: c.initialized}
}

// Current returns the active mode.
func (c *Controller) Current() Mode { return c.State().Mode() }

// CurrentLabel is the display text of the active mode.
func (c *Controller) CurrentLabel() string { return c.Current().Label() }

// ToggleLabel is the display text of the mode a toggle would switch to.
func (c *Controller) ToggleLabel() string { return c.Current().Inverse().Label() }

// Subscribe registers fn to be called after every change. The returned func cancels it.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSubID++
	id := c.nextSubID
	c.subs = append(c.subs, subscription{id: id, fn: fn})
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) subscribers() []func(State) {
	res := make([]func(State), 0, len(c.subs))
	for _, s := range c.subs {
		res = append(res, s.fn)
	}
	return res
}

func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st)
	}
}
