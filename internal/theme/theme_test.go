package theme

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tbl := []struct {
		in   string
		mode Mode
		ok   bool
	}{
		{"dark", Dark, true},
		{"light", Light, true},
		{"", "", false},
		{"blue", "", false},
		{"Dark", "", false},
	}
	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			m, ok := ParseMode(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.mode, m)
		})
	}
}

func TestController_InitializeFresh(t *testing.T) {
	store := NewMemoryStore()
	doc := NewDocument()
	c := New(store, doc, WithLogger(lgr.NoOp))

	assert.Equal(t, State{IsDark: true, Initialized: false}, c.State())
	c.Initialize()

	assert.Equal(t, State{IsDark: true, Initialized: true}, c.State())
	v, err := store.Get(StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
	assert.Equal(t, "dark", doc.Root.String())
	assert.Equal(t, "dark", doc.Body.String())
}

func TestController_InitializeStoredValue(t *testing.T) {
	for _, stored := range []string{"dark", "light"} {
		t.Run(stored, func(t *testing.T) {
			store := &countingStore{MemoryStore: NewMemoryStore()}
			require.NoError(t, store.MemoryStore.Set(StorageKey, stored))
			doc := NewDocument()
			c := New(store, doc, WithLogger(lgr.NoOp))
			c.Initialize()

			assert.Equal(t, Mode(stored), c.Current())
			assert.True(t, c.State().Initialized)
			assert.Equal(t, 0, store.sets, "valid value must not be rewritten")
			assert.True(t, doc.Root.Has(stored))
			assert.True(t, doc.Body.Has(stored))
		})
	}
}

func TestController_InitializeCorruptValue(t *testing.T) {
	for _, stored := range []string{"blue", "", "DARK"} {
		t.Run(stored, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Set(StorageKey, stored))
			c := New(store, NewDocument(), WithLogger(lgr.NoOp))
			c.Initialize()

			assert.Equal(t, Dark, c.Current())
			v, err := store.Get(StorageKey)
			require.NoError(t, err)
			assert.Equal(t, "dark", v)
		})
	}
}

func TestController_InitializeStorageUnavailable(t *testing.T) {
	store := NewMemoryStore()
	store.Fail(errors.New("storage disabled"))
	doc := NewDocument()
	var logged []string
	c := New(store, doc, WithLogger(lgr.Func(func(format string, args ...any) { logged = append(logged, format) })))

	c.Initialize()
	assert.Equal(t, State{IsDark: true, Initialized: true}, c.State())
	assert.True(t, doc.Root.Has("dark"))
	assert.Len(t, logged, 1)

	// toggle still works in memory
	st := c.Toggle()
	assert.False(t, st.IsDark)
	assert.True(t, doc.Body.Has("light"))
	assert.Len(t, logged, 2)
}

func TestController_InitializeOnce(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(StorageKey, "light"))
	c := New(store, nil, WithLogger(lgr.NoOp))
	c.Initialize()
	c.Toggle()
	require.NoError(t, store.Set(StorageKey, "light"))

	c.Initialize()
	assert.Equal(t, Dark, c.Current(), "second initialize must not re-read the store")
	assert.True(t, c.State().Initialized)
}

func TestController_ToggleTwice(t *testing.T) {
	store := NewMemoryStore()
	doc := NewDocument()
	c := New(store, doc, WithLogger(lgr.NoOp))
	c.Initialize()
	before := c.State()
	rootBefore, bodyBefore := doc.Root.String(), doc.Body.String()

	st := c.Toggle()
	assert.False(t, st.IsDark)
	assert.Equal(t, "light", doc.Root.String())
	v, _ := store.Get(StorageKey)
	assert.Equal(t, "light", v)

	st = c.Toggle()
	assert.Equal(t, before, st)
	assert.Equal(t, rootBefore, doc.Root.String())
	assert.Equal(t, bodyBefore, doc.Body.String())
	v, _ = store.Get(StorageKey)
	assert.Equal(t, "dark", v)
}

func TestController_Set(t *testing.T) {
	store := NewMemoryStore()
	doc := NewDocument()
	c := New(store, doc, WithLogger(lgr.NoOp))
	c.Initialize()

	require.NoError(t, c.Set(Light))
	assert.Equal(t, Light, c.Current())
	assert.False(t, doc.Root.Has("dark"))
	v, _ := store.Get(StorageKey)
	assert.Equal(t, "light", v)

	require.NoError(t, c.Set(Light))
	assert.Equal(t, Light, c.Current())

	err := c.Set(Mode("blue"))
	require.ErrorIs(t, err, ErrInvalidMode)
	assert.Equal(t, Light, c.Current())
}

func TestController_Labels(t *testing.T) {
	c := New(NewMemoryStore(), nil, WithLogger(lgr.NoOp))
	c.Initialize()
	assert.Equal(t, "Dark Mode", c.CurrentLabel())
	assert.Equal(t, "Light Mode", c.ToggleLabel())

	c.Toggle()
	assert.Equal(t, "Light Mode", c.CurrentLabel())
	assert.Equal(t, "Dark Mode", c.ToggleLabel())
}

func TestController_Subscribe(t *testing.T) {
	c := New(NewMemoryStore(), nil, WithLogger(lgr.NoOp))
	var first, second []State
	cancelFirst := c.Subscribe(func(s State) { first = append(first, s) })
	c.Subscribe(func(s State) { second = append(second, s) })

	c.Initialize()
	c.Toggle()
	cancelFirst()
	require.NoError(t, c.Set(Dark))

	assert.Equal(t, []State{{IsDark: true, Initialized: true}, {IsDark: false, Initialized: true}}, first)
	assert.Len(t, second, 3)
	assert.True(t, second[2].IsDark)
}

func TestController_SubscriberCanReadState(t *testing.T) {
	c := New(NewMemoryStore(), nil, WithLogger(lgr.NoOp))
	var label string
	c.Subscribe(func(State) { label = c.ToggleLabel() })
	c.Initialize()
	assert.Equal(t, "Light Mode", label)
}

func TestController_SQLiteStore(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	defer db.Close()

	visitor := db.Scope("visitor-1")
	c := New(visitor, NewDocument(), WithLogger(lgr.NoOp))
	c.Initialize()
	c.Toggle()

	// a new page load sees the persisted value
	c2 := New(visitor, nil, WithLogger(lgr.NoOp))
	c2.Initialize()
	assert.Equal(t, Light, c2.Current())

	// other visitors are independent
	c3 := New(db.Scope("visitor-2"), nil, WithLogger(lgr.NoOp))
	c3.Initialize()
	assert.Equal(t, Dark, c3.Current())
}

func TestSQLiteStore(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)

	_, err = db.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.Set("k", "v1"))
	require.NoError(t, db.Set("k", "v2"))
	v, err := db.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	scoped := db.Scope("p")
	_, err = scoped.Get("k")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, scoped.Set("k", "v3"))
	v, err = db.Get("p:k")
	require.NoError(t, err)
	assert.Equal(t, "v3", v)

	require.NoError(t, db.Close())
	_, err = db.Get("k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDocument_Apply(t *testing.T) {
	doc := &Document{Root: NewClassList("scroll-smooth"), Body: NewClassList("dark", "antialiased")}
	doc.Apply(Light)
	assert.Equal(t, "scroll-smooth light", doc.Root.String())
	assert.Equal(t, "antialiased light", doc.Body.String())

	doc.Apply(Light)
	assert.Equal(t, "scroll-smooth light", doc.Root.String())

	doc.Apply(Dark)
	assert.True(t, doc.Root.Has("dark"))
	assert.False(t, doc.Root.Has("light"))
	assert.False(t, doc.Body.Has("light"))
}

type countingStore struct {
	*MemoryStore
	sets int
}

func (s *countingStore) Set(key, value string) error {
	s.sets++
	return s.MemoryStore.Set(key, value)
}
