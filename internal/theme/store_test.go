package theme

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/libris/internal/infrastructure/storage"
	"github.com/alexisbeaulieu97/libris/internal/ports"
)

func visualClasses(r *Root) []string {
	var out []string
	for _, c := range r.Classes() {
		if c == ClassLight || c == ClassDark {
			out = append(out, c)
		}
	}
	return out
}

func TestNewStoreDefaultsToSystem(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	store := NewStore(storage.NewMemoryStore(nil), root, NewStaticScheme(true))

	assert.Equal(t, ModeSystem, store.Mode())
	assert.Equal(t, []string{ClassDark}, visualClasses(root))
}

func TestNewStoreIgnoresUnknownPersistedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(storage.NewMemoryStore(map[string]string{ports.KeyTheme: "sepia"}), NewRoot(), NewStaticScheme(false))
	assert.Equal(t, ModeSystem, store.Mode())
	assert.Equal(t, ClassLight, store.Applied())
}

func TestSetAppliesExactlyOneClass(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	root.Add("compact")
	scheme := NewStaticScheme(true)
	store := NewStore(storage.NewMemoryStore(nil), root, scheme)

	for _, mode := range []Mode{ModeLight, ModeDark, ModeSystem, ModeLight, ModeSystem, ModeDark} {
		require.NoError(t, store.Set(mode))

		classes := visualClasses(root)
		require.Len(t, classes, 1, "mode %s", mode)

		expected := string(mode)
		if mode == ModeSystem {
			expected = ClassDark
		}
		assert.Equal(t, expected, classes[0])
		assert.True(t, root.Has("compact"), "unrelated classes are preserved")
	}
}

func TestSetPersistsAcrossReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.yaml")
	kv, err := storage.NewFileStore(path)
	require.NoError(t, err)

	for _, mode := range Modes {
		require.NoError(t, NewStore(kv, NewRoot(), NewStaticScheme(false)).Set(mode))

		reopened, err := storage.NewFileStore(path)
		require.NoError(t, err)
		reloaded := NewStore(reopened, NewRoot(), NewStaticScheme(false))
		assert.Equal(t, mode, reloaded.Mode())
		assert.Len(t, visualClasses(reloaded.Root()), 1)
	}
}

func TestSetRejectsUnknownMode(t *testing.T) {
	t.Parallel()

	store := NewStore(storage.NewMemoryStore(nil), NewRoot(), nil)
	require.Error(t, store.Set(Mode("sepia")))
	assert.Equal(t, ModeSystem, store.Mode())
}

func TestWatchTracksSchemeOnlyInSystemMode(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	scheme := NewStaticScheme(false)
	store := NewStore(storage.NewMemoryStore(nil), root, scheme)

	var applied []string
	store.OnApply(func(class string) { applied = append(applied, class) })

	teardown := store.Watch()
	assert.Equal(t, 1, scheme.Subscribers())

	scheme.Set(true)
	assert.Equal(t, []string{ClassDark}, visualClasses(root))

	require.NoError(t, store.Set(ModeLight))
	scheme.Set(false)
	scheme.Set(true)
	assert.Equal(t, []string{ClassLight}, visualClasses(root), "explicit mode ignores the signal")

	teardown()
	assert.Equal(t, 0, scheme.Subscribers())

	require.NoError(t, store.Set(ModeSystem))
	scheme.Set(false)
	assert.Equal(t, []string{ClassDark}, visualClasses(root), "no updates after teardown")

	assert.Equal(t, []string{ClassDark, ClassLight, ClassDark}, applied)
}

func TestToggleCyclesModes(t *testing.T) {
	t.Parallel()

	store := NewStore(storage.NewMemoryStore(map[string]string{ports.KeyTheme: "light"}), NewRoot(), NewStaticScheme(false))

	next, err := store.Toggle()
	require.NoError(t, err)
	assert.Equal(t, ModeDark, next)

	next, err = store.Toggle()
	require.NoError(t, err)
	assert.Equal(t, ModeSystem, next)

	next, err = store.Toggle()
	require.NoError(t, err)
	assert.Equal(t, ModeLight, next)
}
