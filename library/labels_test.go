package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameResolver(t *testing.T) {
	r := NewFilenameResolver()

	for _, tc := range []struct {
		path     string
		expected string
	}{
		{"happy_1.wav", "happy"},
		{"happy_2.wav", "happy"},
		{"/data/samples/angry_03.mp3", "angry"},
		{"purr.wav", "purr"},
		{"attention-seeking_1.wav", "attention_seeking"},
		{"food-demand.mp3", "food_demand"},
	} {
		label, ok := r.Resolve(tc.path)
		require.True(t, ok, tc.path)
		assert.Equal(t, tc.expected, label, tc.path)
	}
}

func TestTableResolver(t *testing.T) {
	r := NewTableResolver(map[string]string{
		"rec001": "hungry",
		"rec002": "",
	})

	label, ok := r.Resolve("/data/rec001.wav")
	require.True(t, ok)
	assert.Equal(t, "hungry", label)

	// Empty labels and missing entries don't resolve
	_, ok = r.Resolve("rec002.wav")
	assert.False(t, ok)
	_, ok = r.Resolve("rec003.wav")
	assert.False(t, ok)

	_, ok = NewTableResolver(nil).Resolve("rec001.wav")
	assert.False(t, ok)
}

func TestLoadTableResolver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rec001: hungry\nrec002: content\n"), 0o644))

	r, err := LoadTableResolver(path)
	require.NoError(t, err)

	label, ok := r.Resolve("rec002.wav")
	require.True(t, ok)
	assert.Equal(t, "content", label)

	_, err = LoadTableResolver(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("- just\n- a\n- list\n"), 0o644))
	_, err = LoadTableResolver(bad)
	assert.Error(t, err)
}

func TestOverrideResolver(t *testing.T) {
	r := NewOverrideResolver(map[string]string{"oddball_7": "hiss"})

	label, ok := r.Resolve("/x/oddball_7.wav")
	require.True(t, ok)
	assert.Equal(t, "hiss", label)

	_, ok = r.Resolve("other.wav")
	assert.False(t, ok)
}

func TestResolverChainPriority(t *testing.T) {
	// The table outranks the filename convention
	chain := DefaultResolver(map[string]string{"happy_1": "sleepy"}, nil)

	label, ok := chain.Resolve("happy_1.wav")
	require.True(t, ok)
	assert.Equal(t, "sleepy", label)

	// Not in the table: filename convention takes over
	label, ok = chain.Resolve("happy_2.wav")
	require.True(t, ok)
	assert.Equal(t, "happy", label)
}

func TestResolverChainUnresolved(t *testing.T) {
	// A chain with only a table cannot resolve unlisted files
	chain := NewResolverChain(NewTableResolver(map[string]string{"a": "b"}))

	label, ok := chain.Resolve("mystery.wav")
	assert.False(t, ok)
	assert.Equal(t, UnknownLabel, label)
}
