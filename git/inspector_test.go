package git

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestInspector(p RepositoryProvider, cfg InspectorConfig) *Inspector {
	return NewInspector(p, cfg, quietLogger())
}

func TestInspectorDiscovery(t *testing.T) {
	ctx := context.Background()

	t.Run("nearest ancestor wins", func(t *testing.T) {
		outer := &FixtureRepository{RootDir: "/work", HeadRef: Head{Branch: "outer", Commit: "aaaaaaaa"}}
		inner := &FixtureRepository{RootDir: "/work/vendor/lib", HeadRef: Head{Branch: "inner", Commit: "bbbbbbbb"}}
		provider := NewFixtureProvider(outer, inner)

		status, ok := newTestInspector(provider, InspectorConfig{}).Inspect(ctx, "/work/vendor/lib/src")
		require.True(t, ok)
		assert.Equal(t, "inner", status.Label)
		assert.Equal(t, []string{"/work/vendor/lib/src", "/work/vendor/lib"}, provider.Opened())
	})

	t.Run("walks up in order to the root", func(t *testing.T) {
		provider := NewFixtureProvider()

		_, ok := newTestInspector(provider, InspectorConfig{}).Inspect(ctx, "/a/b/c")
		assert.False(t, ok)
		assert.Equal(t, []string{"/a/b/c", "/a/b", "/a", "/"}, provider.Opened())
	})

	t.Run("open failures are skipped", func(t *testing.T) {
		repo := &FixtureRepository{RootDir: "/a", HeadRef: Head{Branch: "main", Commit: "cccccccc"}}
		provider := NewFixtureProvider(repo).FailOpen("/a/b", errors.New("permission denied"))

		status, ok := newTestInspector(provider, InspectorConfig{}).Inspect(ctx, "/a/b")
		require.True(t, ok)
		assert.Equal(t, "main", status.Label)
	})

	t.Run("cancelled context stops the walk", func(t *testing.T) {
		provider := NewFixtureProvider()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, ok := newTestInspector(provider, InspectorConfig{}).Inspect(cancelled, "/a/b/c")
		assert.False(t, ok)
		assert.Empty(t, provider.Opened())
	})
}

func TestInspectorLabel(t *testing.T) {
	ctx := context.Background()

	t.Run("branch short name", func(t *testing.T) {
		repo := &FixtureRepository{RootDir: "/r", HeadRef: Head{Branch: "feature/login", Commit: "0123456789abcdef"}}
		status, ok := newTestInspector(NewFixtureProvider(repo), InspectorConfig{}).Inspect(ctx, "/r")
		require.True(t, ok)
		assert.Equal(t, "feature/login", status.Label)
	})

	t.Run("detached head is six hex characters", func(t *testing.T) {
		for _, commit := range []string{
			"0123456789abcdef0123456789abcdef01234567",
			"fedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210",
		} {
			repo := &FixtureRepository{RootDir: "/r", HeadRef: Head{Commit: commit, Detached: true}}
			status, ok := newTestInspector(NewFixtureProvider(repo), InspectorConfig{}).Inspect(ctx, "/r")
			require.True(t, ok)
			assert.Len(t, status.Label, ShortHashLength)
			assert.Regexp(t, "^[0-9a-f]{6}$", status.Label)
			assert.Equal(t, commit[:6], status.Label)
		}
	})

	t.Run("unborn head is no repository", func(t *testing.T) {
		repo := &FixtureRepository{RootDir: "/r", HeadErr: ErrUnbornHead}
		_, ok := newTestInspector(NewFixtureProvider(repo), InspectorConfig{}).Inspect(ctx, "/r")
		assert.False(t, ok)
	})

	t.Run("status failure is no repository", func(t *testing.T) {
		repo := &FixtureRepository{RootDir: "/r", HeadRef: Head{Branch: "main", Commit: "abc"}, StatusErr: errors.New("index corrupt")}
		_, ok := newTestInspector(NewFixtureProvider(repo), InspectorConfig{}).Inspect(ctx, "/r")
		assert.False(t, ok)
	})
}

func TestInspectorClassification(t *testing.T) {
	ctx := context.Background()
	head := Head{Branch: "main", Commit: "0123456789"}

	tests := []struct {
		name  string
		files []FileStatus
		want  StatusMarker
	}{
		{"clean", nil, Clean},
		{"one untracked file", []FileStatus{{Path: "new.txt", Kinds: WorktreeNew}}, UnstagedChange},
		{"one staged file", []FileStatus{{Path: "a.go", Kinds: IndexModified}}, StagedChange},
		{
			"staged then unstaged",
			[]FileStatus{{Path: "a.go", Kinds: IndexNew}, {Path: "b.go", Kinds: WorktreeDeleted}},
			UnstagedChange,
		},
		{
			"unstaged then staged",
			[]FileStatus{{Path: "b.go", Kinds: WorktreeDeleted}, {Path: "a.go", Kinds: IndexNew}},
			UnstagedChange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &FixtureRepository{RootDir: "/r", HeadRef: head, Files: tt.files}
			status, ok := newTestInspector(NewFixtureProvider(repo), InspectorConfig{}).Inspect(ctx, "/r/sub")
			require.True(t, ok)
			assert.Equal(t, tt.want, status.Marker)
		})
	}
}

func TestInspectorDisabled(t *testing.T) {
	ctx := context.Background()
	repo := &FixtureRepository{RootDir: "/home/alice/src/mono", HeadRef: Head{Branch: "main", Commit: "abcdef"}}

	t.Run("globally disabled", func(t *testing.T) {
		provider := NewFixtureProvider(repo)
		_, ok := newTestInspector(provider, InspectorConfig{Disabled: true}).Inspect(ctx, "/home/alice/src/mono")
		assert.False(t, ok)
		assert.Empty(t, provider.Opened())
	})

	t.Run("matching path and children are skipped", func(t *testing.T) {
		cfg := InspectorConfig{DisabledPaths: []string{"~/src/mono"}, Home: "/home/alice"}
		inspector := newTestInspector(NewFixtureProvider(repo), cfg)

		_, ok := inspector.Inspect(ctx, "/home/alice/src/mono")
		assert.False(t, ok)
		_, ok = inspector.Inspect(ctx, "/home/alice/src/mono/pkg/deep")
		assert.False(t, ok)
	})

	t.Run("glob patterns", func(t *testing.T) {
		cfg := InspectorConfig{DisabledPaths: []string{"/home/*/src/mono"}}
		_, ok := newTestInspector(NewFixtureProvider(repo), cfg).Inspect(ctx, "/home/alice/src/mono/x")
		assert.False(t, ok)
	})

	t.Run("non-matching path is inspected", func(t *testing.T) {
		other := &FixtureRepository{RootDir: "/home/alice/src/app", HeadRef: Head{Branch: "dev", Commit: "abcdef"}}
		cfg := InspectorConfig{DisabledPaths: []string{"~/src/mono"}, Home: "/home/alice"}
		status, ok := newTestInspector(NewFixtureProvider(repo, other), cfg).Inspect(ctx, "/home/alice/src/app")
		require.True(t, ok)
		assert.Equal(t, "dev", status.Label)
	})

	t.Run("invalid pattern is ignored", func(t *testing.T) {
		cfg := InspectorConfig{DisabledPaths: []string{"[", "!"}}
		status, ok := newTestInspector(NewFixtureProvider(repo), cfg).Inspect(ctx, "/home/alice/src/mono")
		require.True(t, ok)
		assert.Equal(t, "main", status.Label)
	})
}

func TestAncestors(t *testing.T) {
	assert.Equal(t, []string{"/a/b", "/a", "/"}, Ancestors("/a/b/"))
	assert.Equal(t, []string{"/"}, Ancestors("/"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "main", Label(Head{Branch: "main", Commit: "0123456789"}))
	assert.Equal(t, "012345", Label(Head{Commit: "0123456789", Detached: true}))
	assert.Equal(t, "abc", ShortHash("abc"))
}
