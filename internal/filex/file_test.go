package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_RelativeCreatedInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("uploads")
	require.NoError(t, err)

	want := filepath.Join(tmp, "uploads")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_AbsoluteAndIdempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b")

	first, err := EnsureDir(target)
	require.NoError(t, err)
	second, err := EnsureDir(target)
	require.NoError(t, err)

	require.Equal(t, target, first)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("uploads", []byte("x"), 0o660))

	_, err := EnsureDir("uploads")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestSafeJoin(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		rel     string
		want    string
		wantErr bool
	}{
		{name: "plain", rel: "blogs/a.jpg", want: filepath.Join(root, "blogs", "a.jpg")},
		{name: "leading slash", rel: "/blogs/a.jpg", want: filepath.Join(root, "blogs", "a.jpg")},
		{name: "backslashes", rel: `testimonials\b.png`, want: filepath.Join(root, "testimonials", "b.png")},
		{name: "dot dot", rel: "../etc/passwd", wantErr: true},
		{name: "nested escape", rel: "blogs/../../x", wantErr: true},
		{name: "root itself", rel: "blogs/..", wantErr: true},
		{name: "empty", rel: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SafeJoin(root, tt.rel)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrOutsideRoot)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
