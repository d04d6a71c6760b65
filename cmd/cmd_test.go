package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drengskapur/filemerge/pkg/merger"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := RootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func workdir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestMergeUnmerge(t *testing.T) {
	files := map[string]string{
		"src/a.go":      "package src\n",
		"src/a_test.go": "package src_test\n",
		"src/b/b.go":    "package b\n\nfunc B() {}\n",
		"README.md":     "# readme\n",
	}
	dir := workdir(t, files)

	out, err := execute(t, "merge", "-o", "out/merged.txt", "src/**/*.go", "*.md", "!**/*_test.go")
	require.NoError(t, err)
	assert.Contains(t, out, "Merged 3 files into out/merged.txt")

	merged, err := os.ReadFile(filepath.Join(dir, "out", "merged.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(merged), merger.DefaultPrependMarker+" src/a.go\n"))
	assert.NotContains(t, string(merged), "a_test.go")

	restored := filepath.Join(dir, "restored")
	_, err = execute(t, "unmerge", "--dir", restored, "out/merged.txt")
	require.NoError(t, err)

	for _, name := range []string{"src/a.go", "src/b/b.go", "README.md"} {
		got, err := os.ReadFile(filepath.Join(restored, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, files[name], string(got))
	}
	assert.NoFileExists(t, filepath.Join(restored, "src", "a_test.go"))
}

func TestMerge_CustomMarkers(t *testing.T) {
	dir := workdir(t, map[string]string{"a.txt": "a\n"})

	_, err := execute(t, "--prepend-marker", "@@ file", "--append-marker", "@@@ done",
		"merge", "-o", "merged.txt", "a.txt")
	require.NoError(t, err)

	merged, err := os.ReadFile(filepath.Join(dir, "merged.txt"))
	require.NoError(t, err)
	assert.Equal(t, "@@ file a.txt\na\n@@@ done\n", string(merged))
}

func TestMerge_ReportsEveryViolation(t *testing.T) {
	dir := workdir(t, map[string]string{
		"a.txt": "ok\n" + merger.DefaultAppendMarker + "\n",
		"b.txt": merger.DefaultPrependMarker + " x\n",
	})

	_, err := execute(t, "merge", "-o", "merged.txt", "*.txt")
	require.Error(t, err)
	assert.Len(t, merger.Violations(err), 2)
	assert.NoFileExists(t, filepath.Join(dir, "merged.txt"))

	var report bytes.Buffer
	PrintError(&report, err)
	lines := strings.Split(strings.TrimSpace(report.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "✗ Line #2 in file a.txt is the same as the append marker", lines[0])
	assert.Equal(t, "✗ Line #1 in file b.txt starts with the prepend marker", lines[1])
	assert.Equal(t, "2 problem(s) found", lines[2])
}

func TestMerge_IgnoreFile(t *testing.T) {
	dir := workdir(t, map[string]string{
		"keep.txt":     "keep\n",
		"skip.txt":     "skip\n",
		".mergeignore": "# local\nskip.txt\n",
	})

	_, err := execute(t, "merge", "-o", "merged.txt", "--ignore-file", ".mergeignore", "*.txt")
	require.NoError(t, err)

	merged, err := os.ReadFile(filepath.Join(dir, "merged.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(merged), "keep.txt")
	assert.NotContains(t, string(merged), "skip.txt")
}

func TestMerge_RequiresOutput(t *testing.T) {
	workdir(t, map[string]string{"a.txt": "a\n"})
	_, err := execute(t, "merge", "a.txt")
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	workdir(t, map[string]string{"a.txt": "a\n", "b.txt": "b\n"})

	out, err := execute(t, "check", "*.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "2 files can be merged")
}

func TestUnmerge_MalformedFile(t *testing.T) {
	workdir(t, map[string]string{"bad.txt": "stray line\n"})

	_, err := execute(t, "unmerge", "bad.txt")
	require.ErrorIs(t, err, merger.ErrOrphanLine)
}

func TestList(t *testing.T) {
	workdir(t, map[string]string{"a.txt": "1\n2\n", "dir/b.txt": "3\n"})
	_, err := execute(t, "merge", "-o", "merged.txt", "a.txt", "dir/b.txt")
	require.NoError(t, err)

	out, err := execute(t, "list", "merged.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "a.txt\t2 lines\n")
	assert.Contains(t, out, "dir/b.txt\t1 lines\n")
	assert.Contains(t, out, "2 files, 3 lines")

	out, err = execute(t, "list", "--tree", "merged.txt")
	require.NoError(t, err)
	assert.Equal(t, ".\n├── dir/\n│   └── b.txt\n└── a.txt\n", out)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "filemerge version dev"))
}

func TestCheck_WarnsAboutMissingNewline(t *testing.T) {
	workdir(t, map[string]string{"a.txt": "a\n", "b.txt": "b"})

	out, err := execute(t, "check", "*.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "! b.txt does not end with a newline, merging adds one")
	assert.NotContains(t, out, "a.txt does not end")
	assert.Contains(t, out, "2 files can be merged")
}
