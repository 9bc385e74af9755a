package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikbrunner/termhome/internal/cli"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

type workspace struct {
	dir    string
	config string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	contentDir := filepath.Join(dir, "content")
	write := func(rel, body string) {
		path := filepath.Join(contentDir, rel)
		assert.NilError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		assert.NilError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("blog/hello-world.md", `---
title: Hello World
date: 2025-01-02
category: Notes
excerpt: First post.
---

Some *markdown* body.
`)
	write("resources/go.md", `---
title: The Go Programming Language
date: 2025-01-01
topic: Languages
type: Resource
link: https://go.dev
quick-access: "yes"
---
`)

	config := filepath.Join(dir, "config.toml")
	assert.NilError(t, os.WriteFile(config, []byte(`
[content]
dir = "`+contentDir+`"

[storage]
driver = "json"
path = "`+filepath.Join(dir, "state.json")+`"

[log]
level = "error"
`), 0o644))

	return workspace{dir: dir, config: config}
}

func (w workspace) run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", w.config}, args...))
	assert.NilError(t, cmd.Execute())
	return out.String()
}

func TestLayoutShowAndReset(t *testing.T) {
	w := newWorkspace(t)

	out := w.run(t, "layout", "show")
	assert.Equal(t, out, "left:  latest-logs, system-status, quick-access\nright: api-widget, xkcd\n")

	state := filepath.Join(w.dir, "state.json")
	assert.NilError(t, os.WriteFile(state,
		[]byte(`{"homepage-section-layout":"{\"left\":[\"xkcd\"],\"right\":[\"latest-logs\"]}"}`), 0o644))

	out = w.run(t, "layout", "show")
	assert.Equal(t, out, "left:  xkcd, system-status, quick-access, api-widget\nright: latest-logs\n")

	out = w.run(t, "layout", "reset")
	assert.Equal(t, out, "left:  latest-logs, system-status, quick-access\nright: api-widget, xkcd\n")
}

func TestLayoutShowIsReadOnly(t *testing.T) {
	w := newWorkspace(t)

	state := filepath.Join(w.dir, "state.json")
	legacy := `{"homepage-section-order":"[\"xkcd\",\"api-widget\",\"latest-logs\",\"system-status\",\"quick-access\"]"}`
	assert.NilError(t, os.WriteFile(state, []byte(legacy), 0o644))

	out := w.run(t, "layout", "show")
	assert.Equal(t, out, "left:  xkcd, api-widget, latest-logs\nright: system-status, quick-access\n")

	data, err := os.ReadFile(state)
	assert.NilError(t, err)
	assert.Equal(t, string(data), legacy)
}

func TestMinimize(t *testing.T) {
	w := newWorkspace(t)

	assert.Equal(t, w.run(t, "minimize", "radio"), "radio minimized\n")
	assert.Equal(t, w.run(t, "minimize", "radio"), "radio shown\n")

	var out bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", w.config, "minimize", "weather"})
	assert.ErrorContains(t, cmd.Execute(), `unknown component "weather"`)
}

func TestSearch(t *testing.T) {
	w := newWorkspace(t)

	out := w.run(t, "search", "hello")
	assert.Check(t, is.Contains(out, "hello-world"))
	assert.Check(t, is.Contains(out, "Hello World"))

	out = w.run(t, "search", "zzzz")
	assert.Equal(t, out, "No matches for 'zzzz'\n")
}

func TestRead(t *testing.T) {
	w := newWorkspace(t)

	out := w.run(t, "read", "hello-world", "--width", "60")
	assert.Check(t, is.Contains(out, "Hello World"))
	assert.Check(t, is.Contains(out, "markdown"))
}

func TestExport(t *testing.T) {
	w := newWorkspace(t)
	path := filepath.Join(w.dir, "out.html")

	out := w.run(t, "export", path)
	assert.Equal(t, out, "Exported 1 resources to "+path+"\n")

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(string(data), `HREF="https://go.dev"`))
}

func TestImport(t *testing.T) {
	w := newWorkspace(t)
	bookmarks := filepath.Join(w.dir, "bookmarks.html")
	assert.NilError(t, os.WriteFile(bookmarks, []byte(`<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
  <DT><H3>Languages</H3>
  <DL><p>
    <DT><A HREF="https://go.dev" ADD_DATE="1700000000">Go</A>
    <DT><A HREF="https://www.rust-lang.org" ADD_DATE="1700000000">Rust</A>
  </DL><p>
</DL><p>
`), 0o644))

	out := w.run(t, "import", bookmarks)
	assert.Equal(t, out, "Imported 1 resources (1 duplicates skipped)\n")

	out = w.run(t, "search", "rust")
	assert.Check(t, strings.Contains(out, "Rust"), out)
}
