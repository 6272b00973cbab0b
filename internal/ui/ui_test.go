package ui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/koki-develop/glyphview/internal/glyph"
	"github.com/koki-develop/glyphview/internal/render"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// drain runs cmd the way the bubbletea runtime would and feeds finished
// renders back into m. Spinner ticks are dropped.
func drain(m *model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	case renderedMsg:
		_, next := m.Update(msg)
		drain(m, next)
	}
}

func update(m *model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	drain(m, cmd)
	return cmd
}

func newTestModelWith(opt *Option, n int) *model {
	paths := make([]string, n)
	images := make([]image.Image, n)
	for i := range paths {
		paths[i] = filepath.Join("dir", string(rune('a'+i))+".png")
		images[i] = solid(color.RGBA{R: uint8(i * 40), A: 255})
	}
	opt.Paths = paths
	if opt.Renderer == nil {
		opt.Renderer = render.New(glyph.FlagFG|glyph.FlagBG|glyph.Flag24Bit, 1)
	}
	m := newModel(opt)
	m.Init()
	update(m, tea.WindowSizeMsg{Width: 20, Height: 12})
	update(m, loadMsg{images})
	return m
}

func newTestModel(n int) *model {
	return newTestModelWith(&Option{}, n)
}

func TestModelNavigation(t *testing.T) {
	m := newTestModel(3)
	require.Equal(t, modelStateViewing, m.state)

	update(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.current)
	update(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 2, m.current)
	update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Equal(t, 0, m.current, "wraps to the first image")
	update(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.current, "wraps to the last image")
	update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	assert.Equal(t, 1, m.current)

	assert.Len(t, m.cache, 3)
	assert.Nil(t, update(m, tea.KeyMsg{Type: tea.KeyRight}), "already rendered")
}

func TestModelView(t *testing.T) {
	m := newTestModel(2)
	v := m.View()
	assert.Contains(t, v, "1/2")
	assert.Contains(t, v, "a.png")
	assert.Contains(t, v, "▄")
	// 12 rows leave 10 for the image, a square image takes all 10,
	// followed by the help line
	assert.Equal(t, 11, strings.Count(v, "\n"))
	assert.Equal(t, v, m.View())

	update(m, tea.WindowSizeMsg{Width: 40, Height: 7})
	v = m.View()
	assert.Equal(t, 6, strings.Count(v, "\n"))
	assert.Len(t, m.cache, 1)
}

func TestModelRendersOffTheEventLoop(t *testing.T) {
	m := newTestModel(1)

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	require.NotNil(t, cmd)
	assert.Empty(t, m.cache)
	assert.Contains(t, m.View(), "rendering")

	drain(m, cmd)
	assert.NotContains(t, m.View(), "rendering")
	assert.Contains(t, m.View(), "▄")
}

func TestModelCacheBoundedOnResize(t *testing.T) {
	m := newTestModel(3)
	for w := 20; w < 80; w++ {
		_, cmd := m.Update(tea.WindowSizeMsg{Width: w, Height: 12})
		require.NotNil(t, cmd, "width %d", w)
		drain(m, cmd)
		m.View()
		assert.LessOrEqual(t, len(m.cache), 1)
	}
}

func TestModelDropsStaleRenders(t *testing.T) {
	m := newTestModel(1)
	_, stale := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	require.NotNil(t, stale)
	update(m, tea.WindowSizeMsg{Width: 50, Height: 10})
	require.Len(t, m.cache, 1)

	drain(m, stale)
	assert.Len(t, m.cache, 1)
	_, ok := m.cache[viewKey{0, 50, 10}]
	assert.True(t, ok)
}

func TestModelASCII(t *testing.T) {
	m := newTestModelWith(&Option{ASCII: true}, 1)
	v := m.View()
	assert.NotContains(t, v, "▄")
	assert.NotContains(t, v, "\x1b[38;2;")
	assert.Equal(t, 11, strings.Count(v, "\n"))
}

func TestModelSizeLimits(t *testing.T) {
	m := newTestModelWith(&Option{Width: 6}, 1)
	v := m.View()
	// 6 columns keep a square image at 3 rows
	assert.Equal(t, 4, strings.Count(v, "\n"))
	first := strings.SplitN(v, "\n", 2)[0]
	assert.True(t, strings.HasPrefix(first, strings.Repeat(" ", 7)+"\x1b["), "%q", first)
}

func TestHelpViewCentersByDisplayWidth(t *testing.T) {
	m := newModel(&Option{Paths: []string{filepath.Join("dir", "画像.png")}})
	m.windowWidth = 40
	v := m.helpView()

	help := runewidth.StringWidth(" ←/→ Esc")
	want := (40 - len(" 1/1 ") - 1 - 8 - help) / 2
	assert.Equal(t, want, len(v)-len(strings.TrimLeft(v, " ")))
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(1)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Error(t, m.ctx.Err(), "pending renders are canceled")
}

func TestModelLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solid(color.RGBA{G: 255, A: 255})))
	require.NoError(t, f.Close())

	m := newModel(&Option{Paths: []string{path}, Renderer: render.New(glyph.FlagFG, 1)})
	msg := m.load()()
	loaded, ok := msg.(loadMsg)
	require.True(t, ok, "got %T", msg)
	assert.Len(t, loaded.images, 1)

	m = newModel(&Option{Paths: []string{filepath.Join(t.TempDir(), "missing.png")}})
	msg = m.load()()
	_, ok = msg.(errMsg)
	assert.True(t, ok)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.Error(t, m.err)
}

func TestModelLoadingView(t *testing.T) {
	m := newModel(&Option{Paths: []string{"a", "b"}})
	m.Init()
	assert.Contains(t, m.View(), "loading 2 images")

	// keys other than quit are ignored while loading
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, m.current)
}
