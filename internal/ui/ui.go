package ui

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/koki-develop/glyphview/internal/ascii"
	"github.com/koki-develop/glyphview/internal/loader"
	"github.com/koki-develop/glyphview/internal/render"
	"github.com/koki-develop/glyphview/internal/resize"
	"github.com/koki-develop/glyphview/internal/util"
	"github.com/mattn/go-runewidth"
)

type Option struct {
	Paths    []string
	Renderer *render.Renderer

	// ASCII draws with the ASCII converter instead of glyphs, colored when
	// Colored is set.
	ASCII   bool
	Colored bool

	// Width and Height cap the image size in cells. Zero means the window
	// size.
	Width  int
	Height int
}

func Start(opt *Option) error {
	m := newModel(opt)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	if m.err != nil {
		return m.err
	}

	return nil
}

var _ tea.Model = &model{}

type model struct {
	err error

	ctx    context.Context
	cancel context.CancelFunc

	opt       *Option
	resizer   *resize.Resizer
	renderer  *render.Renderer
	converter *ascii.Converter
	spinner   spinner.Model

	paths   []string
	current int

	state        modelState
	windowHeight int
	windowWidth  int

	images []image.Image

	// cache only holds renders for the current window size.
	cache   map[viewKey]string
	pending map[viewKey]bool
}

type viewKey struct {
	index, width, height int
}

func newModel(opt *Option) *model {
	ctx, cancel := context.WithCancel(context.Background())
	return &model{
		ctx:    ctx,
		cancel: cancel,

		opt:       opt,
		resizer:   resize.NewResizer(),
		renderer:  opt.Renderer,
		converter: ascii.NewConverter(opt.Colored),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),

		paths:   opt.Paths,
		current: 0,
		cache:   map[viewKey]string{},
		pending: map[viewKey]bool{},
	}
}

func (m *model) Init() tea.Cmd {
	m.state = modelStateLoading
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m *model) View() string {
	switch m.state {
	case modelStateLoading:
		return m.loadingView()
	case modelStateViewing:
		return m.imageView() + "\n" + m.helpView()
	}

	return ""
}

func (m *model) loadingView() string {
	return fmt.Sprintf("%s loading %d images...", m.spinner.View(), len(m.paths))
}

func (m *model) imageView() string {
	if v, ok := m.cache[m.key()]; ok {
		return v
	}
	return m.spinner.View() + " rendering..."
}

func (m *model) helpView() string {
	name := filepath.Base(m.paths[m.current])
	pos := fmt.Sprintf(" %d/%d ", m.current+1, len(m.paths))
	help := " ←/→ Esc"

	width := runewidth.StringWidth(pos) + 1 + runewidth.StringWidth(name) + runewidth.StringWidth(help)
	b := new(strings.Builder)
	b.WriteString(strings.Repeat(" ", util.Max(0, (m.windowWidth-width)/2)))
	b.WriteString(color.New(color.BgBlue, color.FgWhite).Sprint(pos))
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(help)

	return b.String()
}

type modelState string

const (
	modelStateLoading modelState = "loading"
	modelStateViewing modelState = "viewing"
)

type errMsg struct{ error }
type loadMsg struct {
	images []image.Image
}
type renderedMsg struct {
	key  viewKey
	view string
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancel()
			return m, tea.Quit
		}
		if m.state != modelStateViewing {
			return m, nil
		}
		switch msg.String() {
		case "right", " ", "enter", "n":
			m.move(1)
		case "left", "p":
			m.move(-1)
		default:
			return m, nil
		}
		return m, m.render()

	case errMsg:
		m.err = msg.error
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.windowHeight = msg.Height
		m.windowWidth = msg.Width
		m.cache = map[viewKey]string{}
		m.pending = map[viewKey]bool{}
		return m, m.render()

	case loadMsg:
		m.images = msg.images
		m.state = modelStateViewing
		return m, m.render()

	case renderedMsg:
		delete(m.pending, msg.key)
		if msg.key.width == m.windowWidth && msg.key.height == m.windowHeight {
			m.cache[msg.key] = msg.view
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) move(delta int) {
	n := len(m.images)
	m.current = ((m.current+delta)%n + n) % n
}

func (m *model) key() viewKey {
	return viewKey{m.current, m.windowWidth, m.windowHeight}
}

func (m *model) busy() bool {
	if m.state == modelStateLoading {
		return true
	}
	_, ok := m.cache[m.key()]
	return !ok
}

// render starts rendering the current image for the current window size
// unless it is cached or already on its way.
func (m *model) render() tea.Cmd {
	if m.state != modelStateViewing || len(m.images) == 0 {
		return nil
	}
	key := m.key()
	if _, ok := m.cache[key]; ok || m.pending[key] {
		return nil
	}
	m.pending[key] = true

	img := m.images[key.index]
	w, h := m.limits()
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return renderedMsg{key: key, view: m.draw(img, w, h, key.width)}
	})
}

func (m *model) limits() (int, int) {
	w := util.Max(1, m.windowWidth)
	h := util.Max(1, m.windowHeight-2)
	if m.opt.Width > 0 {
		w = util.Min(w, m.opt.Width)
	}
	if m.opt.Height > 0 {
		h = util.Min(h, m.opt.Height)
	}
	return w, h
}

// draw runs on a command goroutine and only reads model fields that never
// change after newModel.
func (m *model) draw(img image.Image, w, h, windowWidth int) string {
	var (
		rows []string
		cols int
	)
	if m.opt.ASCII {
		scaled := m.resizer.FitCells(img, w, h)
		rows = m.converter.ImageToASCII(scaled)
		cols = scaled.Bounds().Dx()
	} else {
		scaled := m.resizer.Fit(img, w, h)
		var err error
		rows, err = m.renderer.Render(m.ctx, scaled)
		if err != nil {
			return err.Error()
		}
		cols, _ = render.Grid(scaled)
	}

	leftPad := strings.Repeat(" ", util.Max(0, (windowWidth-cols)/2))
	b := new(strings.Builder)
	for _, line := range rows {
		b.WriteString(leftPad)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *model) load() tea.Cmd {
	return func() tea.Msg {
		imgs := make([]image.Image, 0, len(m.paths))
		for _, path := range m.paths {
			img, err := loader.Load(path)
			if err != nil {
				return errMsg{fmt.Errorf("%s: %w", path, err)}
			}
			imgs = append(imgs, img)
		}
		return loadMsg{imgs}
	}
}
