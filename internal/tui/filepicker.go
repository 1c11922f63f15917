package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/styleai/internal/capture"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// FileSelectedMsg is sent when an image file is chosen.
type FileSelectedMsg struct {
	Path string
}

type fileItem struct {
	name  string
	path  string
	isDir bool
}

// FilePicker browses directories showing only folders and image files.
type FilePicker struct {
	dir      string
	items    []fileItem
	selected int
	offset   int
	height   int
	err      error
}

// NewFilePicker creates a picker rooted at dir, or the working directory
// when dir is empty.
func NewFilePicker(dir string) *FilePicker {
	if dir == "" {
		if cwd, err := os.Getwd(); err == nil {
			dir = cwd
		} else {
			dir = "."
		}
	}
	fp := &FilePicker{height: 10}
	fp.load(dir)
	return fp
}

// load reads dir, keeping directories and image files sorted by name with
// directories first.
func (f *FilePicker) load(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		f.err = err
		return
	}
	f.err = nil

	var dirs, files []fileItem
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		full := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			dirs = append(dirs, fileItem{name: e.Name(), path: full, isDir: true})
		case capture.IsImagePath(e.Name()):
			files = append(files, fileItem{name: e.Name(), path: full})
		}
	}
	byName := func(items []fileItem) {
		sort.Slice(items, func(i, j int) bool {
			return strings.ToLower(items[i].name) < strings.ToLower(items[j].name)
		})
	}
	byName(dirs)
	byName(files)

	f.items = f.items[:0]
	if abs, err := filepath.Abs(dir); err == nil && abs != filepath.Dir(abs) {
		f.items = append(f.items, fileItem{name: "..", path: filepath.Dir(abs), isDir: true})
	}
	f.items = append(f.items, dirs...)
	f.items = append(f.items, files...)
	f.dir = dir
	f.selected = 0
	f.offset = 0
}

// Dir returns the directory being shown.
func (f *FilePicker) Dir() string { return f.dir }

// SetHeight sets how many rows of entries are visible.
func (f *FilePicker) SetHeight(h int) {
	if h < 3 {
		h = 3
	}
	f.height = h
}

// Update handles navigation keys. Enter on a directory descends; enter on
// an image emits FileSelectedMsg.
func (f *FilePicker) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if f.selected > 0 {
			f.selected--
		}
	case "down", "j":
		if f.selected < len(f.items)-1 {
			f.selected++
		}
	case "backspace":
		parent := filepath.Dir(f.dir)
		if parent != f.dir {
			f.load(parent)
		}
	case "enter":
		if f.selected < 0 || f.selected >= len(f.items) {
			return nil
		}
		item := f.items[f.selected]
		if item.isDir {
			f.load(item.path)
			return nil
		}
		path := item.path
		return func() tea.Msg { return FileSelectedMsg{Path: path} }
	}

	if f.selected < f.offset {
		f.offset = f.selected
	}
	if f.selected >= f.offset+f.height {
		f.offset = f.selected - f.height + 1
	}
	return nil
}

// View renders the current directory listing.
func (f *FilePicker) View() string {
	s := theme.Current().S()
	var b strings.Builder
	b.WriteString(s.Muted.Render(f.dir))
	b.WriteString("\n")

	if f.err != nil {
		b.WriteString(s.Error.Render(f.err.Error()))
		return b.String()
	}

	hasImages := false
	for _, it := range f.items {
		if !it.isDir {
			hasImages = true
			break
		}
	}

	end := f.offset + f.height
	if end > len(f.items) {
		end = len(f.items)
	}
	for i := f.offset; i < end; i++ {
		it := f.items[i]
		icon := "🖼 "
		if it.isDir {
			icon = "📁"
		}
		line := icon + " " + it.name
		if i == f.selected {
			b.WriteString(s.OptionFocused.Render("▸ " + line))
		} else {
			b.WriteString("  " + s.Body.Render(line))
		}
		b.WriteString("\n")
	}
	if !hasImages {
		b.WriteString(s.Muted.Italic(true).Render("No images in this directory"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
