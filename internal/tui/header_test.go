package tui

import (
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/tui/testfixtures"
	"github.com/stretchr/testify/assert"
)

var testLinks = []NavLink{
	{Label: "Home", Path: "/"},
	{Label: "Style Quiz", Path: "/style-quiz"},
	{Label: "Trends", Path: "/trends"},
}

// linksOnRow scans a row and returns the link paths in order of appearance.
func linksOnRow(h *Header, width, y int) []string {
	var paths []string
	last := ""
	for x := 0; x < width; x++ {
		p := h.LinkAtPosition(x, y)
		if p != "" && p != last {
			paths = append(paths, p)
		}
		last = p
	}
	return paths
}

func TestHeader_LinkRegions(t *testing.T) {
	h := NewHeader("Your Personal AI Stylist")
	h.SetLinks(testLinks)
	h.SetActive("/style-quiz")

	out := testfixtures.Render(func(scr uv.Screen, area uv.Rectangle) {
		h.Draw(scr, uv.Rect(0, 0, area.Dx(), HeaderHeight))
	})

	first := strings.Split(out, "\n")[0]
	assert.Contains(t, first, "StyleAI")
	assert.Contains(t, first, "Your Personal AI Stylist")
	for _, l := range testLinks {
		assert.Contains(t, first, l.Label)
	}

	assert.Equal(t, []string{"/", "/style-quiz", "/trends"}, linksOnRow(h, testfixtures.TestTermWidth, 0))
	assert.Empty(t, linksOnRow(h, testfixtures.TestTermWidth, 1), "the rule row has no links")
}

func TestHeader_NarrowDropsTrailingLinks(t *testing.T) {
	h := NewHeader("")
	h.SetLayoutMode(LayoutCompact)
	h.SetLinks(testLinks)

	testfixtures.Render(func(scr uv.Screen, area uv.Rectangle) {
		h.Draw(scr, uv.Rect(0, 0, 30, HeaderHeight))
	})

	paths := linksOnRow(h, 30, 0)
	assert.NotEmpty(t, paths)
	assert.Less(t, len(paths), len(testLinks))
	assert.Equal(t, "/", paths[0], "links are dropped from the end")
}

func TestHeader_RightTextWithoutLinks(t *testing.T) {
	h := NewHeader("")
	h.SetRight("Upload")

	out := testfixtures.Render(func(scr uv.Screen, area uv.Rectangle) {
		h.Draw(scr, uv.Rect(0, 0, area.Dx(), HeaderHeight))
	})

	assert.Contains(t, strings.Split(out, "\n")[0], "Upload")
	assert.Empty(t, linksOnRow(h, testfixtures.TestTermWidth, 0))
}
