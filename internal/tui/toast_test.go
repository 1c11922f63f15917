package tui

import (
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/tui/testfixtures"
)

func TestToast_ShowDisplaysMessage(t *testing.T) {
	toast := NewToast()

	cmd := toast.Show("Wardrobe is coming soon")

	if !toast.IsVisible() {
		t.Error("expected toast to be visible after Show()")
	}
	if toast.GetMessage() != "Wardrobe is coming soon" {
		t.Errorf("expected message 'Wardrobe is coming soon', got %q", toast.GetMessage())
	}
	if cmd == nil {
		t.Error("expected Show() to return a command for dismissal")
	}
}

func TestToast_DismissMsgHidesToast(t *testing.T) {
	toast := NewToast()
	toast.Show("test message")

	toast.Update(ToastDismissMsg{Seq: 1})

	if toast.IsVisible() {
		t.Error("expected toast to be hidden after dismiss")
	}
	if toast.GetMessage() != "" {
		t.Errorf("expected empty message after dismiss, got %q", toast.GetMessage())
	}
}

func TestToast_StaleDismissKeepsNewerToast(t *testing.T) {
	toast := NewToast()
	toast.Show("first")
	toast.Warn("second")

	// The first toast's timer fires after the second was shown
	toast.Update(ToastDismissMsg{Seq: 1})

	if !toast.IsVisible() {
		t.Fatal("expected newer toast to survive a stale dismiss")
	}
	if toast.GetMessage() != "second" {
		t.Errorf("expected message 'second', got %q", toast.GetMessage())
	}

	toast.Update(ToastDismissMsg{Seq: 2})
	if toast.IsVisible() {
		t.Error("expected toast to be hidden by its own dismiss")
	}
}

func TestToast_DrawBottomRight(t *testing.T) {
	toast := NewToast()

	empty := testfixtures.Render(func(scr uv.Screen, area uv.Rectangle) {
		toast.Draw(scr, area)
	})
	if strings.TrimSpace(empty) != "" {
		t.Errorf("expected nothing drawn when hidden, got %q", empty)
	}

	toast.Show("Added to favorites")
	out := testfixtures.Render(func(scr uv.Screen, area uv.Rectangle) {
		toast.Draw(scr, area)
	})
	lines := strings.Split(out, "\n")
	idx := -1
	for i, line := range lines {
		if strings.Contains(line, "Added to favorites") {
			idx = i
		}
	}
	if idx < testfixtures.TestTermHeight/2 {
		t.Errorf("expected toast in the lower half, found on line %d", idx)
	}
}
