package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/stylist"
)

// setupTestServer creates a server over the embedded catalog with a fast task.
func setupTestServer(t *testing.T) *Server {
	t.Helper()
	srv := New(catalog.Default(), stylist.TaskConfig{
		Interval: time.Millisecond,
		Step:     14.3,
		Settle:   time.Millisecond,
	}, "test")
	if _, err := srv.build(); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return srv
}

// extractText extracts text from CallToolResult.Content[0]
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func writeTestPNG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "selfie.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestHandleAnalyzeStyle_Success(t *testing.T) {
	srv := setupTestServer(t)

	req := callRequest("analyze-style", map[string]any{
		"image_path": writeTestPNG(t),
		"gender":     "female",
		"style":      "classic",
		"occasion":   "work",
		"budget":     "mid",
	})

	result, err := srv.handleAnalyzeStyle(context.Background(), req)
	if err != nil {
		t.Fatalf("handleAnalyzeStyle returned error: %v", err)
	}

	text := extractText(result)
	var resp analysisResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("result is not JSON: %v\n%s", err, text)
	}
	if resp.Result.SkinTone.Confidence != 94 {
		t.Errorf("confidence = %d, want 94", resp.Result.SkinTone.Confidence)
	}
	if len(resp.Result.Recommendations.Outfits) != 4 {
		t.Errorf("expected 4 outfits, got %d", len(resp.Result.Recommendations.Outfits))
	}
	if resp.Image.Width != 4 || resp.Image.Height != 3 {
		t.Errorf("unexpected image size %dx%d", resp.Image.Width, resp.Image.Height)
	}
	if resp.Preferences["occasion"] != "Work/Office" {
		t.Errorf("occasion label = %q", resp.Preferences["occasion"])
	}
	if strings.Contains(text, "base64") {
		t.Error("data URL leaked into response")
	}
}

func TestHandleAnalyzeStyle_Validation(t *testing.T) {
	srv := setupTestServer(t)
	full := map[string]any{
		"image_path": writeTestPNG(t),
		"gender":     "female",
		"style":      "classic",
		"occasion":   "work",
		"budget":     "mid",
	}

	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   string
	}{
		{"no image", func(a map[string]any) { delete(a, "image_path") }, "error: missing 'image_path' parameter"},
		{"missing budget", func(a map[string]any) { delete(a, "budget") }, "error: missing 'budget' parameter"},
		{"bad style", func(a map[string]any) { a["style"] = "grunge" }, "error:"},
		{"not an image", func(a map[string]any) {
			path := filepath.Join(t.TempDir(), "notes.txt")
			_ = os.WriteFile(path, []byte("hello"), 0o644)
			a["image_path"] = path
		}, "error:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := make(map[string]any, len(full))
			for k, v := range full {
				args[k] = v
			}
			tt.mutate(args)

			result, err := srv.handleAnalyzeStyle(context.Background(), callRequest("analyze-style", args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if text := extractText(result); !strings.Contains(text, tt.want) {
				t.Errorf("got %q, want it to contain %q", text, tt.want)
			}
		})
	}
}

func TestHandleListOutfits(t *testing.T) {
	srv := setupTestServer(t)

	result, err := srv.handleListOutfits(context.Background(), callRequest("list-outfits", map[string]any{"occasion": "work"}))
	if err != nil {
		t.Fatalf("handleListOutfits returned error: %v", err)
	}
	var outfits []catalog.GalleryOutfit
	if err := json.Unmarshal([]byte(extractText(result)), &outfits); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if len(outfits) == 0 {
		t.Fatal("expected work outfits")
	}
	for _, o := range outfits {
		if o.Occasion != "Work" {
			t.Errorf("unexpected occasion %q", o.Occasion)
		}
	}

	result, _ = srv.handleListOutfits(context.Background(), callRequest("list-outfits", nil))
	if err := json.Unmarshal([]byte(extractText(result)), &outfits); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if len(outfits) != len(catalog.Default().Gallery) {
		t.Errorf("expected full gallery, got %d", len(outfits))
	}

	result, _ = srv.handleListOutfits(context.Background(), callRequest("list-outfits", map[string]any{"occasion": "Moon Landing"}))
	if !strings.Contains(extractText(result), "No outfits found") {
		t.Errorf("unexpected result: %s", extractText(result))
	}
}

func TestHandleListTrends(t *testing.T) {
	srv := setupTestServer(t)

	result, err := srv.handleListTrends(context.Background(), callRequest("list-trends", nil))
	if err != nil {
		t.Fatalf("handleListTrends returned error: %v", err)
	}
	text := extractText(result)
	if !strings.Contains(text, `"trends"`) || !strings.Contains(text, `"predictions"`) {
		t.Errorf("unexpected result: %s", text)
	}
}

func TestHandlePreferenceOptions(t *testing.T) {
	srv := setupTestServer(t)

	result, err := srv.handlePreferenceOptions(context.Background(), callRequest("preference-options", nil))
	if err != nil {
		t.Fatalf("handlePreferenceOptions returned error: %v", err)
	}
	var out map[string][]stylist.Option
	if err := json.Unmarshal([]byte(extractText(result)), &out); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if len(out) != 4 {
		t.Errorf("expected 4 fields, got %d", len(out))
	}
	if len(out["gender"]) != 3 {
		t.Errorf("expected 3 gender options, got %d", len(out["gender"]))
	}
}

func TestHandleStyleQuiz(t *testing.T) {
	srv := setupTestServer(t)

	answers := map[string]any{
		"gender":    "Unisex",
		"ageGroup":  "26-35",
		"style":     []any{"Casual", "Chic", "Casual"},
		"colors":    []any{"Earth Tones"},
		"occasions": []any{"Work", "Travel"},
		"budget":    "Mid-Range ($$)",
	}
	result, err := srv.handleStyleQuiz(context.Background(), callRequest("style-quiz", map[string]any{"answers": answers}))
	if err != nil {
		t.Fatalf("handleStyleQuiz returned error: %v", err)
	}

	var resp quizResponse
	if err := json.Unmarshal([]byte(extractText(result)), &resp); err != nil {
		t.Fatalf("not JSON: %v\n%s", err, extractText(result))
	}
	if resp.Route != "/outfits" {
		t.Errorf("route = %q", resp.Route)
	}
	if got := resp.Preferences.Style; len(got) != 2 || got[0] != "Casual" || got[1] != "Chic" {
		t.Errorf("style = %v, want [Casual Chic]", got)
	}
	if resp.Preferences.Budget != "Mid-Range ($$)" {
		t.Errorf("budget = %q", resp.Preferences.Budget)
	}
}

func TestHandleStyleQuiz_Incomplete(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		name    string
		answers map[string]any
		want    string
	}{
		{"unanswered step", map[string]any{"gender": "Unisex"}, "ageGroup unanswered"},
		{"invalid option", map[string]any{"gender": "Robot"}, "error:"},
		{"wrong shape", map[string]any{"gender": []any{"Unisex"}}, "expected a single option"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := srv.handleStyleQuiz(context.Background(), callRequest("style-quiz", map[string]any{"answers": tt.answers}))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if text := extractText(result); !strings.Contains(text, tt.want) {
				t.Errorf("got %q, want it to contain %q", text, tt.want)
			}
		})
	}

	result, _ := srv.handleStyleQuiz(context.Background(), callRequest("style-quiz", map[string]any{}))
	if !strings.Contains(extractText(result), "missing 'answers'") {
		t.Errorf("unexpected result: %s", extractText(result))
	}
}

func TestServe_StopsOnClosedInput(t *testing.T) {
	srv := setupTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var out bytes.Buffer
	if err := srv.Serve(ctx, strings.NewReader(""), &out); err != nil {
		t.Fatalf("Serve returned error: %v", err)
	}
}
