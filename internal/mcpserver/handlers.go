package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/styleai/internal/capture"
	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
)

// imageSummary is the image metadata echoed back; the data URL is omitted.
type imageSummary struct {
	Name   string `json:"name"`
	MIME   string `json:"mime"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int    `json:"size"`
}

type analysisResponse struct {
	Session     string                 `json:"session"`
	Image       imageSummary           `json:"image"`
	Preferences map[string]string      `json:"preferences"`
	Result      stylist.AnalysisResult `json:"result"`
}

type quizResponse struct {
	Route       string                  `json:"route"`
	Preferences stylist.QuizPreferences `json:"preferences"`
	Outfits     []catalog.GalleryOutfit `json:"outfits"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleAnalyzeStyle runs the full wizard headlessly against a local image.
func (s *Server) handleAnalyzeStyle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultText("error: no arguments provided"), nil
	}

	path, ok := args["image_path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultText("error: missing 'image_path' parameter"), nil
	}

	var prefs stylist.Preferences
	for _, f := range stylist.Fields {
		v, _ := args[string(f)].(string)
		if v == "" {
			return mcp.NewToolResultText(fmt.Sprintf("error: missing '%s' parameter", f)), nil
		}
		if err := prefs.Set(f, v); err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
		}
	}

	img, err := capture.LoadFile(path, stylist.SourceFile)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	w, err := stylist.Run(ctx, stylist.RunOptions{
		Image:       img,
		Preferences: prefs,
		Task:        s.task,
		Result:      s.catalog.Result(),
	})
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: analysis failed: %v", err)), nil
	}
	logger.Debug("analyze-style session %s finished for %s", w.Session(), img.Name)

	labels := make(map[string]string, len(stylist.Fields))
	for _, f := range stylist.Fields {
		labels[string(f)] = stylist.Label(f, prefs.Get(f))
	}

	return jsonResult(analysisResponse{
		Session: w.Session(),
		Image: imageSummary{
			Name:   img.Name,
			MIME:   img.MIME,
			Width:  img.Width,
			Height: img.Height,
			Size:   img.Size,
		},
		Preferences: labels,
		Result:      *w.Result(),
	})
}

// handlePreferenceOptions lists value/label pairs per field.
func (s *Server) handlePreferenceOptions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := make(map[string][]stylist.Option, len(stylist.Fields))
	for _, f := range stylist.Fields {
		out[string(f)] = stylist.OptionsFor(f)
	}
	return jsonResult(out)
}

func (s *Server) handleListOutfits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	occasion, _ := request.GetArguments()["occasion"].(string)
	occasion = strings.TrimSpace(occasion)

	outfits := make([]catalog.GalleryOutfit, 0, len(s.catalog.Gallery))
	for _, o := range s.catalog.Gallery {
		if occasion == "" || strings.EqualFold(o.Occasion, occasion) {
			outfits = append(outfits, o)
		}
	}
	if len(outfits) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No outfits found for occasion %q", occasion)), nil
	}
	return jsonResult(outfits)
}

func (s *Server) handleListTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(struct {
		Trends      []catalog.Trend      `json:"trends"`
		Predictions []catalog.Prediction `json:"predictions"`
	}{s.catalog.Trends, s.catalog.Predictions})
}

// handleStyleQuiz replays the answers through a Quiz so every step is
// validated exactly as the interactive quiz would.
func (s *Server) handleStyleQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultText("error: no arguments provided"), nil
	}
	answers, ok := args["answers"].(map[string]any)
	if !ok {
		return mcp.NewToolResultText("error: missing 'answers' parameter"), nil
	}

	quiz := stylist.NewQuiz()
	for {
		question := quiz.Question()
		values, err := answerValues(answers[question.Field], question.Multi)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("error: %s: %v", question.Field, err)), nil
		}
		for _, v := range values {
			if err := quiz.Select(v); err != nil {
				return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
			}
		}
		prefs, done, err := quiz.Next()
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
		}
		if done {
			return jsonResult(quizResponse{
				Route:       "/outfits",
				Preferences: prefs,
				Outfits:     s.catalog.Gallery,
			})
		}
	}
}

// answerValues normalizes a raw JSON answer into option strings.
func answerValues(raw any, multi bool) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if multi {
			return nil, fmt.Errorf("expected an array of options")
		}
		return []string{v}, nil
	case []any:
		if !multi {
			return nil, fmt.Errorf("expected a single option")
		}
		out := make([]string, 0, len(v))
		seen := make(map[string]bool, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("option %d is not a string", i)
			}
			// Select toggles, so a repeated option would cancel itself out.
			if seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported answer type %T", raw)
	}
}
