package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/styleai/internal/stylist"
)

func optionValues(f stylist.Field) []string {
	opts := stylist.OptionsFor(f)
	values := make([]string, 0, len(opts))
	for _, o := range opts {
		values = append(values, o.Value)
	}
	return values
}

func (s *Server) registerTools() error {
	s.mcpServer.AddTool(
		mcp.NewTool("analyze-style",
			mcp.WithDescription("Analyze a photo and return skin tone and outfit recommendations"),
			mcp.WithString("image_path", mcp.Required(),
				mcp.Description("Path to a local image file"),
			),
			mcp.WithString("gender", mcp.Required(), mcp.Enum(optionValues(stylist.FieldGender)...)),
			mcp.WithString("style", mcp.Required(), mcp.Enum(optionValues(stylist.FieldStyle)...)),
			mcp.WithString("occasion", mcp.Required(), mcp.Enum(optionValues(stylist.FieldOccasion)...)),
			mcp.WithString("budget", mcp.Required(), mcp.Enum(optionValues(stylist.FieldBudget)...)),
		),
		s.handleAnalyzeStyle,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("preference-options",
			mcp.WithDescription("List the accepted values for every style preference"),
		),
		s.handlePreferenceOptions,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list-outfits",
			mcp.WithDescription("List gallery outfits, optionally filtered by occasion"),
			mcp.WithString("occasion",
				mcp.Description("Case-insensitive occasion filter, e.g. Work or Date Night"),
			),
		),
		s.handleListOutfits,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list-trends",
			mcp.WithDescription("List current fashion trends and upcoming predictions"),
		),
		s.handleListTrends,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("style-quiz",
			mcp.WithDescription("Submit style quiz answers and receive matching outfits"),
			mcp.WithObject("answers", mcp.Required(),
				mcp.Description("Answers keyed by question field: gender, ageGroup, budget (strings) and style, colors, occasions (string arrays)"),
			),
		),
		s.handleStyleQuiz,
	)

	return nil
}
