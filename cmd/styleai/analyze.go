package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mark3labs/styleai/internal/capture"
	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/events"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var analyzeFlags struct {
	gender     string
	style      string
	occasion   string
	budget     string
	tick       string
	jsonOutput bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze an image without the TUI",
	Long: `Analyze an image without the TUI.

Runs the same upload, preferences and analysis flow as the studio and prints
the recommendations. All four preferences are required. Valid values:

  --gender    ` + optionList(stylist.FieldGender) + `
  --style     ` + optionList(stylist.FieldStyle) + `
  --occasion  ` + optionList(stylist.FieldOccasion) + `
  --budget    ` + optionList(stylist.FieldBudget),
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFlags.gender, "gender", "g", "", "Gender preference")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.style, "style", "s", "", "Style preference")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.occasion, "occasion", "o", "", "Occasion preference")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.budget, "budget", "b", "", "Budget preference")
	analyzeCmd.Flags().StringVar(&analyzeFlags.tick, "tick", "", "Progress tick interval, e.g. 50ms")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.jsonOutput, "json", false, "Output result as JSON")
}

// optionList renders the allowed values of a field for help text.
func optionList(f stylist.Field) string {
	opts := stylist.OptionsFor(f)
	values := make([]string, len(opts))
	for i, opt := range opts {
		values[i] = opt.Value
	}
	return strings.Join(values, ", ")
}

// analyzeReport is the --json output.
type analyzeReport struct {
	Session     string                 `json:"session"`
	Image       imageReport            `json:"image"`
	Preferences map[string]string      `json:"preferences"`
	Result      stylist.AnalysisResult `json:"result"`
}

type imageReport struct {
	Name   string `json:"name"`
	MIME   string `json:"mime"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int    `json:"size"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	prefs, err := analyzePreferences()
	if err != nil {
		return err
	}

	img, err := capture.LoadFile(args[0], stylist.SourceFile)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	bus, err := openBus(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBus(bus)

	opts := stylist.RunOptions{
		Image:       img,
		Preferences: prefs,
		Task:        cfg.AnalysisTask(),
		Result:      catalog.Default().Result(),
	}
	if bus != nil {
		recorder := events.NewRecorder(bus)
		defer recorder.Close()
		opts.Observer = recorder
	}

	var sp *spinner.Spinner
	if isTerminal(os.Stderr) {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		sp.Suffix = " Preparing analysis..."
		sp.Start()
	}
	opts.OnProgress = func(p stylist.Progress) {
		if logger.Enabled(logger.LevelDebug) {
			logger.Debug("analysis tick %d: %.1f%% %s", p.Tick, p.Percent, p.Message)
		}
		if sp == nil {
			return
		}
		sp.Lock()
		sp.Suffix = fmt.Sprintf(" %s %3.0f%%", p.Message, min(p.Percent, 100))
		sp.Unlock()
	}

	w, err := stylist.Run(ctx, opts)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeFlags.jsonOutput {
		return printJSON(os.Stdout, buildReport(w, prefs))
	}
	printResult(os.Stdout, w, prefs)
	return nil
}

// analyzePreferences validates the preference flags. Unset fields are left
// empty so the wizard reports everything that is missing at once.
func analyzePreferences() (stylist.Preferences, error) {
	values := map[stylist.Field]string{
		stylist.FieldGender:   analyzeFlags.gender,
		stylist.FieldStyle:    analyzeFlags.style,
		stylist.FieldOccasion: analyzeFlags.occasion,
		stylist.FieldBudget:   analyzeFlags.budget,
	}

	var prefs stylist.Preferences
	for _, f := range stylist.Fields {
		v := strings.ToLower(strings.TrimSpace(values[f]))
		if v == "" {
			continue
		}
		if err := prefs.Set(f, v); err != nil {
			return prefs, fmt.Errorf("%w (valid: %s)", err, optionList(f))
		}
	}
	return prefs, nil
}

func buildReport(w *stylist.Wizard, prefs stylist.Preferences) analyzeReport {
	img := w.Image()
	labels := make(map[string]string, len(stylist.Fields))
	for _, f := range stylist.Fields {
		labels[string(f)] = stylist.Label(f, prefs.Get(f))
	}
	return analyzeReport{
		Session: w.Session(),
		Image: imageReport{
			Name:   img.Name,
			MIME:   img.MIME,
			Width:  img.Width,
			Height: img.Height,
			Size:   img.Size,
		},
		Preferences: labels,
		Result:      *w.Result(),
	}
}

// printJSON writes the report, highlighted when out is a terminal.
func printJSON(out *os.File, report analyzeReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if isTerminal(out) {
		if err := quick.Highlight(out, string(data)+"\n", "json", "terminal16m", "monokai"); err == nil {
			return nil
		}
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func printResult(w io.Writer, wiz *stylist.Wizard, prefs stylist.Preferences) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)
	accent := color.New(color.FgMagenta, color.Bold)
	green := color.New(color.FgGreen)

	r := wiz.Result()
	tone := r.SkinTone

	_, _ = accent.Fprintln(w, "Your Style Analysis")
	_, _ = dim.Fprintln(w, strings.Repeat("━", 50))

	profile := make([]string, 0, len(stylist.Fields))
	for _, f := range stylist.Fields {
		profile = append(profile, stylist.Label(f, prefs.Get(f)))
	}
	_, _ = dim.Fprintf(w, "%s · %s\n\n", wiz.Image().Name, strings.Join(profile, " · "))

	_, _ = bold.Fprintln(w, "Skin Tone")
	fmt.Fprintf(w, "  %s (%s)  ", tone.Name, tone.Color)
	_, _ = green.Fprintf(w, "%d%% confidence\n", tone.Confidence)
	fmt.Fprintf(w, "  Palette: %s\n\n", strings.Join(tone.Palette, ", "))

	_, _ = bold.Fprintln(w, "Recommended Outfits")
	for _, o := range r.Recommendations.Outfits {
		fmt.Fprintf(w, "  • %s\n", o.Title)
		_, _ = dim.Fprintf(w, "    %s\n", o.Description)
		fmt.Fprintf(w, "    %s\n", strings.Join(o.Items, ", "))
	}
	fmt.Fprintln(w)

	_, _ = bold.Fprintln(w, "Recommended Colors")
	fmt.Fprintf(w, "  %s\n\n", strings.Join(r.Recommendations.Colors, ", "))

	_, _ = bold.Fprintln(w, "Accessories")
	for _, a := range r.Recommendations.Accessories {
		fmt.Fprintf(w, "  • %s\n", a)
	}
	fmt.Fprintln(w)

	_, _ = bold.Fprintln(w, "Hairstyle")
	fmt.Fprintf(w, "  %s\n", r.Recommendations.Hairstyle)
	_, _ = dim.Fprintf(w, "\nsession %s\n", wiz.Session())
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
