package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests mutate package-level flag state and must not run in parallel.

func setAnalyzeFlags(t *testing.T, gender, style, occasion, budget string) {
	t.Helper()
	prev := analyzeFlags
	t.Cleanup(func() { analyzeFlags = prev })
	analyzeFlags.gender = gender
	analyzeFlags.style = style
	analyzeFlags.occasion = occasion
	analyzeFlags.budget = budget
}

func TestAnalyzePreferences(t *testing.T) {
	setAnalyzeFlags(t, "Female", " casual ", "work", "")

	prefs, err := analyzePreferences()
	require.NoError(t, err)
	assert.Equal(t, "female", prefs.Gender)
	assert.Equal(t, "casual", prefs.Style)
	assert.Equal(t, "work", prefs.Occasion)
	assert.Equal(t, []stylist.Field{stylist.FieldBudget}, prefs.Missing())
}

func TestAnalyzePreferences_Invalid(t *testing.T) {
	setAnalyzeFlags(t, "female", "grunge", "", "")

	_, err := analyzePreferences()
	require.ErrorIs(t, err, stylist.ErrInvalidOption)
	assert.Contains(t, err.Error(), "minimalist", "error lists the valid values")
}

func TestPrintResult(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	prefs := stylist.Preferences{Gender: "male", Style: "formal", Occasion: "date", Budget: "luxury"}
	cat := testfixtures.Catalog()
	w, err := stylist.Run(context.Background(), stylist.RunOptions{
		Image:       testfixtures.TestImage(stylist.SourceFile),
		Preferences: prefs,
		Task:        testfixtures.FastTask(),
		Result:      cat.Result(),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	printResult(&buf, w, prefs)
	out := buf.String()

	result := cat.Result()
	assert.Contains(t, out, "Your Style Analysis")
	assert.Contains(t, out, "Male · Formal · Date Night · Luxury (₹₹₹₹)")
	assert.Contains(t, out, result.SkinTone.Name)
	assert.Contains(t, out, result.Recommendations.Hairstyle)
	for _, o := range result.Recommendations.Outfits {
		assert.Contains(t, out, o.Title)
	}
	assert.Contains(t, out, w.Session())

	report := buildReport(w, prefs)
	assert.Equal(t, "Date Night", report.Preferences["occasion"])
	assert.Equal(t, w.Image().Name, report.Image.Name)
	assert.Equal(t, result, report.Result)
}
