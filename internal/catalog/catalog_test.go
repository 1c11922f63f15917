package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_AnalysisResult(t *testing.T) {
	t.Parallel()

	res := Default().Result()
	require.Equal(t, "#8D5524", res.SkinTone.Color)
	require.Equal(t, "Medium Warm", res.SkinTone.Name)
	require.Equal(t, 94, res.SkinTone.Confidence)
	require.Len(t, res.SkinTone.Palette, 6)
	require.Len(t, res.Recommendations.Outfits, 4)
	require.Len(t, res.Recommendations.Colors, 5)
	require.Len(t, res.Recommendations.Accessories, 4)
	require.NotEmpty(t, res.Recommendations.Hairstyle)

	for _, o := range res.Recommendations.Outfits {
		assert.Len(t, o.Items, 4, o.Title)
		assert.NotEmpty(t, o.ID)
	}
	assert.Equal(t, "elegant-evening-look", res.Recommendations.Outfits[0].ID)
}

func TestDefault_ResultIsACopy(t *testing.T) {
	t.Parallel()

	first := Default().Result()
	first.SkinTone.Palette[0] = "#000000"
	first.Recommendations.Outfits[0].Items[0] = "Nothing"

	second := Default().Result()
	assert.Equal(t, "#FFF4E6", second.SkinTone.Palette[0])
	assert.Equal(t, "Silk blazer", second.Recommendations.Outfits[0].Items[0])
}

func TestDefault_BrowseData(t *testing.T) {
	t.Parallel()

	c := Default()
	assert.Len(t, c.Shops, 3)
	assert.Len(t, c.Features, 4)
	assert.Equal(t, "/outfits", c.Features[2].Link)
	assert.Len(t, c.Gallery, 6)
	assert.Len(t, c.Trends, 4)
	assert.Len(t, c.Predictions, 4)
	assert.Len(t, c.Stats, 4)
	assert.Equal(t, "Smart Casual", c.Insight.Style)
	assert.Len(t, c.Insight.Suggestions, 4)

	outfit, ok := c.GalleryOutfit("evening-glamour")
	require.True(t, ok)
	assert.Equal(t, 98, outfit.StyleMatch)

	trend, ok := c.Trend("vintage-revival")
	require.True(t, ok)
	assert.Equal(t, 4, trend.Stars())

	_, ok = c.Trend("missing")
	assert.False(t, ok)
}

func TestPredictionStrength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  int
	}{
		{"Very High", 95},
		{"High", 80},
		{"Medium-High", 65},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Prediction{Prediction: tt.level}.Strength(), tt.level)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("analysis: [not a map"))
	require.Error(t, err)

	_, err = Parse([]byte("shops: []\n"))
	require.ErrorContains(t, err, "skin tone")

	dup := `
analysis:
  skin_tone: {name: x}
  recommendations:
    outfits: [{title: A}]
gallery:
  - title: Same Name
  - title: same name
`
	_, err = Parse([]byte(dup))
	require.ErrorContains(t, err, "duplicate gallery id")
}
