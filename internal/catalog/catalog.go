// Package catalog holds the static mock data behind every "analysis".
// The data is embedded YAML parsed once on first use.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gosimple/slug"
	"github.com/mark3labs/styleai/internal/stylist"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Shop is a retailer link shown under results.
type Shop struct {
	Name        string `yaml:"name" json:"name"`
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description" json:"description"`
}

// Feature is a titled blurb used on home screens.
type Feature struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Link        string `yaml:"link,omitempty" json:"link,omitempty"`
}

// Insight is the mock result of single-image analysis.
type Insight struct {
	Colors      []string `yaml:"colors" json:"colors"`
	Style       string   `yaml:"style" json:"style"`
	Items       []string `yaml:"items" json:"items"`
	Suggestions []string `yaml:"suggestions" json:"suggestions"`
	Occasions   []string `yaml:"occasions" json:"occasions"`
}

// GalleryOutfit is an entry of the outfit gallery.
type GalleryOutfit struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Items       []string `yaml:"items" json:"items"`
	Occasion    string   `yaml:"occasion" json:"occasion"`
	Season      string   `yaml:"season" json:"season"`
	StyleMatch  int      `yaml:"style_match" json:"styleMatch"`
}

// Trend is a current trend card.
type Trend struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Popularity  int      `yaml:"popularity" json:"popularity"`
	Season      string   `yaml:"season" json:"season"`
	Tags        []string `yaml:"tags" json:"tags"`
}

// Stars is the five-star rating shown for a trend.
func (t Trend) Stars() int {
	return t.Popularity / 20
}

// Prediction is an upcoming trend.
type Prediction struct {
	Title      string `yaml:"title" json:"title"`
	Prediction string `yaml:"prediction" json:"prediction"`
	Timeline   string `yaml:"timeline" json:"timeline"`
}

// Strength maps the prediction level to a bar fill percentage.
func (p Prediction) Strength() int {
	switch p.Prediction {
	case "Very High":
		return 95
	case "High":
		return 80
	default:
		return 65
	}
}

// Stat is a headline number.
type Stat struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Catalog is the full mock dataset.
type Catalog struct {
	Analysis    stylist.AnalysisResult `yaml:"analysis"`
	Shops       []Shop                 `yaml:"shops"`
	Steps       []Feature              `yaml:"steps"`
	Highlights  []Feature              `yaml:"highlights"`
	Features    []Feature              `yaml:"features"`
	Insight     Insight                `yaml:"insight"`
	Gallery     []GalleryOutfit        `yaml:"gallery"`
	Trends      []Trend                `yaml:"trends"`
	Predictions []Prediction           `yaml:"predictions"`
	Stats       []Stat                 `yaml:"stats"`
}

// Parse decodes catalog YAML and fills in slug IDs.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	for i := range c.Analysis.Recommendations.Outfits {
		o := &c.Analysis.Recommendations.Outfits[i]
		if o.ID == "" {
			o.ID = slug.Make(o.Title)
		}
	}
	for i := range c.Gallery {
		if c.Gallery[i].ID == "" {
			c.Gallery[i].ID = slug.Make(c.Gallery[i].Title)
		}
	}
	for i := range c.Trends {
		if c.Trends[i].ID == "" {
			c.Trends[i].ID = slug.Make(c.Trends[i].Title)
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if c.Analysis.SkinTone.Name == "" {
		return fmt.Errorf("catalog: analysis skin tone missing")
	}
	if len(c.Analysis.Recommendations.Outfits) == 0 {
		return fmt.Errorf("catalog: analysis has no outfits")
	}
	seen := make(map[string]bool, len(c.Gallery))
	for _, o := range c.Gallery {
		if seen[o.ID] {
			return fmt.Errorf("catalog: duplicate gallery id %q", o.ID)
		}
		seen[o.ID] = true
	}
	return nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog. It panics if the embedded file is
// malformed, which tests catch.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(catalogYAML)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultCat
}

// Result returns a copy of the mock analysis result.
func (c *Catalog) Result() stylist.AnalysisResult {
	return c.Analysis.Clone()
}

// GalleryOutfit looks an outfit up by ID.
func (c *Catalog) GalleryOutfit(id string) (GalleryOutfit, bool) {
	for _, o := range c.Gallery {
		if o.ID == id {
			return o, true
		}
	}
	return GalleryOutfit{}, false
}

// Trend looks a trend up by ID.
func (c *Catalog) Trend(id string) (Trend, bool) {
	for _, t := range c.Trends {
		if t.ID == id {
			return t, true
		}
	}
	return Trend{}, false
}
