package stylist

// SkinTone is the mock skin analysis.
type SkinTone struct {
	Color      string   `json:"color" yaml:"color"`
	Name       string   `json:"name" yaml:"name"`
	Confidence int      `json:"confidence" yaml:"confidence"`
	Palette    []string `json:"palette" yaml:"palette"`
}

// Outfit is one recommended look.
type Outfit struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Image       string   `json:"image" yaml:"image"`
	Items       []string `json:"items" yaml:"items"`
}

// Recommendations groups everything suggested alongside the skin tone.
type Recommendations struct {
	Outfits     []Outfit `json:"outfits" yaml:"outfits"`
	Colors      []string `json:"colors" yaml:"colors"`
	Accessories []string `json:"accessories" yaml:"accessories"`
	Hairstyle   string   `json:"hairstyle" yaml:"hairstyle"`
}

// AnalysisResult is installed when analysis completes. It never depends on
// the image or the preferences.
type AnalysisResult struct {
	SkinTone        SkinTone        `json:"skinTone" yaml:"skin_tone"`
	Recommendations Recommendations `json:"recommendations" yaml:"recommendations"`
}

// Clone returns a deep copy so callers can't mutate shared catalog slices.
func (r AnalysisResult) Clone() AnalysisResult {
	out := r
	out.SkinTone.Palette = append([]string(nil), r.SkinTone.Palette...)
	out.Recommendations.Colors = append([]string(nil), r.Recommendations.Colors...)
	out.Recommendations.Accessories = append([]string(nil), r.Recommendations.Accessories...)
	out.Recommendations.Outfits = make([]Outfit, len(r.Recommendations.Outfits))
	for i, o := range r.Recommendations.Outfits {
		o.Items = append([]string(nil), o.Items...)
		out.Recommendations.Outfits[i] = o
	}
	return out
}
