package stylist

// Source records how an image was acquired.
type Source string

const (
	SourceFile   Source = "file"
	SourceDrop   Source = "drop"
	SourceCamera Source = "camera"
)

// CapturedImage is an encoded photo held in memory. The payload is opaque
// to the wizard; only its presence matters.
type CapturedImage struct {
	Name    string `json:"name"`
	MIME    string `json:"mime"`
	DataURL string `json:"-"`
	Source  Source `json:"source"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Size    int    `json:"size"`
}

// Empty reports whether the image carries no payload.
func (c *CapturedImage) Empty() bool {
	return c == nil || c.DataURL == ""
}
