package capture

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/styleai/internal/stylist"
)

// ErrNoPath means dropped text held no usable path.
var ErrNoPath = errors.New("no path in dropped text")

// ParseDrop extracts the first file path from text a terminal pasted when
// files were dragged onto it. Terminals quote paths differently: some wrap
// them in quotes, some backslash-escape spaces, some send file:// URIs.
func ParseDrop(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoPath
	}
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}

	token := firstToken(text)
	if token == "" {
		return "", ErrNoPath
	}

	if strings.HasPrefix(token, "file://") {
		u, err := url.Parse(token)
		if err != nil || u.Path == "" {
			return "", ErrNoPath
		}
		token = u.Path
	}

	if token == "~" || strings.HasPrefix(token, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			token = filepath.Join(home, strings.TrimPrefix(token, "~"))
		}
	}
	return token, nil
}

// firstToken returns the first shell-like word, honoring single quotes,
// double quotes and backslash escapes.
func firstToken(s string) string {
	var b strings.Builder
	var quote rune
	escaped := false

	for _, r := range s {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				b.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ' ' || r == '\t':
			if b.Len() > 0 {
				return b.String()
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LoadDrop parses dropped text and loads the first path as an image.
func LoadDrop(text string) (*stylist.CapturedImage, error) {
	path, err := ParseDrop(text)
	if err != nil {
		return nil, err
	}
	return LoadFile(path, stylist.SourceDrop)
}
