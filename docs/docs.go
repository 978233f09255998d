// Package docs loads reference documents from files named by glob
// patterns. Supports ** for recursive matching.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"lawbot"
)

// Load expands each pattern and reads every matched file into a
// reference document. The title is the file name without its extension;
// the content is the file text verbatim. Matches are returned in
// pattern, then lexical order.
func Load(patterns []string, now time.Time) ([]lawbot.Document, error) {
	var out []lawbot.Document
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, path := range matches {
			info, err := os.Stat(path)
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read document %s: %w", path, err)
			}
			out = append(out, lawbot.Document{
				ID:      uuid.NewString(),
				Title:   title(path),
				Content: string(data),
				AddedAt: now,
			})
		}
	}
	return out, nil
}

func title(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
