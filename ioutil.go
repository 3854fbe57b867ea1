package cache

import (
	"os"
	"strings"
)

// ReadFile reads the entire contents of the file at path.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path, creating it with mode 0644 or truncating
// it if it already exists.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// JoinPath joins a and b with "/", then collapses every run of repeated
// separators anywhere in the result to a single "/". Unlike filepath.Join, it never
// normalizes "." or ".." segments elsewhere in either argument — cache
// directory paths are used as-is, the way the game client's own path
// joiner treats them.
func JoinPath(a, b string) string {
	joined := a + "/" + b
	for strings.Contains(joined, "//") {
		joined = strings.ReplaceAll(joined, "//", "/")
	}
	return joined
}

// ListDir returns the names (not full paths) of the entries directly
// inside dir, in the order os.ReadDir returns them (lexicographic by
// name).
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}
