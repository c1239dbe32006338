package clouddetect

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// fileContains reports whether the file at path exists and contains marker.
// Read failures count as "no evidence".
func fileContains(path, marker string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Debugf("failed to read vendor file %s: %v", path, err)
		}
		return false
	}
	return strings.Contains(string(content), marker)
}

// fileContainsFold is fileContains with case-insensitive matching.
func fileContainsFold(path, marker string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Debugf("failed to read vendor file %s: %v", path, err)
		}
		return false
	}
	return strings.Contains(strings.ToLower(string(content)), strings.ToLower(marker))
}
