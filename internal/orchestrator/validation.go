package orchestrator

import (
	"fmt"
	"strings"
)

// ValidateOutputDir validates the changelog directory.
func ValidateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if len(dir) > 255 {
		return fmt.Errorf("output directory too long: %d characters (max: 255)", len(dir))
	}
	if strings.Contains(dir, "..") {
		return fmt.Errorf("output directory cannot contain path traversal: %s", dir)
	}
	if strings.HasPrefix(dir, "-") {
		return fmt.Errorf("output directory cannot start with '-': %s", dir)
	}
	return nil
}
