package director

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/choreo/internal/system"
)

// GenerateScriptPath creates a timestamped script filename inside dir
func GenerateScriptPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("script_%s.yaml", timestamp))
}

// FindLatestScript finds the most recently modified script in dir
func FindLatestScript(dir string) (string, error) {
	path, err := system.FindLatest(dir, system.ScriptExtensions...)
	if err != nil {
		return "", fmt.Errorf("failed to find a script: %w", err)
	}
	return path, nil
}
