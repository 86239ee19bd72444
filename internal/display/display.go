// Package display hands a finished artifact to the platform image viewer.
package display

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// viewerCommand picks the opener for the current platform.
func viewerCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// Show opens path with the system image viewer. The viewer process is
// started detached; Show only waits for the launch itself.
func Show(ctx context.Context, path string) error {
	opener := viewerCommand()
	if _, err := exec.LookPath(opener); err != nil {
		return fmt.Errorf("%s not found in $PATH: %w", opener, err)
	}

	cmd := exec.CommandContext(ctx, opener, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error launching viewer: %w", err)
	}

	// Reap the process in the background so it never zombies.
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}
