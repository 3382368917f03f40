// Package browser opens links in the user's browser and renders pages with
// a headless Chrome.
package browser

import (
	"context"
	"os/exec"
	"runtime"
)

// Opener opens URLs with the platform's default handler.
type Opener struct{}

// Dispatch starts the browser and returns without waiting for it.
func (Opener) Dispatch(ctx context.Context, link string) error {
	return OpenURL(ctx, link)
}

func OpenURL(ctx context.Context, link string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", link)
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", link)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", link)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
