package utils

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// OpenBrowser opens url in the user's browser. $BROWSER wins over the
// platform default. The URL is printed when no opener can be started.
func OpenBrowser(url string) error {
	cmd := browserCommand(url)
	if cmd == nil {
		fmt.Println("Please open the following URL in your browser:", url)
		return nil
	}

	if err := cmd.Start(); err != nil {
		fmt.Println("Failed to open browser. Please open the following URL manually:", url)
		return fmt.Errorf("starting browser: %w", err)
	}
	return nil
}

func browserCommand(url string) *exec.Cmd {
	if b := os.Getenv("BROWSER"); b != "" {
		return exec.Command(b, url)
	}

	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		return exec.Command("open", url)
	default:
		return nil
	}
}
