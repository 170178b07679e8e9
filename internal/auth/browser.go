package auth

import (
	"errors"
	"os/exec"
	"runtime"
)

// openBrowser starts the system's default browser on url. Fire and forget;
// the login flow does not wait on the browser process.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if cmd == nil {
		return errors.New("no browser command available")
	}
	return cmd.Start()
}
