// Package open shows catalog pages in the user's browser.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/crosswatch-cli/crosswatch/constant"
)

// EnvBrowser names the browser command, taking precedence over the platform default.
const EnvBrowser = "BROWSER"

// URL opens an http or https link without waiting for the browser to exit.
func URL(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid link %q: %w", link, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: not a web link", link)
	}

	cmd, ok := command(u.String())
	if !ok {
		return fmt.Errorf("no browser known for %s, set %s", runtime.GOOS, EnvBrowser)
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	go func() { _ = cmd.Wait() }()
	return nil
}

func command(link string) (*exec.Cmd, bool) {
	if browser := strings.Fields(os.Getenv(EnvBrowser)); len(browser) > 0 {
		return exec.Command(browser[0], append(browser[1:], link)...), true
	}

	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", link), true
	case constant.Darwin:
		return exec.Command("open", link), true
	case constant.Linux:
		return exec.Command("xdg-open", link), true
	case constant.Android:
		return exec.Command("termux-open-url", link), true
	default:
		return nil, false
	}
}
