package fetcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

// resolveChrome picks the browser binary for a fetch: the explicit path when
// one is configured, otherwise the first discovered install. Failing to
// resolve a runnable binary is a CodeBrowserNotFound failure.
func resolveChrome(explicit string) (string, error) {
	if explicit != "" {
		if !isExecutable(explicit) {
			return "", newFetchError(CodeBrowserNotFound,
				fmt.Sprintf("chrome binary %q is missing or not executable", explicit), nil)
		}
		return explicit, nil
	}
	if path := FindChrome(); path != "" {
		return path, nil
	}
	return "", newFetchError(CodeBrowserNotFound, "no chrome or chromium binary found", nil)
}

// FindChrome locates a Chrome/Chromium executable: QVLSCAN_CHROME_PATH first,
// then well-known install locations per OS, then PATH. Returns "" when
// nothing is found.
func FindChrome() string {
	if path := os.Getenv("QVLSCAN_CHROME_PATH"); path != "" {
		if isExecutable(path) {
			log.Debug().Str("path", path).Msg("Chrome found via QVLSCAN_CHROME_PATH")
			return path
		}
		log.Warn().Str("path", path).Msg("QVLSCAN_CHROME_PATH set but not executable")
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		}
	case "windows":
		bases := []string{
			os.Getenv("ProgramFiles"),
			os.Getenv("ProgramFiles(x86)"),
			os.Getenv("LocalAppData"),
		}
		for _, base := range bases {
			if base != "" {
				candidates = append(candidates,
					filepath.Join(base, `Google\Chrome\Application\chrome.exe`),
					filepath.Join(base, `Chromium\Application\chrome.exe`),
					filepath.Join(base, `Microsoft\Edge\Application\msedge.exe`),
				)
			}
		}
	default:
		candidates = []string{
			"/usr/bin/google-chrome-stable",
			"/usr/bin/google-chrome",
			"/usr/bin/chromium-browser",
			"/usr/bin/chromium",
			"/snap/bin/chromium",
		}
	}

	for _, path := range candidates {
		if isExecutable(path) {
			log.Debug().Str("path", path).Str("os", runtime.GOOS).Msg("Chrome found at standard location")
			return path
		}
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser", "chrome", "msedge"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			log.Debug().Str("path", path).Msg("Chrome found in PATH")
			return path
		}
	}

	log.Warn().Str("os", runtime.GOOS).Msg("Chrome not found")
	return ""
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0111 != 0
}
