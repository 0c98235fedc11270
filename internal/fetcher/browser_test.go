package fetcher

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/qvl-tools/qvlscan/pkg/models"
)

func TestFetch_MissingChromeBinary(t *testing.T) {
	b := NewBrowser()

	_, err := b.Fetch(context.Background(), models.FetchOptions{
		URL:        "https://example.com/Support-QVL",
		ChromePath: filepath.Join(t.TempDir(), "no-such-chrome"),
	})
	if err == nil {
		t.Fatal("Fetch should fail for a missing browser binary")
	}
	if !errors.Is(err, &FetchError{Code: CodeBrowserNotFound}) {
		t.Errorf("err = %v, want browser-not-found FetchError", err)
	}
}

func TestResolveChrome_ExplicitPathNotExecutable(t *testing.T) {
	if _, err := resolveChrome(filepath.Join(t.TempDir(), "chrome")); !errors.Is(err, &FetchError{Code: CodeBrowserNotFound}) {
		t.Errorf("err = %v, want browser-not-found FetchError", err)
	}
}

func TestBrowserName(t *testing.T) {
	if got := NewBrowser().Name(); got != "chrome" {
		t.Errorf("Name() = %q, want chrome", got)
	}
}
