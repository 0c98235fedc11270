package report

import (
	"fmt"
	"os"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// SaveTableMarkdown converts the extracted table's HTML to a GitHub-flavored
// markdown table and writes it to path.
func SaveTableMarkdown(tableHTML, path string) error {
	if tableHTML == "" {
		return fmt.Errorf("no table HTML captured")
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	mdStr, err := converter.ConvertString(tableHTML)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(mdStr), 0644)
}
