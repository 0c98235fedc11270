// Package qvl implements the core QVL logic: table extraction, keyword
// classification and summary aggregation. Everything in this package is a
// pure function of its inputs; parsing the same snapshot twice yields
// identical output.
package qvl

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/qvl-tools/qvlscan/pkg/models"
)

// Table is the parsed QVL table: header names, the ordered record sequence,
// and the table's outer HTML (kept for the markdown dump).
type Table struct {
	Headers models.ColumnHeader
	Records []models.ProductRecord
	HTML    string
}

// ParseSnapshot locates the QVL table inside a rendered DOM snapshot and
// parses it. The target table is the one containing a header cell whose
// trimmed text is exactly "Product Name".
func ParseSnapshot(snapshot string) (*Table, error) {
	root, err := html.Parse(strings.NewReader(snapshot))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableNotFound, err)
	}

	sel := locateTable(goquery.NewDocumentFromNode(root))
	if sel == nil {
		return nil, fmt.Errorf("%w: no table with a %q header cell",
			ErrTableNotFound, models.FieldProductName)
	}
	return parseTable(sel)
}

func locateTable(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		match := false
		table.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
			if strings.TrimSpace(th.Text()) == models.FieldProductName {
				match = true
			}
			return !match
		})
		if match {
			found = table
		}
		return !match
	})
	return found
}

func parseTable(sel *goquery.Selection) (*Table, error) {
	headers := parseHeaders(sel)
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: table has no thead row", ErrHeaderNotFound)
	}

	// Empty, not nil: a table whose every row is skipped must still render
	// as a JSON list downstream.
	records := make([]models.ProductRecord, 0)
	sel.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		if rec, ok := parseRow(headers, row); ok {
			records = append(records, rec)
		}
	})

	log.Debug().
		Int("headers", len(headers)).
		Int("records", len(records)).
		Msg("QVL table parsed")

	outer, err := goquery.OuterHtml(sel)
	if err != nil {
		outer = ""
	}
	return &Table{Headers: headers, Records: records, HTML: outer}, nil
}

func parseHeaders(sel *goquery.Selection) models.ColumnHeader {
	var headers models.ColumnHeader
	sel.Find("thead tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	return headers
}

// parseRow zips one data row against the header names. Rows with fewer cells
// than headers, a blank first cell, or an empty Product Name are skipped
// silently. Excess cells are ignored.
func parseRow(headers models.ColumnHeader, row *goquery.Selection) (models.ProductRecord, bool) {
	cells := row.Find("td")
	if cells.Length() < len(headers) {
		return nil, false
	}
	if strings.TrimSpace(cells.First().Text()) == "" {
		return nil, false
	}

	rec := make(models.ProductRecord, len(headers))
	cells.EachWithBreak(func(i int, td *goquery.Selection) bool {
		if i >= len(headers) {
			return false
		}
		rec[headers[i]] = strings.TrimSpace(td.Text())
		return true
	})

	if rec.ProductName() == "" {
		return nil, false
	}
	return rec, true
}
