package qvl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/qvl-tools/qvlscan/pkg/models"
)

// Summarize reduces the full record sequence and the classified subset into
// aggregate statistics. Pure reduction; neither input is mutated.
func Summarize(all []models.ProductRecord, matched []models.ClassifiedRecord, pageURL string) models.Summary {
	gen5 := 0
	totalCapacity := 0.0
	optionSet := make(map[string]struct{})
	for _, m := range matched {
		if m.Analysis.IsGen5 {
			gen5++
		}
		if c := m.Analysis.CapacityTB; c > 0 {
			totalCapacity += c
			optionSet[FormatCapacityTB(c)] = struct{}{}
		}
	}

	options := make([]string, 0, len(optionSet))
	for opt := range optionSet {
		options = append(options, opt)
	}
	// Lexicographic on the rendered string: "10TB" sorts before "2TB".
	sort.Strings(options)

	dist := make(map[string]int)
	var order []string
	for _, rec := range all {
		vendor := rec.Get(models.FieldVendor)
		if vendor == "" {
			vendor = "Unknown"
		}
		if _, seen := dist[vendor]; !seen {
			order = append(order, vendor)
		}
		dist[vendor]++
	}

	return models.Summary{
		TotalProducts:      len(all),
		MatchedProducts:    len(matched),
		Gen5Products:       gen5,
		CapacityOptions:    options,
		TotalCapacityTB:    totalCapacity,
		VendorDistribution: dist,
		PageURL:            pageURL,
		VendorOrder:        order,
	}
}

// SummarizeSearch builds the search outcome block of the result document.
func SummarizeSearch(c *Classifier, summary models.Summary, section, server string) models.SearchSummary {
	return models.SearchSummary{
		Successful:        summary.MatchedProducts > 0,
		TermsUsed:         c.SearchTerms(),
		SectionAccessed:   section,
		TargetServerModel: server,
		Findings: fmt.Sprintf("Found %d %s %s products in QVL",
			summary.MatchedProducts, c.VendorKeyword(), c.SeriesKeyword()),
	}
}

// FormatCapacityTB renders a capacity as its "<value>TB" display string with
// at least one decimal digit: 4 -> "4.0TB", 0.512 -> "0.512TB".
func FormatCapacityTB(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "TB"
}
