// Package report renders a scan result to console text, a JSON document,
// and an optional markdown copy of the extracted table.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/qvl-tools/qvlscan/internal/ui"
	"github.com/qvl-tools/qvlscan/pkg/models"
)

// WriteConsole renders the human-readable report for one scan run.
func WriteConsole(w io.Writer, rs *models.ResultSet) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "%s\n", ui.Bold(fmt.Sprintf("%s QVL SCAN RESULTS", rs.TargetServer)))
	fmt.Fprintf(w, "%s\n", rule)

	fmt.Fprintf(w, "\nTARGET SERVER: %s\n", rs.TargetServer)
	fmt.Fprintf(w, "QVL URL: %s\n", rs.QVLURL)

	fmt.Fprintf(w, "\nQVL SUMMARY:\n")
	fmt.Fprintf(w, "- Total products in QVL: %d\n", rs.Summary.TotalProducts)
	fmt.Fprintf(w, "- Matching products found: %d\n", rs.Summary.MatchedProducts)
	fmt.Fprintf(w, "- Gen 5 products: %d\n", rs.Summary.Gen5Products)
	fmt.Fprintf(w, "- Search successful: %t\n", rs.Search.Successful)

	writeMatches(w, rs)
	writeCapacityOptions(w, rs)
	writeVendorRanking(w, rs)
	writeFindings(w, rs)
	writeErrors(w, rs)

	fmt.Fprintf(w, "\n%s\n", rule)
}

func writeMatches(w io.Writer, rs *models.ResultSet) {
	if len(rs.Matched) == 0 {
		fmt.Fprintf(w, "\n%s\n", ui.Error("NO MATCHING PRODUCTS FOUND IN QVL"))
		return
	}

	fmt.Fprintf(w, "\n%s\n", ui.Bold("MATCHING PRODUCTS FOUND IN QVL:"))
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 60))
	for i, m := range rs.Matched {
		fmt.Fprintf(w, "\n%d. Product: %s\n", i+1, valueOr(m.Record, models.FieldProductName))
		fmt.Fprintf(w, "   Vendor: %s\n", valueOr(m.Record, models.FieldVendor))
		fmt.Fprintf(w, "   Capacity: %s\n", valueOr(m.Record, models.FieldCapacity))
		fmt.Fprintf(w, "   Interface: %s\n", valueOr(m.Record, models.FieldInterface))
		fmt.Fprintf(w, "   Interface Speed: %s\n", valueOr(m.Record, models.FieldInterfaceSpeed))
		fmt.Fprintf(w, "   Form Factor: %s\n", valueOr(m.Record, models.FieldFormFactor))
		fmt.Fprintf(w, "   Series: %s\n", valueOr(m.Record, models.FieldSeries))
		fmt.Fprintf(w, "   Type: %s\n", valueOr(m.Record, models.FieldType))

		fmt.Fprintf(w, "   Analysis:\n")
		fmt.Fprintf(w, "     - PCIe Gen 5: %t\n", m.Analysis.IsGen5)
		fmt.Fprintf(w, "     - NVMe Interface: %t\n", m.Analysis.IsNVMe)
		fmt.Fprintf(w, "     - Capacity (TB): %g\n", m.Analysis.CapacityTB)
		fmt.Fprintf(w, "     - VROC Support: %t\n", m.Analysis.VROCSupport)

		if other := m.Record.Get(models.FieldOther); other != "" {
			fmt.Fprintf(w, "   Other: %s\n", other)
		}
		if remark := m.Record.Get(models.FieldRemark); remark != "" {
			fmt.Fprintf(w, "   Remark: %s\n", remark)
		}
	}
}

func writeCapacityOptions(w io.Writer, rs *models.ResultSet) {
	fmt.Fprintf(w, "\n%s\n", ui.Bold("CAPACITY OPTIONS AVAILABLE:"))
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 40))
	if len(rs.Summary.CapacityOptions) == 0 {
		fmt.Fprintln(w, "No capacity information available")
		return
	}
	for _, opt := range rs.Summary.CapacityOptions {
		fmt.Fprintf(w, "- %s\n", opt)
	}
}

func writeVendorRanking(w io.Writer, rs *models.ResultSet) {
	fmt.Fprintf(w, "\n%s\n", ui.Bold("VENDOR DISTRIBUTION IN QVL (Top 10):"))
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 50))
	for _, vc := range rs.Summary.TopVendors(10) {
		fmt.Fprintf(w, "- %s: %d products\n", vc.Vendor, vc.Count)
	}
}

func writeFindings(w io.Writer, rs *models.ResultSet) {
	fmt.Fprintf(w, "\n%s\n", ui.Bold("KEY FINDINGS:"))
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 30))
	if rs.Summary.MatchedProducts == 0 {
		fmt.Fprintf(w, "%s\n", ui.Error("No matching products found in QVL"))
		return
	}
	fmt.Fprintf(w, "%s\n", ui.Success(fmt.Sprintf(
		"Matching products ARE officially supported in the %s QVL", rs.TargetServer)))
	fmt.Fprintf(w, "%s\n", ui.Success(fmt.Sprintf(
		"Found %d matching products in the QVL", rs.Summary.MatchedProducts)))
	fmt.Fprintf(w, "%s\n", ui.Success(fmt.Sprintf(
		"%d of them are PCIe Gen 5 products", rs.Summary.Gen5Products)))
	fmt.Fprintf(w, "%s\n", ui.Success(fmt.Sprintf(
		"Available in %d different capacity options", len(rs.Summary.CapacityOptions))))
	fmt.Fprintf(w, "%s\n", ui.Success(fmt.Sprintf(
		"Total combined capacity: %gTB", rs.Summary.TotalCapacityTB)))
}

func writeErrors(w io.Writer, rs *models.ResultSet) {
	if len(rs.Errors) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", ui.Error("ERRORS ENCOUNTERED:"))
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 40))
	for _, msg := range rs.Errors {
		fmt.Fprintf(w, "- %s\n", msg)
	}
}

func valueOr(rec models.ProductRecord, field string) string {
	if v := rec.Get(field); v != "" {
		return v
	}
	return "N/A"
}
