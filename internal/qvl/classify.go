package qvl

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/qvl-tools/qvlscan/pkg/models"
)

// First decimal number in a capacity cell, e.g. "3.84" in "3.84TB (2.5\")".
var capacityNumber = regexp.MustCompile(`\d+\.?\d*`)

// Classifier decides record membership against a vendor keyword and a series
// keyword and derives the per-record analysis fields.
type Classifier struct {
	vendorKeyword string
	seriesKeyword string
	vendorUpper   string
	seriesUpper   string
}

// NewClassifier creates a Classifier for the given keywords. Keywords are
// matched as case-insensitive substrings and must be non-empty (an empty
// keyword would match every record).
func NewClassifier(vendorKeyword, seriesKeyword string) *Classifier {
	return &Classifier{
		vendorKeyword: vendorKeyword,
		seriesKeyword: seriesKeyword,
		vendorUpper:   strings.ToUpper(vendorKeyword),
		seriesUpper:   strings.ToUpper(seriesKeyword),
	}
}

// VendorKeyword returns the configured vendor keyword.
func (c *Classifier) VendorKeyword() string { return c.vendorKeyword }

// SeriesKeyword returns the configured series keyword.
func (c *Classifier) SeriesKeyword() string { return c.seriesKeyword }

// SearchTerms returns the terms reported in the search summary, in both the
// configured and lower-cased spelling.
func (c *Classifier) SearchTerms() []string {
	return []string{
		c.vendorKeyword,
		c.seriesKeyword,
		strings.ToLower(c.vendorKeyword),
		strings.ToLower(c.seriesKeyword),
	}
}

// Match reports whether a record belongs to the classified subset: the
// vendor or product name contains the vendor keyword, or the product name or
// series contains the series keyword.
func (c *Classifier) Match(rec models.ProductRecord) bool {
	vendor := strings.ToUpper(rec.Get(models.FieldVendor))
	name := strings.ToUpper(rec.ProductName())
	series := strings.ToUpper(rec.Get(models.FieldSeries))

	return strings.Contains(vendor, c.vendorUpper) ||
		strings.Contains(name, c.vendorUpper) ||
		strings.Contains(name, c.seriesUpper) ||
		strings.Contains(series, c.seriesUpper)
}

// Analyze derives the analysis fields for one record. It never fails:
// malformed or missing input degrades to zero values.
func (c *Classifier) Analyze(rec models.ProductRecord) models.Analysis {
	speed := strings.ToLower(rec.Get(models.FieldInterfaceSpeed))
	iface := rec.Get(models.FieldInterface)
	other := strings.ToLower(rec.Get(models.FieldOther))
	remark := strings.ToLower(rec.Get(models.FieldRemark))

	return models.Analysis{
		IsGen5:           strings.Contains(speed, "gen5") || strings.Contains(speed, "gen 5"),
		IsNVMe:           strings.Contains(strings.ToLower(iface), "nvme"),
		FormFactorType:   rec.Get(models.FieldFormFactor),
		CapacityTB:       parseCapacityTB(rec.Get(models.FieldCapacity)),
		InterfaceDetails: iface + " - " + rec.Get(models.FieldInterfaceSpeed),
		VROCSupport:      strings.Contains(other, "vroc") || strings.Contains(remark, "vroc"),
	}
}

// Classify filters the record sequence, preserving order, and attaches the
// analysis to every match. The input is never mutated; every classified
// record's source record stays in the full sequence.
func (c *Classifier) Classify(records []models.ProductRecord) []models.ClassifiedRecord {
	matched := make([]models.ClassifiedRecord, 0)
	for _, rec := range records {
		if c.Match(rec) {
			matched = append(matched, models.ClassifiedRecord{
				Record:   rec,
				Analysis: c.Analyze(rec),
			})
		}
	}
	return matched
}

// parseCapacityTB extracts the first decimal number of a capacity cell and
// normalizes it to terabytes: "4TB" -> 4, "512GB" -> 0.512. Text without a
// TB/GB unit or a parsable number yields 0.
func parseCapacityTB(capacity string) float64 {
	num := capacityNumber.FindString(capacity)
	if num == "" {
		return 0
	}
	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}

	upper := strings.ToUpper(capacity)
	switch {
	case strings.Contains(upper, "TB"):
		return value
	case strings.Contains(upper, "GB"):
		return value / 1000
	default:
		return 0
	}
}
