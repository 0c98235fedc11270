package models

import (
	"encoding/json"
	"sort"
	"time"
)

// Well-known QVL table column names. Vendors are not fully consistent about
// which columns a table carries, so every field besides Product Name is
// treated as optional.
const (
	FieldProductName    = "Product Name"
	FieldVendor         = "Vendor"
	FieldSeries         = "Series"
	FieldInterface      = "Interface"
	FieldInterfaceSpeed = "Interface Speed"
	FieldFormFactor     = "Form Factor"
	FieldCapacity       = "Capacity"
	FieldType           = "Type"
	FieldOther          = "Other"
	FieldRemark         = "Remark"
)

// ColumnHeader is the ordered list of header-cell texts of the QVL table.
// Order matters: rows are zipped against it column by column.
type ColumnHeader []string

// ProductRecord maps a header name to the trimmed cell text of one table row.
type ProductRecord map[string]string

// Get returns the value for a field, or "" when the column is absent.
func (r ProductRecord) Get(field string) string { return r[field] }

// ProductName returns the record's Product Name field.
func (r ProductRecord) ProductName() string { return r[FieldProductName] }

// Analysis holds the derived attributes computed for a matched record.
// All fields degrade to their zero value on malformed input; CapacityTB of 0
// means "could not determine", not "zero capacity".
type Analysis struct {
	IsGen5           bool    `json:"is_gen5"`
	IsNVMe           bool    `json:"is_nvme"`
	FormFactorType   string  `json:"form_factor_type"`
	CapacityTB       float64 `json:"capacity_tb"`
	InterfaceDetails string  `json:"interface_details"`
	VROCSupport      bool    `json:"vroc_support"`
}

// ClassifiedRecord pairs a keyword-matched record with its analysis.
type ClassifiedRecord struct {
	Record   ProductRecord
	Analysis Analysis
}

// MarshalJSON flattens the record fields into the top-level object and nests
// the analysis under an "analysis" key. Downstream consumers depend on this
// exact shape.
func (c ClassifiedRecord) MarshalJSON() ([]byte, error) {
	merged := make(map[string]interface{}, len(c.Record)+1)
	for k, v := range c.Record {
		merged[k] = v
	}
	merged["analysis"] = c.Analysis
	return json.Marshal(merged)
}

// Summary holds the aggregate statistics computed once over the full record
// sequence and the classified subset. It is never mutated after computation.
type Summary struct {
	TotalProducts      int            `json:"total_nvme_products_in_qvl"`
	MatchedProducts    int            `json:"trusta_products_found"`
	Gen5Products       int            `json:"trusta_gen5_products"`
	CapacityOptions    []string       `json:"trusta_capacity_options"`
	TotalCapacityTB    float64        `json:"total_trusta_capacity_tb"`
	VendorDistribution map[string]int `json:"vendor_distribution"`
	PageURL            string         `json:"qvl_page_url"`

	// VendorOrder preserves the first-encounter order of vendors in the full
	// record sequence. It backs the stable ranking and is not serialized.
	VendorOrder []string `json:"-"`
}

// VendorCount is one entry of the vendor ranking.
type VendorCount struct {
	Vendor string
	Count  int
}

// TopVendors returns up to n vendors ordered by descending product count.
// Ties keep first-encounter order. n <= 0 returns the full ranking.
func (s Summary) TopVendors(n int) []VendorCount {
	ranked := make([]VendorCount, 0, len(s.VendorOrder))
	for _, v := range s.VendorOrder {
		ranked = append(ranked, VendorCount{Vendor: v, Count: s.VendorDistribution[v]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// SearchSummary describes the outcome of the keyword search.
type SearchSummary struct {
	Successful        bool     `json:"search_successful"`
	TermsUsed         []string `json:"search_terms_used"`
	SectionAccessed   string   `json:"qvl_section_accessed"`
	TargetServerModel string   `json:"target_server_model"`
	Findings          string   `json:"findings"`
}

// ResultSet is the top-level result document of one scan run. It is created
// empty at run start, populated stage by stage, and serialized once at the
// end. Single-threaded; never shared across goroutines.
type ResultSet struct {
	TargetServer string             `json:"target_server"`
	QVLURL       string             `json:"qvl_url"`
	Matched      []ClassifiedRecord `json:"trusta_products_found"`
	AllProducts  []ProductRecord    `json:"all_nvme_products"`
	Summary      Summary            `json:"qvl_summary"`
	Search       SearchSummary      `json:"search_summary"`
	Errors       []string           `json:"errors"`

	// TableHTML is the outer HTML of the located table, kept for the
	// optional markdown dump. Not part of the serialized document.
	TableHTML string `json:"-"`
}

// NewResultSet creates an empty ResultSet for the given target.
func NewResultSet(server, url string) *ResultSet {
	return &ResultSet{
		TargetServer: server,
		QVLURL:       url,
		Matched:      []ClassifiedRecord{},
		AllProducts:  []ProductRecord{},
		Errors:       []string{},
	}
}

// Snapshot is the rendered DOM captured by a Fetcher after the page settled.
type Snapshot struct {
	URL        string
	HTML       string
	StatusCode int
	FetchedAt  time.Time
	ElapsedMS  int64
}

// FetchOptions contains the inputs of one fetch.
type FetchOptions struct {
	URL          string
	MaxWait      time.Duration
	PollInterval time.Duration
	SettleDelay  time.Duration
	UserAgent    string
	ChromePath   string
	Headless     bool
}
