package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/qvl-tools/qvlscan/pkg/models"
)

func sampleResult() *models.ResultSet {
	rs := models.NewResultSet("G293-S40-AAP1", "https://example.com/Support-QVL")
	rec := models.ProductRecord{
		"Product Name": "T7P5-4TB",
		"Vendor":       "TRUSTA",
		"Capacity":     "4TB",
	}
	rs.AllProducts = []models.ProductRecord{rec}
	rs.Matched = []models.ClassifiedRecord{{
		Record:   rec,
		Analysis: models.Analysis{IsGen5: true, IsNVMe: true, CapacityTB: 4},
	}}
	rs.Summary = models.Summary{
		TotalProducts:      1,
		MatchedProducts:    1,
		Gen5Products:       1,
		CapacityOptions:    []string{"4.0TB"},
		TotalCapacityTB:    4,
		VendorDistribution: map[string]int{"TRUSTA": 1},
		PageURL:            rs.QVLURL,
	}
	rs.Search = models.SearchSummary{Successful: true}
	return rs
}

func TestSaveJSON_StableFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := SaveJSON(sampleResult(), path); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	for _, key := range []string{
		"target_server", "qvl_url", "trusta_products_found",
		"all_nvme_products", "qvl_summary", "search_summary", "errors",
	} {
		if _, ok := doc[key]; !ok {
			t.Errorf("document missing top-level field %q", key)
		}
	}

	var matched []map[string]json.RawMessage
	if err := json.Unmarshal(doc["trusta_products_found"], &matched); err != nil {
		t.Fatalf("matched products: %v", err)
	}
	if len(matched) != 1 {
		t.Fatalf("got %d matched products, want 1", len(matched))
	}
	if _, ok := matched[0]["analysis"]; !ok {
		t.Error("matched product missing embedded analysis")
	}
	if _, ok := matched[0]["Product Name"]; !ok {
		t.Error("matched product missing flattened record fields")
	}

	var summary map[string]json.RawMessage
	if err := json.Unmarshal(doc["qvl_summary"], &summary); err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, key := range []string{
		"total_nvme_products_in_qvl", "trusta_products_found", "trusta_gen5_products",
		"trusta_capacity_options", "total_trusta_capacity_tb", "vendor_distribution", "qvl_page_url",
	} {
		if _, ok := summary[key]; !ok {
			t.Errorf("summary missing field %q", key)
		}
	}
}

func TestSaveJSON_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := SaveJSON(sampleResult(), path); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := SaveJSON(models.NewResultSet("other", "u"), path); err != nil {
		t.Fatalf("second save: %v", err)
	}

	content, _ := os.ReadFile(path)
	var doc map[string]interface{}
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("output after overwrite is not valid JSON: %v", err)
	}
	if doc["target_server"] != "other" {
		t.Errorf("target_server = %v, want the second run's value", doc["target_server"])
	}
}
