package config

import "time"

// Default constants for application configuration. The reference deployment
// targets the G293-S40-AAP1 NVMe SSD QVL section and the TRUSTA T7P5 series;
// all of these are overridable by flag or environment.
const (
	DefaultLogLevel = "info"
	DefaultJSONLog  = false

	DefaultTargetURL     = "https://www.gigabyte.com/Enterprise/GPU-Server/G293-S40-AAP1/Support-QVL?CAT=Storage-NVMeSSD"
	DefaultTargetServer  = "G293-S40-AAP1"
	DefaultQVLSection    = "Storage - NVMe SSD"
	DefaultVendorKeyword = "TRUSTA"
	DefaultSeriesKeyword = "T7P5"
	DefaultOutputPath    = "qvl_results.json"

	DefaultMaxWait      = 15 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
	DefaultSettleDelay  = 2 * time.Second
	DefaultHeadless     = true
	DefaultUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)
