// Package capability maps connectivity to the features the app may offer.
package capability

import "riceguard/internal/app/ds"

const (
	ScanImages     = "canScanImages"
	Translate      = "canTranslate"
	ViewDiseases   = "canViewDiseases"
	ViewVendors    = "canViewVendors"
	ReportDiseases = "canReportDiseases"
	SyncDiseases   = "canSyncDiseases"
)

// Resolve returns the fixed feature matrix for the given connectivity.
func Resolve(isOnline bool) ds.Capabilities {
	return ds.Capabilities{
		CanScanImages:     true,
		CanTranslate:      true,
		CanViewDiseases:   true,
		CanViewVendors:    true,
		CanReportDiseases: isOnline,
		CanSyncDiseases:   isOnline,
	}
}

// Allows looks a capability up by its JSON name. Unknown names are never allowed.
func Allows(c ds.Capabilities, name string) bool {
	switch name {
	case ScanImages:
		return c.CanScanImages
	case Translate:
		return c.CanTranslate
	case ViewDiseases:
		return c.CanViewDiseases
	case ViewVendors:
		return c.CanViewVendors
	case ReportDiseases:
		return c.CanReportDiseases
	case SyncDiseases:
		return c.CanSyncDiseases
	default:
		return false
	}
}
