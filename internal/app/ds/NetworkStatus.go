package ds

import "time"

type NetworkStatus struct {
	IsOnline   bool `json:"isOnline"`
	IsOffline  bool `json:"isOffline"`
	WasOffline bool `json:"wasOffline"`
}

// ConnectivityReport is an online/offline event reported by the app itself.
type ConnectivityReport struct {
	Online *bool `json:"online" binding:"required"`
}

// ConnectivityProbe captures the outcome of one upstream probe.
type ConnectivityProbe struct {
	Target    string    `json:"target"`
	OK        bool      `json:"ok"`
	LatencyMs int64     `json:"latencyMs"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

type Capabilities struct {
	CanScanImages     bool `json:"canScanImages"`
	CanTranslate      bool `json:"canTranslate"`
	CanViewDiseases   bool `json:"canViewDiseases"`
	CanViewVendors    bool `json:"canViewVendors"`
	CanReportDiseases bool `json:"canReportDiseases"`
	CanSyncDiseases   bool `json:"canSyncDiseases"`
}
