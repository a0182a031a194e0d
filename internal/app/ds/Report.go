package ds

import "time"

// ReportFormData is a farmer's disease report. It is discarded after submission.
type ReportFormData struct {
	FarmerName    string    `json:"farmerName" form:"farmerName" binding:"required,max=120"`
	ContactNumber string    `json:"contactNumber" form:"contactNumber" binding:"required,max=32"`
	Province      string    `json:"province" form:"province" binding:"required"`
	Municipality  string    `json:"municipality" form:"municipality" binding:"required"`
	Barangay      string    `json:"barangay" form:"barangay"`
	DiseaseID     string    `json:"diseaseId" form:"diseaseId"`
	CropStage     string    `json:"cropStage" form:"cropStage"`
	AffectedArea  float64   `json:"affectedArea" form:"affectedArea" binding:"gte=0"`
	Severity      Severity  `json:"severity" form:"severity" binding:"required,oneof=Low Medium High"`
	Description   string    `json:"description" form:"description" binding:"required,max=2000"`
	ObservedAt    time.Time `json:"observedAt" form:"observedAt" time_format:"2006-01-02"`
}

// ReportReceipt is returned to the app once a report was handed off.
type ReportReceipt struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
	PhotoKey    string    `json:"photoKey,omitempty"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
}
