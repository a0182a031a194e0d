package ds

// DiseaseDetectionResult is one classifier hit. Produced per scan, never stored.
type DiseaseDetectionResult struct {
	DiseaseID   string   `json:"diseaseId"`
	DiseaseName string   `json:"diseaseName"`
	Confidence  float64  `json:"confidence"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// ImageUpload describes an uploaded file without its content.
type ImageUpload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}
