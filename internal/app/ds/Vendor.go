package ds

type Vendor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Contact     string   `json:"contact"`
	Email       string   `json:"email"`
	Services    string   `json:"services"`
	Specialties []string `json:"specialties"`
	Rating      float64  `json:"rating"`
	Verified    bool     `json:"verified"`
	Region      string   `json:"region"`
}

// Coordinates is a raw location read from the caller. It is echoed, never ranked on.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
