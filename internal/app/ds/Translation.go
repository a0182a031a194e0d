package ds

import "time"

type Direction string

const (
	DirectionEnglishToFilipino Direction = "en-fil"
	DirectionFilipinoToEnglish Direction = "fil-en"
)

type Translation struct {
	ID       string `json:"id"`
	English  string `json:"english"`
	Filipino string `json:"filipino"`
	Category string `json:"category"`
}

// RecentTranslation is one entry of the recentTranslations list.
type RecentTranslation struct {
	Source     string    `json:"source"`
	Result     string    `json:"result"`
	Direction  Direction `json:"direction"`
	Translated time.Time `json:"translatedAt"`
}
