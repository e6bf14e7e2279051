package models

type Question struct {
	ID            string   `json:"id"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer int      `json:"correctAnswer"`
	SignID        string   `json:"signId,omitempty"`
}

type Sign struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// WeakCategory is a category whose accuracy is below the weak threshold.
type WeakCategory struct {
	Category string `json:"category"`
	CategoryStat
}

type CategoryMastery struct {
	Category string `json:"category"`
	Level    string `json:"level"`
	CategoryStat
}

type SignMastery struct {
	SignID string `json:"signId"`
	Level  string `json:"level"`
}
