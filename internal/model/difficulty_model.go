package model

import "time"

// DifficultyModel holds the two learned score cut points of the predictor
type DifficultyModel struct {
	MediumCut float64   `json:"mediumCut"`
	HardCut   float64   `json:"hardCut"`
	Samples   int       `json:"samples"`
	TrainedAt time.Time `json:"trainedAt,omitempty"`
}

// Valid reports whether the cut points are ordered and inside 0-100
func (m *DifficultyModel) Valid() bool {
	return m != nil && m.MediumCut > 0 && m.MediumCut < m.HardCut && m.HardCut <= 100
}
