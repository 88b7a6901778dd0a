package analytics

import "time"

type SessionStats struct {
	SessionID    string        `json:"sessionId"`
	Shots        int           `json:"shots"`
	Hits         int           `json:"hits"`
	Misses       int           `json:"misses"`
	Accuracy     float64       `json:"accuracy"` // percentage of shots that hit
	Score        int           `json:"score"`
	BestCombo    int           `json:"bestCombo"`
	HighestWave  int           `json:"highestWave"`
	BulletTimes  int           `json:"bulletTimes"`
	AvgReaction  float64       `json:"avgReactionMs"`
	BestReaction int           `json:"bestReactionMs"`
	SPS          float64       `json:"shotsPerSecond"`
	FirstShot    time.Time     `json:"firstShot"`
	LastShot     time.Time     `json:"lastShot"`
	Duration     time.Duration `json:"-"`
	Badges       []Badge       `json:"badges"`
}
