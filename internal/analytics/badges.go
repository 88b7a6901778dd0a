package analytics

type BadgeID string

const (
	BadgeSharpshooter BadgeID = "sharpshooter"
	BadgeSpeedDemon   BadgeID = "speed_demon"
	BadgeUnstoppable  BadgeID = "unstoppable"
	BadgeCenturion    BadgeID = "centurion"
	BadgeTriggerHappy BadgeID = "trigger_happy"
	BadgeVeteran      BadgeID = "veteran"
	BadgeSlowMotion   BadgeID = "slow_motion"
)

type Badge struct {
	ID          BadgeID `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

var AllBadges = map[BadgeID]Badge{
	BadgeSharpshooter: {ID: BadgeSharpshooter, Name: "Sharpshooter", Description: "90%+ accuracy over 20+ shots", Icon: "🎯"},
	BadgeSpeedDemon:   {ID: BadgeSpeedDemon, Name: "Speed Demon", Description: "Average reaction time under 1000ms over 10+ hits", Icon: "⚡"},
	BadgeUnstoppable:  {ID: BadgeUnstoppable, Name: "Unstoppable", Description: "Combo of 30 or more", Icon: "🔥"},
	BadgeCenturion:    {ID: BadgeCenturion, Name: "Centurion", Description: "1000+ points in a session", Icon: "💯"},
	BadgeTriggerHappy: {ID: BadgeTriggerHappy, Name: "Trigger Happy", Description: "3+ shots per second average", Icon: "🖱️"},
	BadgeVeteran:      {ID: BadgeVeteran, Name: "Veteran", Description: "Reached wave 5", Icon: "🏅"},
	BadgeSlowMotion:   {ID: BadgeSlowMotion, Name: "Slow Motion", Description: "Triggered bullet time", Icon: "⏳"},
}

// EvaluateSessionBadges checks which badges a player has earned so far.
func EvaluateSessionBadges(stats SessionStats) []Badge {
	var earned []Badge

	// Sharpshooter: 90%+ accuracy over a meaningful sample
	if stats.Shots >= 20 && stats.Accuracy >= 90.0 {
		earned = append(earned, AllBadges[BadgeSharpshooter])
	}

	// Speed Demon: avg reaction < 1000ms
	if stats.Hits >= 10 && stats.AvgReaction > 0 && stats.AvgReaction < 1000 {
		earned = append(earned, AllBadges[BadgeSpeedDemon])
	}

	if stats.BestCombo >= 30 {
		earned = append(earned, AllBadges[BadgeUnstoppable])
	}

	if stats.Score >= 1000 {
		earned = append(earned, AllBadges[BadgeCenturion])
	}

	// Trigger Happy: 3+ SPS
	if stats.SPS >= 3.0 {
		earned = append(earned, AllBadges[BadgeTriggerHappy])
	}

	if stats.HighestWave >= 5 {
		earned = append(earned, AllBadges[BadgeVeteran])
	}

	if stats.BulletTimes > 0 {
		earned = append(earned, AllBadges[BadgeSlowMotion])
	}

	return earned
}
