package analytics

import "testing"

func TestEvaluateSessionBadges_Sharpshooter(t *testing.T) {
	stats := SessionStats{Shots: 20, Hits: 18, Accuracy: 90.0}
	badges := EvaluateSessionBadges(stats)
	if !hasBadge(badges, BadgeSharpshooter) {
		t.Error("should earn Sharpshooter with 90% accuracy over 20 shots")
	}
}

func TestEvaluateSessionBadges_NoSharpshooter(t *testing.T) {
	cases := []SessionStats{
		{Shots: 20, Hits: 17, Accuracy: 85.0},
		{Shots: 19, Hits: 19, Accuracy: 100.0},
	}
	for _, stats := range cases {
		if hasBadge(EvaluateSessionBadges(stats), BadgeSharpshooter) {
			t.Errorf("should not earn Sharpshooter with %+v", stats)
		}
	}
}

func TestEvaluateSessionBadges_SpeedDemon(t *testing.T) {
	stats := SessionStats{Hits: 10, AvgReaction: 800}
	badges := EvaluateSessionBadges(stats)
	if !hasBadge(badges, BadgeSpeedDemon) {
		t.Error("should earn Speed Demon with 800ms avg reaction")
	}
}

func TestEvaluateSessionBadges_NoSpeedDemon(t *testing.T) {
	stats := SessionStats{Hits: 10, AvgReaction: 1200}
	badges := EvaluateSessionBadges(stats)
	if hasBadge(badges, BadgeSpeedDemon) {
		t.Error("should not earn Speed Demon with 1200ms avg reaction")
	}
}

func TestEvaluateSessionBadges_Unstoppable(t *testing.T) {
	if !hasBadge(EvaluateSessionBadges(SessionStats{BestCombo: 30}), BadgeUnstoppable) {
		t.Error("should earn Unstoppable with a 30 combo")
	}
	if hasBadge(EvaluateSessionBadges(SessionStats{BestCombo: 29}), BadgeUnstoppable) {
		t.Error("should not earn Unstoppable with a 29 combo")
	}
}

func TestEvaluateSessionBadges_Centurion(t *testing.T) {
	if !hasBadge(EvaluateSessionBadges(SessionStats{Score: 1000}), BadgeCenturion) {
		t.Error("should earn Centurion with 1000 points")
	}
	if hasBadge(EvaluateSessionBadges(SessionStats{Score: 990}), BadgeCenturion) {
		t.Error("should not earn Centurion with 990 points")
	}
}

func TestEvaluateSessionBadges_TriggerHappy(t *testing.T) {
	if !hasBadge(EvaluateSessionBadges(SessionStats{SPS: 3.0}), BadgeTriggerHappy) {
		t.Error("should earn Trigger Happy with 3.0 SPS")
	}
	if hasBadge(EvaluateSessionBadges(SessionStats{SPS: 2.9}), BadgeTriggerHappy) {
		t.Error("should not earn Trigger Happy with 2.9 SPS")
	}
}

func TestEvaluateSessionBadges_Veteran(t *testing.T) {
	if !hasBadge(EvaluateSessionBadges(SessionStats{HighestWave: 5}), BadgeVeteran) {
		t.Error("should earn Veteran at wave 5")
	}
	if hasBadge(EvaluateSessionBadges(SessionStats{HighestWave: 4}), BadgeVeteran) {
		t.Error("should not earn Veteran at wave 4")
	}
}

func TestEvaluateSessionBadges_SlowMotion(t *testing.T) {
	if !hasBadge(EvaluateSessionBadges(SessionStats{BulletTimes: 1}), BadgeSlowMotion) {
		t.Error("should earn Slow Motion after bullet time")
	}
}

func TestEvaluateSessionBadges_NoBadges(t *testing.T) {
	stats := SessionStats{
		Shots:       5,
		Hits:        3,
		Accuracy:    60.0,
		Score:       60,
		AvgReaction: 1500,
		SPS:         1.0,
		BestCombo:   3,
		HighestWave: 2,
	}
	badges := EvaluateSessionBadges(stats)
	if len(badges) != 0 {
		t.Errorf("should earn no badges, got %d", len(badges))
	}
}

func TestEvaluateSessionBadges_MultipleBadges(t *testing.T) {
	stats := SessionStats{
		Shots:       40,
		Hits:        38,
		Accuracy:    95.0,
		Score:       7410,
		AvgReaction: 600,
		SPS:         3.5,
		BestCombo:   38,
		HighestWave: 6,
		BulletTimes: 3,
	}
	badges := EvaluateSessionBadges(stats)
	if len(badges) != len(AllBadges) {
		t.Errorf("should earn %d badges, got %d", len(AllBadges), len(badges))
	}
}

func hasBadge(badges []Badge, id BadgeID) bool {
	for _, b := range badges {
		if b.ID == id {
			return true
		}
	}
	return false
}
