package service

import (
	"bizzybot_backend/internal/leads/domain"
	"bizzybot_backend/internal/leads/scoring"
)

// Tag thresholds over the score breakdown and event set. Each tag is
// triggered independently.
const (
	highlyEngagedThreshold = 35
	multiChannelThreshold  = 2
	highValueThreshold     = 1000.0
	fullContactScore       = 20
)

// deriveTags turns breakdown fields and event counts into human labels.
func deriveTags(contact domain.Contact, result scoring.Result) []string {
	tags := make([]string, 0, 5)

	if result.Temperature == domain.TemperatureHot {
		tags = append(tags, "Hot Lead")
	}
	if result.Breakdown.Engagement >= highlyEngagedThreshold {
		tags = append(tags, "Highly Engaged")
	}
	if len(contact.Channels()) >= multiChannelThreshold {
		tags = append(tags, "Multi-Channel")
	}
	if contact.TotalValue() >= highValueThreshold {
		tags = append(tags, "High Value")
	}
	if result.Breakdown.Contact == fullContactScore {
		tags = append(tags, "Has Contact Info")
	}

	return tags
}
