package hotlead

import (
	"context"
	"testing"

	"bizzybot_backend/platform/logger"

	"github.com/google/uuid"
)

type disabledReasoningConfig struct{}

func (disabledReasoningConfig) GetReasoningAPIKey() string  { return "" }
func (disabledReasoningConfig) GetReasoningBaseURL() string { return "" }
func (disabledReasoningConfig) GetReasoningModel() string   { return "" }
func (disabledReasoningConfig) IsReasoningEnabled() bool    { return false }

func TestMatchKeywordsHighIntentMessage(t *testing.T) {
	matches := MatchKeywords("I need this ASAP, my budget is $5000, call me today")

	if len(matches.High) < 3 {
		t.Fatalf("expected at least 3 high intent matches, got %v", matches.High)
	}
	if matches.SuggestedUrgency() != UrgencyHigh {
		t.Fatalf("expected high urgency, got %s", matches.SuggestedUrgency())
	}
}

func TestMatchKeywordsLowIntentMessage(t *testing.T) {
	matches := MatchKeywords("just looking around, maybe someday")

	if len(matches.High) != 0 {
		t.Fatalf("expected no high intent matches, got %v", matches.High)
	}
	if len(matches.Low) == 0 {
		t.Fatalf("expected low intent matches, got none")
	}
	if matches.SuggestedUrgency() != UrgencyLow {
		t.Fatalf("expected low urgency, got %s", matches.SuggestedUrgency())
	}
}

func TestMatchKeywordsNoSignal(t *testing.T) {
	matches := MatchKeywords("hello there")
	if len(matches.All()) != 0 {
		t.Fatalf("expected no matches, got %v", matches.All())
	}
	if matches.SuggestedUrgency() != UrgencyLow {
		t.Fatalf("expected low urgency default, got %s", matches.SuggestedUrgency())
	}
}

func TestApplyClassificationRulesDerivesHotFlag(t *testing.T) {
	tests := []struct {
		name    string
		input   SaveClassificationInput
		want    int
		wantHot bool
	}{
		{"score at cutoff", SaveClassificationInput{Score: 7, IsHotLead: false}, 7, true},
		{"score below cutoff claiming hot", SaveClassificationInput{Score: 4, IsHotLead: true}, 4, false},
		{"score above range", SaveClassificationInput{Score: 14}, 10, true},
		{"score below range", SaveClassificationInput{Score: -2}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyClassificationRules(tt.input)
			if got.Score != tt.want {
				t.Fatalf("expected score %d, got %d", tt.want, got.Score)
			}
			if got.IsHotLead != tt.wantHot {
				t.Fatalf("expected isHotLead=%v, got %v", tt.wantHot, got.IsHotLead)
			}
		})
	}
}

func TestApplyClassificationRulesNormalizesUrgency(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"HIGH", UrgencyHigh},
		{"urgent", UrgencyHigh},
		{"Medium", UrgencyMedium},
		{"low", UrgencyLow},
		{"nonsense", UrgencyLow},
	}

	for _, tt := range tests {
		got := applyClassificationRules(SaveClassificationInput{Urgency: tt.raw})
		if got.Urgency != tt.want {
			t.Fatalf("urgency %q: expected %s, got %s", tt.raw, tt.want, got.Urgency)
		}
	}
}

func TestClassifyFallsBackWhenReasoningDisabled(t *testing.T) {
	classifier, err := NewClassifier(disabledReasoningConfig{}, logger.New("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := classifier.Classify(context.Background(), uuid.New(), "I need this ASAP, call me today", nil)

	if !result.Fallback {
		t.Fatalf("expected fallback classification")
	}
	if result.Score != 0 || result.IsHotLead {
		t.Fatalf("expected fail-safe cold result, got %+v", result)
	}
	if result.Reasoning == "" {
		t.Fatalf("expected explicit failure reasoning")
	}
	if len(result.Keywords) == 0 {
		t.Fatalf("expected matched keywords in fallback, got none")
	}
}
