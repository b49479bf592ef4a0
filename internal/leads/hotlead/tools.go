package hotlead

import (
	"strings"
	"sync"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// Classification is the result of classifying a single message.
type Classification struct {
	Score      int      `json:"score"`
	IsHotLead  bool     `json:"isHotLead"`
	Reasoning  string   `json:"reasoning"`
	Keywords   []string `json:"keywords"`
	Urgency    string   `json:"urgency"`
	NextAction string   `json:"nextAction"`
	Fallback   bool     `json:"fallback"`
}

// SaveClassificationInput is the tool payload the reasoning model must emit.
type SaveClassificationInput struct {
	Score      int      `json:"score" description:"Urgency/intent score from 0 to 10"`
	IsHotLead  bool     `json:"isHotLead" description:"Whether this message indicates a hot lead"`
	Reasoning  string   `json:"reasoning" description:"Short explanation of the score"`
	Keywords   []string `json:"keywords" description:"Keywords from the message that influenced the score"`
	Urgency    string   `json:"urgency" description:"One of: low, medium, high"`
	NextAction string   `json:"nextAction" description:"Suggested next action for the business"`
}

// SaveClassificationOutput acknowledges the tool call.
type SaveClassificationOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// toolDependencies captures the classification saved by the agent's tool
// call during a run. Access is serialized by the classifier's run mutex,
// but the struct is still guarded for safety.
type toolDependencies struct {
	mu         sync.Mutex
	saveCalled bool
	saved      Classification
}

func (d *toolDependencies) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.saveCalled = false
	d.saved = Classification{}
}

func (d *toolDependencies) record(c Classification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.saveCalled = true
	d.saved = c
}

func (d *toolDependencies) result() (Classification, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saved, d.saveCalled
}

// applyClassificationRules normalizes a raw tool payload into a final
// classification. The score is clamped to 0-10 and the hot flag is derived
// from the cutoff, regardless of what the model claimed.
func applyClassificationRules(input SaveClassificationInput) Classification {
	score := input.Score
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	return Classification{
		Score:      score,
		IsHotLead:  score >= hotScoreCutoff,
		Reasoning:  strings.TrimSpace(input.Reasoning),
		Keywords:   input.Keywords,
		Urgency:    normalizeUrgency(input.Urgency),
		NextAction: strings.TrimSpace(input.NextAction),
	}
}

func normalizeUrgency(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case UrgencyHigh, "urgent", "critical":
		return UrgencyHigh
	case UrgencyMedium, "moderate", "normal":
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// createSaveClassificationTool creates the SaveClassification tool the agent
// must call exactly once per run.
func createSaveClassificationTool(deps *toolDependencies) (tool.Tool, error) {
	return functiontool.New(functiontool.Config{
		Name:        "SaveClassification",
		Description: "Saves the message classification. Call this ONCE after assessing the message. Score must be an integer from 0 to 10 and urgency must be exactly 'low', 'medium', or 'high'.",
	}, func(ctx tool.Context, input SaveClassificationInput) (SaveClassificationOutput, error) {
		deps.record(applyClassificationRules(input))
		return SaveClassificationOutput{Success: true, Message: "Classification saved"}, nil
	})
}
