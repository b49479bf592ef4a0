package hotlead

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"

	"bizzybot_backend/platform/ai/openaicompat"
	"bizzybot_backend/platform/config"
	"bizzybot_backend/platform/logger"

	"github.com/google/uuid"
)

const classifierAppName = "message-classifier"

const fallbackReasoning = "Classification unavailable: the reasoning service did not return a usable result. Defaulting to not hot."

// Classifier scores a single message by delegating the judgment to an
// external reasoning model through the SaveClassification tool. When the
// model is unreachable or fails to call the tool, classification degrades
// to a conservative cold default instead of surfacing an error.
type Classifier struct {
	agent          agent.Agent
	runner         *runner.Runner
	sessionService session.Service
	deps           *toolDependencies
	log            *logger.Logger
	runMu          sync.Mutex
}

// NewClassifier creates the per-message classifier. When the reasoning
// backend is not configured the classifier still works, always returning
// the fallback classification.
func NewClassifier(cfg config.ReasoningConfig, log *logger.Logger) (*Classifier, error) {
	c := &Classifier{
		deps: &toolDependencies{},
		log:  log,
	}

	if !cfg.IsReasoningEnabled() {
		log.Warn("reasoning service not configured; message classification will always fall back to cold")
		return c, nil
	}

	model := openaicompat.NewModel(openaicompat.Config{
		APIKey:  cfg.GetReasoningAPIKey(),
		BaseURL: cfg.GetReasoningBaseURL(),
		Model:   cfg.GetReasoningModel(),
	})

	saveTool, err := createSaveClassificationTool(c.deps)
	if err != nil {
		return nil, fmt.Errorf("failed to build SaveClassification tool: %w", err)
	}

	adkAgent, err := llmagent.New(llmagent.Config{
		Name:        "MessageClassifier",
		Model:       model,
		Description: "Scores a single inbound message for purchase urgency.",
		Instruction: classifierInstruction,
		Tools:       []tool.Tool{saveTool},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier agent: %w", err)
	}

	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        classifierAppName,
		Agent:          adkAgent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier runner: %w", err)
	}

	c.agent = adkAgent
	c.runner = r
	c.sessionService = sessionService
	return c, nil
}

// Classify scores one message with an optional short conversation history.
// It never returns an error: any failure yields the fail-safe cold default.
func (c *Classifier) Classify(ctx context.Context, customerID uuid.UUID, message string, history []string) Classification {
	matches := MatchKeywords(message)

	if c.runner == nil {
		return c.fallback(customerID, matches, "reasoning service disabled")
	}

	c.runMu.Lock()
	defer c.runMu.Unlock()

	c.deps.reset()

	prompt := buildClassifierPrompt(message, history, matches)
	if err := c.runWithPrompt(ctx, customerID, prompt); err != nil {
		return c.fallback(customerID, matches, err.Error())
	}

	classification, ok := c.deps.result()
	if !ok {
		return c.fallback(customerID, matches, "SaveClassification was not called")
	}

	if len(classification.Keywords) == 0 {
		classification.Keywords = matches.All()
	}
	return classification
}

// fallback is the fail-safe-to-cold default: score 0, never hot, with an
// explicit failure explanation in place of model reasoning.
func (c *Classifier) fallback(customerID uuid.UUID, matches KeywordMatches, reason string) Classification {
	c.log.ClassifierFallback(customerID.String(), reason)
	return Classification{
		Score:      0,
		IsHotLead:  false,
		Reasoning:  fallbackReasoning,
		Keywords:   matches.All(),
		Urgency:    UrgencyLow,
		NextAction: "Review the conversation manually.",
		Fallback:   true,
	}
}

func (c *Classifier) runWithPrompt(ctx context.Context, customerID uuid.UUID, prompt string) error {
	sessionID := uuid.New().String()
	userID := "classifier-" + customerID.String()

	_, err := c.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   classifierAppName,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return fmt.Errorf("failed to create classifier session: %w", err)
	}
	defer func() {
		_ = c.sessionService.Delete(ctx, &session.DeleteRequest{
			AppName:   classifierAppName,
			UserID:    userID,
			SessionID: sessionID,
		})
	}()

	userMessage := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}

	runConfig := agent.RunConfig{StreamingMode: agent.StreamingModeNone}
	for event := range c.runner.Run(ctx, userID, sessionID, userMessage, runConfig) {
		_ = event
	}

	return nil
}
