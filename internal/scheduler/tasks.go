// Package scheduler provides the asynq task queue: background hot lead
// alert delivery and lead score refreshes.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskHotLeadAlert = "leads.hotlead.alert"

const TaskScoreRefresh = "leads.score.refresh"

type HotLeadAlertPayload struct {
	CustomerID string `json:"customerId"`
	LeadID     string `json:"leadId"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Score      int    `json:"score"`
	Reasoning  string `json:"reasoning,omitempty"`
	Source     string `json:"source"`
}

type ScoreRefreshPayload struct {
	CustomerID string `json:"customerId"`
}

func NewHotLeadAlertTask(payload HotLeadAlertPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskHotLeadAlert, data), nil
}

func ParseHotLeadAlertPayload(task *asynq.Task) (HotLeadAlertPayload, error) {
	var payload HotLeadAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return HotLeadAlertPayload{}, err
	}
	return payload, nil
}

func NewScoreRefreshTask(payload ScoreRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskScoreRefresh, data), nil
}

func ParseScoreRefreshPayload(task *asynq.Task) (ScoreRefreshPayload, error) {
	var payload ScoreRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ScoreRefreshPayload{}, err
	}
	return payload, nil
}
