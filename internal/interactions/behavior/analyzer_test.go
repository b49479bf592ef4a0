package behavior

import "testing"

func TestAnalyzeDetectsPhoneRequest(t *testing.T) {
	behaviors := Analyze("Could you share your phone number so our team can call you?", "sure")

	found := false
	for _, b := range behaviors {
		if b.Tag == TagPhoneRequested {
			found = true
			if b.Source != SourceAIResponse {
				t.Fatalf("expected source %q, got %q", SourceAIResponse, b.Source)
			}
			if b.EventType != "phone_request" {
				t.Fatalf("expected event type phone_request, got %q", b.EventType)
			}
		}
	}
	if !found {
		t.Fatalf("expected phone_requested behavior, got %v", behaviors)
	}
}

func TestAnalyzeDetectsMultipleBehaviors(t *testing.T) {
	behaviors := Analyze(
		"I can schedule a visit for you. What is your phone number?",
		"I need this done asap, my budget is $5000",
	)

	tags := make(map[string]bool)
	for _, b := range behaviors {
		tags[b.Tag] = true
	}

	for _, want := range []string{TagPhoneRequested, TagAppointmentOffered, TagUrgencyExpressed, TagBudgetMentioned} {
		if !tags[want] {
			t.Fatalf("expected tag %q in %v", want, behaviors)
		}
	}
}

func TestAnalyzeNoSignalYieldsEmpty(t *testing.T) {
	behaviors := Analyze("Thanks for reaching out!", "hello")
	if len(behaviors) != 0 {
		t.Fatalf("expected no behaviors, got %v", behaviors)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	ai := "Could you share your phone number?"
	user := "call me today, it is urgent"

	first := Analyze(ai, user)
	second := Analyze(ai, user)

	if len(first) != len(second) {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected identical results at %d, got %v and %v", i, first[i], second[i])
		}
	}
}

func TestAnalyzeEmptyInputs(t *testing.T) {
	if behaviors := Analyze("", ""); len(behaviors) != 0 {
		t.Fatalf("expected no behaviors for empty inputs, got %v", behaviors)
	}
}
