package ws

import (
	"encoding/json"
	"time"
)

const EventInterviewPrepSent = "interview_prep_sent"

// InterviewPrepSentEvent names the role, never the recipient.
type InterviewPrepSentEvent struct {
	Type        string `json:"type"`
	CompanyName string `json:"companyName"`
	JobTitle    string `json:"jobTitle"`
	Timestamp   string `json:"timestamp"`
}

// Notifier turns mail pipeline outcomes into hub broadcasts.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) NotifyInterviewPrepSent(companyName, jobTitle string) {
	if n == nil || n.hub == nil {
		return
	}

	evt := InterviewPrepSentEvent{
		Type:        EventInterviewPrepSent,
		CompanyName: companyName,
		JobTitle:    jobTitle,
		Timestamp:   n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
