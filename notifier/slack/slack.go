package slack

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	slack "github.com/ashwanthkumar/slack-go-webhook"

	"github.com/evalbench/evalbench/types"
)

// Type should match the package name
const Type = "slack"

// Notifier consist of all the sub components required to use Slack API
type Notifier struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Channel  string `json:"channel"`
	Webhook  string `json:"webhook"`
}

// New creates a new Notifier instance based on json config
func New(config json.RawMessage) (Notifier, error) {
	var notifier Notifier
	err := json.Unmarshal(config, &notifier)
	return notifier, err
}

// Type returns the notifier package name
func (Notifier) Type() string {
	return Type
}

// Notify implements notifier interface: every benchmark that
// failed or ran over its budget is posted to the webhook.
func (s Notifier) Notify(report types.Report) error {
	for _, result := range report.Results() {
		if !result.WithinBudget {
			s.Send(result)
		}
	}
	return nil
}

// Send posts a single regression to the Slack webhook.
func (s Notifier) Send(result types.Result) error {
	color := "danger"
	if result.OverBudget {
		color = "warning"
	}
	attach := slack.Attachment{}
	attach.AddField(slack.Field{Title: result.Name, Value: result.Subject})
	attach.AddField(slack.Field{Title: "Status", Value: strings.ToUpper(fmt.Sprint(result.Status()))})
	attach.AddField(slack.Field{Title: "Mean", Value: result.Stats.Mean.String()})
	attach.Color = &color
	payload := slack.Payload{
		Text:        result.Name,
		Username:    s.Username,
		Channel:     s.Channel,
		Attachments: []slack.Attachment{attach},
	}

	err := slack.Send(s.Webhook, "", payload)
	if len(err) > 0 {
		log.Printf("ERROR: %s", err)
	}
	log.Printf("Regression notice sent for %s", result.Name)
	return nil
}
