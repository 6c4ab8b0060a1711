package evalbench

import (
	"encoding/json"
	"fmt"

	"github.com/evalbench/evalbench/notifier/mail"
	"github.com/evalbench/evalbench/notifier/mailgun"
	"github.com/evalbench/evalbench/notifier/pushover"
	"github.com/evalbench/evalbench/notifier/slack"
)

func notifierDecode(name string, config json.RawMessage) (Notifier, error) {
	switch name {
	case mail.Type:
		return mail.New(config)
	case mailgun.Type:
		return mailgun.New(config)
	case pushover.Type:
		return pushover.New(config)
	case slack.Type:
		return slack.New(config)
	default:
		return nil, fmt.Errorf(errUnknownNotifierType, name)
	}
}
