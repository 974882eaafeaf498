package discord

import (
	"context"
	"fmt"

	"github.com/perchhq/perch/internal/domain"
)

// Ensure Notifier implements domain.Notifier.
var _ domain.Notifier = (*Notifier)(nil)

// Notifier posts task updates to a Discord channel.
type Notifier struct {
	client    *client
	channelID string
}

// NewNotifier creates a Notifier posting to channelID. An empty apiBase means
// the production Discord endpoint.
func NewNotifier(token, channelID, apiBase string) *Notifier {
	return &Notifier{
		client:    newClient(token, apiBase),
		channelID: channelID,
	}
}

// PostMessage sends free-form text to a channel or thread. An empty target
// falls back to the configured channel.
func (n *Notifier) PostMessage(ctx context.Context, channelOrThread, text string) error {
	target := channelOrThread
	if target == "" {
		target = n.channelID
	}
	_, err := n.client.createMessage(ctx, target, text)
	return err
}

// PostStatusUpdate sends a formatted task progress update. Updates carrying a
// thread handle go to the thread; the rest go to the status channel.
func (n *Notifier) PostStatusUpdate(ctx context.Context, update domain.StatusUpdate) error {
	return n.PostMessage(ctx, update.ThreadID, formatStatusUpdate(update))
}

// CreateThread opens a thread in the given channel and posts the initial
// message into it.
func (n *Notifier) CreateThread(ctx context.Context, channelID, title, initialMessage string) (string, error) {
	if channelID == "" {
		channelID = n.channelID
	}
	thread, err := n.client.createThread(ctx, channelID, title)
	if err != nil {
		return "", err
	}
	if initialMessage != "" {
		if _, err := n.client.createMessage(ctx, thread.ID, initialMessage); err != nil {
			return "", err
		}
	}
	return thread.ID, nil
}

// Close releases the underlying session.
func (n *Notifier) Close() error {
	n.client.http.CloseIdleConnections()
	return nil
}

func formatStatusUpdate(update domain.StatusUpdate) string {
	var icon, verb string
	switch update.Status {
	case domain.UpdateStarted:
		icon, verb = "\U0001F680", "started working on"
	case domain.UpdateCompleted:
		icon, verb = "✅", "completed"
	case domain.UpdateBlocked:
		icon, verb = "\U0001F6A7", "is blocked on"
	case domain.UpdateMoved:
		icon, verb = "\U0001F4CC", "handed off"
	default:
		icon, verb = "ℹ️", "updated"
	}

	text := fmt.Sprintf("%s **%s** %s: %s", icon, update.AgentName, verb, update.TaskTitle)
	if update.Details != "" {
		text += "\n" + update.Details
	}
	return text
}

// Ensure NopNotifier implements domain.Notifier.
var _ domain.Notifier = NopNotifier{}

// NopNotifier drops every notification. Used when no sink is configured.
type NopNotifier struct{}

func (NopNotifier) PostMessage(context.Context, string, string) error { return nil }

func (NopNotifier) PostStatusUpdate(context.Context, domain.StatusUpdate) error { return nil }

func (NopNotifier) CreateThread(context.Context, string, string, string) (string, error) {
	return "", nil
}

func (NopNotifier) Close() error { return nil }
