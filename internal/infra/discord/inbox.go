package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/perchhq/perch/internal/domain"
)

// fetchLimit bounds one inbox poll. Unread backlog beyond this is picked up
// on the next activation.
const fetchLimit = 50

// Ensure ChannelInbox implements domain.Inbox.
var _ domain.Inbox = (*ChannelInbox)(nil)

// ChannelInbox polls one Discord channel for direct requests to an agent.
// It tracks a high-water mark, so each message is surfaced once per process
// lifetime. Message IDs are snowflakes: lexical order on equal-length IDs
// matches chronological order.
type ChannelInbox struct {
	client    *client
	channelID string
	botUserID string
	lastSeen  string
	mu        sync.Mutex
}

// NewChannelInbox creates an inbox over channelID. Messages authored by
// botUserID are skipped so the agent does not react to its own replies.
func NewChannelInbox(token, channelID, botUserID, apiBase string) *ChannelInbox {
	return &ChannelInbox{
		client:    newClient(token, apiBase),
		channelID: channelID,
		botUserID: botUserID,
	}
}

// FetchUnread returns messages newer than the high-water mark, oldest first.
func (in *ChannelInbox) FetchUnread(ctx context.Context) ([]domain.InboundMessage, error) {
	in.mu.Lock()
	after := in.lastSeen
	in.mu.Unlock()

	msgs, err := in.client.listMessagesAfter(ctx, in.channelID, after, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch channel %s: %w", in.channelID, err)
	}

	// Discord returns newest first.
	out := make([]domain.InboundMessage, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m.Author.Bot || m.Author.ID == in.botUserID {
			continue
		}
		out = append(out, domain.InboundMessage{
			ID:      m.ID,
			Author:  m.Author.Username,
			Content: m.Content,
		})
	}
	return out, nil
}

// Acknowledge replies to the message and advances the high-water mark past it.
func (in *ChannelInbox) Acknowledge(ctx context.Context, msg domain.InboundMessage, reply string) error {
	if reply != "" {
		if _, err := in.client.createMessage(ctx, in.channelID, reply); err != nil {
			return fmt.Errorf("reply in channel %s: %w", in.channelID, err)
		}
	}

	in.mu.Lock()
	if snowflakeLess(in.lastSeen, msg.ID) {
		in.lastSeen = msg.ID
	}
	in.mu.Unlock()
	return nil
}

// snowflakeLess compares Discord snowflake IDs chronologically.
func snowflakeLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
