// Package digest selects and ranks the content of one digest email:
// hot stream conversations, unread private messages, new streams and
// new users since a cutoff.
package digest

import (
	"digest-lab/domain"
	"sort"
	"time"

	"github.com/samber/lo"
)

const (
	// DiversityWinners is how many conversations are picked purely for
	// participant diversity before message volume is considered.
	DiversityWinners = 2
	// MaxConversations caps the hot-conversation section.
	MaxConversations = 4
	// MaxPreviews caps the example messages shown per conversation.
	MaxPreviews = 2
)

// Conversation is one ranked (stream, topic) thread.
type Conversation struct {
	StreamID     int
	StreamName   string
	Topic        string
	Participants []string
	MessageCount int
	// Remainder counts the messages beyond the previews, never negative.
	Remainder int
	Previews  []Preview
}

// Preview is a single example message shown inline in the digest.
type Preview struct {
	SenderName string
	Content    string
	At         time.Time
}

type conversationKey struct {
	streamID int
	topic    string
}

type conversationBucket struct {
	key      conversationKey
	order    int // insertion order, the tie-breaker for both rankings
	messages []domain.StreamMessage
	senders  map[string]struct{}
}

// GatherHotConversations ranks the given window of stream messages and returns
// at most MaxConversations conversations, no duplicates:
//  1. bot-sent messages are excluded;
//  2. the top DiversityWinners by distinct-sender count come first;
//  3. remaining slots fill by message count descending;
//  4. any slots still open backfill from the diversity ranking.
//
// Both rankings are stable on the insertion order of the input, so callers
// must pass messages in a deterministic order (the store returns them sorted
// by timestamp). Empty input yields an empty result.
func GatherHotConversations(messages []domain.StreamMessage) []Conversation {
	buckets := make(map[conversationKey]*conversationBucket)
	var arrival []*conversationBucket

	for _, message := range messages {
		if message.SenderIsBot {
			continue
		}
		key := conversationKey{streamID: message.StreamID, topic: message.Topic}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &conversationBucket{
				key:     key,
				order:   len(arrival),
				senders: make(map[string]struct{}),
			}
			buckets[key] = bucket
			arrival = append(arrival, bucket)
		}
		bucket.messages = append(bucket.messages, message)
		bucket.senders[message.SenderID] = struct{}{}
	}

	if len(arrival) == 0 {
		return nil
	}

	byDiversity := make([]*conversationBucket, len(arrival))
	copy(byDiversity, arrival)
	sort.SliceStable(byDiversity, func(i, j int) bool {
		return len(byDiversity[i].senders) > len(byDiversity[j].senders)
	})

	byLength := make([]*conversationBucket, len(arrival))
	copy(byLength, arrival)
	sort.SliceStable(byLength, func(i, j int) bool {
		return len(byLength[i].messages) > len(byLength[j].messages)
	})

	selected := make([]*conversationBucket, 0, MaxConversations)
	seen := make(map[conversationKey]struct{})
	take := func(bucket *conversationBucket) {
		if _, ok := seen[bucket.key]; ok {
			return
		}
		seen[bucket.key] = struct{}{}
		selected = append(selected, bucket)
	}

	for _, bucket := range byDiversity[:min(DiversityWinners, len(byDiversity))] {
		take(bucket)
	}
	for _, bucket := range byLength {
		if len(selected) >= MaxConversations {
			break
		}
		take(bucket)
	}
	// Heavy-overlap backfill: walk the diversity ranking by position for
	// anything the two passes above missed.
	for _, bucket := range byDiversity {
		if len(selected) >= MaxConversations {
			break
		}
		take(bucket)
	}

	return lo.Map(selected, func(bucket *conversationBucket, _ int) Conversation {
		return bucket.summarize()
	})
}

func (b *conversationBucket) summarize() Conversation {
	previewCount := min(MaxPreviews, len(b.messages))
	previews := lo.Map(b.messages[:previewCount], func(message domain.StreamMessage, _ int) Preview {
		return Preview{
			SenderName: message.SenderName,
			Content:    message.Content,
			At:         message.At,
		}
	})

	// Sorted so rendering is deterministic; the sender set has no order.
	names := make(map[string]struct{}, len(b.senders))
	for _, message := range b.messages {
		names[message.SenderName] = struct{}{}
	}
	participants := lo.Keys(names)
	sort.Strings(participants)

	return Conversation{
		StreamID:     b.key.streamID,
		Topic:        b.key.topic,
		Participants: participants,
		MessageCount: len(b.messages),
		Remainder:    len(b.messages) - previewCount,
		Previews:     previews,
	}
}

// EnoughTraffic is the gate deciding whether a digest is worth sending:
// direct activity (PMs or hot conversations) on its own, or community growth
// (new streams AND new users together).
func EnoughTraffic(privateMessages int, hotConversations int, newStreams int, newUsers int) bool {
	if privateMessages > 0 || hotConversations > 0 {
		return true
	}
	return newStreams > 0 && newUsers > 0
}

// SortMessages orders a merged multi-stream window by timestamp, breaking ties
// on message ID, so grouping insertion order is reproducible.
func SortMessages(messages []domain.StreamMessage) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].At.Equal(messages[j].At) {
			return messages[i].ID.String() < messages[j].ID.String()
		}
		return messages[i].At.Before(messages[j].At)
	})
}
