package digest

import (
	"digest-lab/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func fullContext() Context {
	return Context{
		FullName:      "Jane Doe",
		Realm:         "acme",
		PeriodDays:    7,
		UnreadPMCount: 2,
		PMPreviews: []Preview{
			{SenderName: "Bob", Content: "Are you around?", At: baseTime},
			{SenderName: "Eve", Content: "Ping me when back", At: baseTime},
		},
		HotConversations: []Conversation{
			{
				StreamID:     1,
				StreamName:   "engineering",
				Topic:        "release planning",
				Participants: []string{"Alice", "Bob"},
				MessageCount: 5,
				Remainder:    3,
				Previews: []Preview{
					{SenderName: "Alice", Content: "Shipping friday"},
					{SenderName: "Bob", Content: "LGTM"},
				},
			},
		},
		NewStreams: []domain.Stream{
			{ID: 9, Name: "design", Description: "All things UI", CreatedAt: baseTime},
		},
		NewUsers:       []string{"Carol"},
		UnsubscribeURL: "https://example.com/v1/unsubscribe?token=abc",
	}
}

func TestRenderer_Render(t *testing.T) {
	req := require.New(t)
	renderer, err := NewRenderer()
	req.NoError(err)

	t.Run("should render every section when all are populated", func(t *testing.T) {
		body, err := renderer.Render(fullContext())
		req.NoError(err)

		req.Contains(body, "Hello Jane Doe")
		req.Contains(body, "last 7 days")
		req.Contains(body, "2 unread private messages")
		req.Contains(body, "#engineering &gt; release planning")
		req.Contains(body, "Alice, Bob")
		req.Contains(body, "+ 3 more messages")
		req.Contains(body, "#design")
		req.Contains(body, "Carol")
		req.Contains(body, "https://example.com/v1/unsubscribe?token=abc")
	})

	t.Run("should omit empty sections", func(t *testing.T) {
		ctx := Context{
			FullName:       "John",
			Realm:          "acme",
			PeriodDays:     1,
			UnsubscribeURL: "https://example.com/u",
		}

		body, err := renderer.Render(ctx)
		req.NoError(err)

		req.NotContains(body, "Private messages")
		req.NotContains(body, "Hot conversations")
		req.NotContains(body, "New streams")
		req.NotContains(body, "New members")
		req.Contains(body, "Unsubscribe with one click")
	})

	t.Run("should escape hostile message content", func(t *testing.T) {
		ctx := fullContext()
		ctx.PMPreviews[0].Content = "<script>alert(1)</script>"

		body, err := renderer.Render(ctx)
		req.NoError(err)
		req.NotContains(body, "<script>alert(1)</script>")
	})

	t.Run("should singularize the remainder line", func(t *testing.T) {
		ctx := fullContext()
		ctx.HotConversations[0].Remainder = 1

		body, err := renderer.Render(ctx)
		req.NoError(err)
		req.Contains(body, "+ 1 more message in this conversation")
	})
}

func TestRenderer_Subject(t *testing.T) {
	req := require.New(t)
	renderer, err := NewRenderer()
	req.NoError(err)

	req.Equal("While you were away - acme", renderer.Subject("acme"))
}
