package services_test

import (
	"context"
	"digest-lab/auth"
	"digest-lab/digest"
	"digest-lab/domain"
	"digest-lab/email"
	"digest-lab/errors"
	"digest-lab/mocks"
	"digest-lab/repositories"
	"digest-lab/services"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type digestServiceMocks struct {
	users         *mocks.MockIUserRepository
	messages      *mocks.MockIMessageRepository
	streams       *mocks.MockIStreamRepository
	subscriptions *mocks.MockISubscriptionRepository
	activity      *mocks.MockIActivityRepository
	archive       *mocks.MockIDigestArchiveRepository
	sender        *mocks.MockSender
}

func newDigestService(t *testing.T) (*services.DigestService, digestServiceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := digestServiceMocks{
		users:         mocks.NewMockIUserRepository(ctrl),
		messages:      mocks.NewMockIMessageRepository(ctrl),
		streams:       mocks.NewMockIStreamRepository(ctrl),
		subscriptions: mocks.NewMockISubscriptionRepository(ctrl),
		activity:      mocks.NewMockIActivityRepository(ctrl),
		archive:       mocks.NewMockIDigestArchiveRepository(ctrl),
		sender:        mocks.NewMockSender(ctrl),
	}

	renderer, err := digest.NewRenderer()
	require.NoError(t, err)

	service := services.NewDigestService(
		slog.Default(),
		m.users, m.messages, m.streams, m.subscriptions, m.activity, m.archive,
		renderer,
		nil, // no redaction in these tests
		m.sender,
		"https://chat.example.com",
		5*24*time.Hour,
		2*24*time.Hour,
	)
	return service, m
}

func TestDigestService_EligibleEvents(t *testing.T) {
	req := require.New(t)
	service, m := newDigestService(t)

	now := time.Date(2026, 3, 1, 4, 30, 0, 0, time.UTC)

	users := []repositories.User{
		{ID: "idle", Realm: "acme", DigestEnabled: true},
		{ID: "bot", Realm: "acme", DigestEnabled: true, IsBot: true},
		{ID: "deactivated", Realm: "acme", DigestEnabled: true, SoftDeactivated: true},
		{ID: "opted-out", Realm: "acme", DigestEnabled: false},
		{ID: "active", Realm: "acme", DigestEnabled: true},
		{ID: "never-visited", Realm: "acme", DigestEnabled: true},
		{ID: "muted-realm", Realm: "quiet", DigestEnabled: true},
	}
	m.users.EXPECT().ListUsers().Return(users, nil)

	// Realm settings are cached per sweep: one lookup per distinct realm.
	m.users.EXPECT().GetRealm("acme").Return(repositories.Realm{Name: "acme", DigestEnabled: true}, nil).Times(1)
	m.users.EXPECT().GetRealm("quiet").Return(repositories.Realm{Name: "quiet", DigestEnabled: false}, nil).Times(1)

	m.activity.EXPECT().LastVisit("idle").Return(now.Add(-72*time.Hour), nil)
	m.activity.EXPECT().LastVisit("active").Return(now.Add(-time.Hour), nil)
	m.activity.EXPECT().LastVisit("never-visited").Return(time.Time{}, nil)

	events, err := service.EligibleEvents(now)
	req.NoError(err)
	req.Len(events, 2)
	req.Equal("idle", events[0].UserID)
	req.Equal("never-visited", events[1].UserID, "users without any visit count as inactive")
	for _, event := range events {
		req.True(event.Cutoff.Equal(now.Add(-5*24*time.Hour)), "cutoff is now minus the digest window")
	}
}

func TestDigestService_Compose_Suppressed(t *testing.T) {
	req := require.New(t)
	service, m := newDigestService(t)

	event := domain.DigestEvent{UserID: "user-1", Cutoff: time.Now().UTC()}

	// Opted out between sweep and delivery
	m.users.EXPECT().GetUserByID("user-1").
		Return(repositories.User{ID: "user-1", Realm: "acme", DigestEnabled: false}, nil)

	_, err := service.Compose(context.Background(), event)
	req.ErrorIs(err, errors.ErrDigestSuppressed)
}

func TestDigestService_Compose_RealmSuppressed(t *testing.T) {
	req := require.New(t)
	service, m := newDigestService(t)

	event := domain.DigestEvent{UserID: "user-1", Cutoff: time.Now().UTC()}

	m.users.EXPECT().GetUserByID("user-1").
		Return(repositories.User{ID: "user-1", Realm: "acme", DigestEnabled: true}, nil)
	m.users.EXPECT().GetRealm("acme").
		Return(repositories.Realm{Name: "acme", DigestEnabled: false}, nil)

	_, err := service.Compose(context.Background(), event)
	req.ErrorIs(err, errors.ErrDigestSuppressed)
}

func TestDigestService_Compose_NotEnoughTraffic(t *testing.T) {
	req := require.New(t)
	service, m := newDigestService(t)

	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	event := domain.DigestEvent{UserID: "user-1", Cutoff: cutoff}
	user := repositories.User{ID: "user-1", Realm: "acme", DigestEnabled: true}

	m.users.EXPECT().GetUserByID("user-1").Return(user, nil)
	m.users.EXPECT().GetRealm("acme").Return(repositories.Realm{Name: "acme", DigestEnabled: true}, nil)
	m.subscriptions.EXPECT().HomeViewStreamIDs("user-1").Return(nil, nil)
	m.messages.EXPECT().PrivateMessagesSince("user-1", cutoff).Return(nil, nil)
	// A new stream alone is below the gate: it also needs a new user.
	m.streams.EXPECT().StreamsCreatedSince(cutoff).
		Return([]domain.Stream{{ID: 1, Name: "fresh", CreatedAt: cutoff}}, nil)
	m.users.EXPECT().ListRealmUsers("acme").Return([]repositories.User{user}, nil)

	_, err := service.Compose(context.Background(), event)
	req.ErrorIs(err, errors.ErrNotEnoughTraffic)
}

func TestDigestService_Compose_Full(t *testing.T) {
	req := require.New(t)
	service, m := newDigestService(t)

	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	event := domain.DigestEvent{UserID: "user-1", Cutoff: cutoff}
	user := repositories.User{
		ID: "user-1", Email: "alice@example.com", FullName: "Alice",
		Realm: "acme", DigestEnabled: true,
	}

	m.users.EXPECT().GetUserByID("user-1").Return(user, nil)
	m.users.EXPECT().GetRealm("acme").Return(repositories.Realm{Name: "acme", DigestEnabled: true}, nil)

	m.subscriptions.EXPECT().HomeViewStreamIDs("user-1").Return([]int{7}, nil)
	m.messages.EXPECT().StreamMessagesSince(7, cutoff).Return([]domain.StreamMessage{
		{ID: uuid.New(), StreamID: 7, Topic: "release planning", SenderID: "bob",
			SenderName: "Bob", Content: "shipping friday", At: cutoff.Add(time.Hour)},
		{ID: uuid.New(), StreamID: 7, Topic: "release planning", SenderID: "carol",
			SenderName: "Carol", Content: "docs are ready", At: cutoff.Add(2 * time.Hour)},
	}, nil)
	m.streams.EXPECT().GetStream(7).Return(domain.Stream{ID: 7, Name: "engineering"}, nil)

	m.messages.EXPECT().PrivateMessagesSince("user-1", cutoff).Return([]domain.PrivateMessage{
		{ID: uuid.New(), RecipientID: "user-1", SenderID: "bob",
			SenderName: "Bob", Content: "ping me when back", At: cutoff.Add(time.Hour)},
	}, nil)

	// Invite-only streams never show up in the digest.
	m.streams.EXPECT().StreamsCreatedSince(cutoff).Return([]domain.Stream{
		{ID: 8, Name: "design", CreatedAt: cutoff.Add(time.Hour)},
		{ID: 9, Name: "secret", InviteOnly: true, CreatedAt: cutoff.Add(time.Hour)},
	}, nil)

	m.users.EXPECT().ListRealmUsers("acme").Return([]repositories.User{
		user,
		{ID: "newbie", FullName: "Newbie", Realm: "acme", JoinedAt: cutoff.Add(time.Hour)},
		{ID: "veteran", FullName: "Veteran", Realm: "acme", JoinedAt: cutoff.Add(-time.Hour)},
	}, nil)

	composed, err := service.Compose(context.Background(), event)
	req.NoError(err)

	req.Equal("user-1", composed.UserID)
	req.Equal("alice@example.com", composed.To)
	req.Equal("While you were away - acme", composed.Subject)
	req.NotEmpty(composed.Body)

	req.Equal(1, composed.Context.UnreadPMCount)
	req.Len(composed.Context.HotConversations, 1)
	req.Equal("engineering", composed.Context.HotConversations[0].StreamName)
	req.Equal("release planning", composed.Context.HotConversations[0].Topic)
	req.Len(composed.Context.NewStreams, 1)
	req.Equal("design", composed.Context.NewStreams[0].Name)
	req.Equal([]string{"Newbie"}, composed.Context.NewUsers, "the recipient and older members are excluded")
	req.Equal(5, composed.Context.PeriodDays)
	req.Contains(composed.Context.UnsubscribeURL, "https://chat.example.com/v1/unsubscribe?token=")
}

func TestDigestService_Deliver(t *testing.T) {
	req := require.New(t)
	service, m := newDigestService(t)

	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	event := domain.DigestEvent{UserID: "user-1", Cutoff: cutoff}
	expectComposable(m, cutoff)

	var sent email.Email
	m.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e email.Email) error {
			sent = e
			return nil
		})
	m.archive.EXPECT().Store(gomock.Any()).
		DoAndReturn(func(record repositories.DigestRecord) error {
			req.Equal("user-1", record.UserID)
			req.NotEmpty(record.Body)
			return nil
		})

	req.NoError(service.Deliver(context.Background(), event))
	req.Equal("alice@example.com", sent.To)
	req.Equal("While you were away - acme", sent.Subject)
}

func TestDigestService_Deliver_SendFailure(t *testing.T) {
	req := require.New(t)
	service, m := newDigestService(t)

	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expectComposable(m, cutoff)

	m.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(fmt.Errorf("smtp: connection refused"))
	// Nothing must be archived when the send fails.
	m.archive.EXPECT().Store(gomock.Any()).Times(0)

	err := service.Deliver(context.Background(), domain.DigestEvent{UserID: "user-1", Cutoff: cutoff})
	req.ErrorContains(err, "digest delivery failed")
}

func TestDigestService_Deliver_ArchiveFailureIsNotFatal(t *testing.T) {
	req := require.New(t)
	service, m := newDigestService(t)

	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expectComposable(m, cutoff)

	m.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	m.archive.EXPECT().Store(gomock.Any()).Return(fmt.Errorf("disk full"))

	// The email already left, so the delivery still counts.
	req.NoError(service.Deliver(context.Background(), domain.DigestEvent{UserID: "user-1", Cutoff: cutoff}))
}

func TestDigestService_Unsubscribe(t *testing.T) {
	req := require.New(t)
	service, m := newDigestService(t)

	token, err := auth.GenerateUnsubscribeToken("user-1")
	req.NoError(err)

	m.users.EXPECT().SetDigestEnabled("user-1", false).Return(nil)

	userID, err := service.Unsubscribe(token)
	req.NoError(err)
	req.Equal("user-1", userID)
}

func TestDigestService_Unsubscribe_BadToken(t *testing.T) {
	req := require.New(t)
	service, m := newDigestService(t)

	m.users.EXPECT().SetDigestEnabled(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Unsubscribe("not-a-token")
	req.Error(err)
}

// expectComposable wires the minimal happy path for Compose: one unread PM,
// nothing else in the window.
func expectComposable(m digestServiceMocks, cutoff time.Time) {
	user := repositories.User{
		ID: "user-1", Email: "alice@example.com", FullName: "Alice",
		Realm: "acme", DigestEnabled: true,
	}
	m.users.EXPECT().GetUserByID("user-1").Return(user, nil)
	m.users.EXPECT().GetRealm("acme").Return(repositories.Realm{Name: "acme", DigestEnabled: true}, nil)
	m.subscriptions.EXPECT().HomeViewStreamIDs("user-1").Return(nil, nil)
	m.messages.EXPECT().PrivateMessagesSince("user-1", cutoff).Return([]domain.PrivateMessage{
		{ID: uuid.New(), RecipientID: "user-1", SenderID: "bob",
			SenderName: "Bob", Content: "hello", At: cutoff.Add(time.Minute)},
	}, nil)
	m.streams.EXPECT().StreamsCreatedSince(cutoff).Return(nil, nil)
	m.users.EXPECT().ListRealmUsers("acme").Return([]repositories.User{user}, nil)
}
