//go:generate go run go.uber.org/mock/mockgen -source=digest_service.go -destination=../mocks/mock_digest_service.go -package=mocks
package services

import (
	"context"
	"digest-lab/auth"
	"digest-lab/digest"
	"digest-lab/domain"
	"digest-lab/email"
	"digest-lab/errors"
	"digest-lab/moderation"
	"digest-lab/repositories"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IDigestService interface {
	EligibleEvents(now time.Time) ([]domain.DigestEvent, error)
	Compose(ctx context.Context, event domain.DigestEvent) (Digest, error)
	Deliver(ctx context.Context, event domain.DigestEvent) error
	Unsubscribe(token string) (string, error)
}

// Digest is a fully composed, ready-to-send digest email.
type Digest struct {
	UserID  string
	To      string
	ToName  string
	Subject string
	Body    string
	Context digest.Context
}

type DigestService struct {
	log           *slog.Logger
	users         repositories.IUserRepository
	messages      repositories.IMessageRepository
	streams       repositories.IStreamRepository
	subscriptions repositories.ISubscriptionRepository
	activity      repositories.IActivityRepository
	archive       repositories.IDigestArchiveRepository
	renderer      *digest.Renderer
	redactor      *moderation.Redactor
	sender        email.Sender

	unsubscribeBaseURL  string
	digestWindow        time.Duration
	inactivityThreshold time.Duration
}

func NewDigestService(
	log *slog.Logger,
	users repositories.IUserRepository,
	messages repositories.IMessageRepository,
	streams repositories.IStreamRepository,
	subscriptions repositories.ISubscriptionRepository,
	activity repositories.IActivityRepository,
	archive repositories.IDigestArchiveRepository,
	renderer *digest.Renderer,
	redactor *moderation.Redactor,
	sender email.Sender,
	unsubscribeBaseURL string,
	digestWindow time.Duration,
	inactivityThreshold time.Duration,
) *DigestService {
	return &DigestService{
		log:                 log,
		users:               users,
		messages:            messages,
		streams:             streams,
		subscriptions:       subscriptions,
		activity:            activity,
		archive:             archive,
		renderer:            renderer,
		redactor:            redactor,
		sender:              sender,
		unsubscribeBaseURL:  unsubscribeBaseURL,
		digestWindow:        digestWindow,
		inactivityThreshold: inactivityThreshold,
	}
}

// EligibleEvents sweeps the user base and returns one digest event per user
// worth digesting: human, digest-enabled at both levels, not soft-deactivated,
// and inactive past the threshold. Users who never visited count as inactive.
func (s *DigestService) EligibleEvents(now time.Time) ([]domain.DigestEvent, error) {
	users, err := s.users.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("user sweep failed: %w", err)
	}

	cutoff := now.Add(-s.digestWindow)
	realmEnabled := make(map[string]bool)

	var events []domain.DigestEvent
	for _, user := range users {
		if user.IsBot || user.SoftDeactivated || !user.DigestEnabled {
			continue
		}
		enabled, ok := realmEnabled[user.Realm]
		if !ok {
			realm, err := s.users.GetRealm(user.Realm)
			if err != nil {
				s.log.Warn("skipping user of unknown realm", "user_id", user.ID, "realm", user.Realm)
				continue
			}
			enabled = realm.DigestEnabled
			realmEnabled[user.Realm] = enabled
		}
		if !enabled {
			continue
		}

		lastVisit, err := s.activity.LastVisit(user.ID)
		if err != nil {
			return nil, err
		}
		if !lastVisit.IsZero() && now.Sub(lastVisit) < s.inactivityThreshold {
			continue
		}

		events = append(events, domain.DigestEvent{UserID: user.ID, Cutoff: cutoff})
	}
	return events, nil
}

// Compose gathers the four digest sections for one event and renders them.
// It returns ErrDigestSuppressed for users excluded by settings and
// ErrNotEnoughTraffic when the gate decides there is nothing worth emailing.
func (s *DigestService) Compose(ctx context.Context, event domain.DigestEvent) (Digest, error) {
	if err := ctx.Err(); err != nil {
		return Digest{}, err
	}

	user, err := s.users.GetUserByID(event.UserID)
	if err != nil {
		return Digest{}, err
	}
	if user.SoftDeactivated || !user.DigestEnabled {
		return Digest{}, errors.ErrDigestSuppressed
	}
	realm, err := s.users.GetRealm(user.Realm)
	if err != nil {
		return Digest{}, err
	}
	if !realm.DigestEnabled {
		return Digest{}, errors.ErrDigestSuppressed
	}

	hot, err := s.gatherHotConversations(user.ID, event.Cutoff)
	if err != nil {
		return Digest{}, err
	}
	pms, err := s.messages.PrivateMessagesSince(user.ID, event.Cutoff)
	if err != nil {
		return Digest{}, err
	}
	newStreams, err := s.gatherNewStreams(event.Cutoff)
	if err != nil {
		return Digest{}, err
	}
	newUsers, err := s.gatherNewUsers(user, event.Cutoff)
	if err != nil {
		return Digest{}, err
	}

	if !digest.EnoughTraffic(len(pms), len(hot), len(newStreams), len(newUsers)) {
		return Digest{}, errors.ErrNotEnoughTraffic
	}

	unsubscribeToken, err := auth.GenerateUnsubscribeToken(user.ID)
	if err != nil {
		return Digest{}, errors.ErrTokenGeneration
	}

	templateCtx := digest.Context{
		FullName:         user.FullName,
		Realm:            user.Realm,
		PeriodDays:       int(s.digestWindow.Hours() / 24),
		UnreadPMCount:    len(pms),
		PMPreviews:       s.redactPMs(pms),
		HotConversations: s.redactConversations(hot),
		NewStreams:       newStreams,
		NewUsers: lo.Map(newUsers, func(u repositories.User, _ int) string {
			return u.FullName
		}),
		UnsubscribeURL: s.unsubscribeURL(unsubscribeToken),
	}

	body, err := s.renderer.Render(templateCtx)
	if err != nil {
		return Digest{}, err
	}

	return Digest{
		UserID:  user.ID,
		To:      user.Email,
		ToName:  user.FullName,
		Subject: s.renderer.Subject(user.Realm),
		Body:    body,
		Context: templateCtx,
	}, nil
}

// Deliver composes, sends and archives one digest.
func (s *DigestService) Deliver(ctx context.Context, event domain.DigestEvent) error {
	composed, err := s.Compose(ctx, event)
	if err != nil {
		return err
	}

	err = s.sender.Send(ctx, email.Email{
		To:       composed.To,
		ToName:   composed.ToName,
		Subject:  composed.Subject,
		HTMLBody: composed.Body,
	})
	if err != nil {
		return fmt.Errorf("digest delivery failed: %w", err)
	}

	record := repositories.DigestRecord{
		ID:      uuid.New(),
		UserID:  composed.UserID,
		Subject: composed.Subject,
		Body:    composed.Body,
		SentAt:  time.Now().UTC(),
	}
	if err := s.archive.Store(record); err != nil {
		// The email left the building; losing the archive entry is logged, not fatal.
		s.log.Error("failed to archive digest", "user_id", composed.UserID, "err", err)
	}
	return nil
}

// Unsubscribe disables the per-user digest switch from a one-click token.
func (s *DigestService) Unsubscribe(token string) (string, error) {
	userID, err := auth.ValidateUnsubscribeToken(token)
	if err != nil {
		return "", err
	}
	if err := s.users.SetDigestEnabled(userID, false); err != nil {
		return "", err
	}
	return userID, nil
}

func (s *DigestService) gatherHotConversations(userID string, cutoff time.Time) ([]digest.Conversation, error) {
	streamIDs, err := s.subscriptions.HomeViewStreamIDs(userID)
	if err != nil {
		return nil, err
	}

	var window []domain.StreamMessage
	for _, streamID := range streamIDs {
		messages, err := s.messages.StreamMessagesSince(streamID, cutoff)
		if err != nil {
			return nil, err
		}
		window = append(window, messages...)
	}
	digest.SortMessages(window)

	conversations := digest.GatherHotConversations(window)
	for i := range conversations {
		stream, err := s.streams.GetStream(conversations[i].StreamID)
		if err != nil {
			return nil, err
		}
		conversations[i].StreamName = stream.Name
	}
	return conversations, nil
}

func (s *DigestService) gatherNewStreams(cutoff time.Time) ([]domain.Stream, error) {
	streams, err := s.streams.StreamsCreatedSince(cutoff)
	if err != nil {
		return nil, err
	}
	return lo.Filter(streams, func(stream domain.Stream, _ int) bool {
		return !stream.InviteOnly
	}), nil
}

func (s *DigestService) gatherNewUsers(self repositories.User, cutoff time.Time) ([]repositories.User, error) {
	members, err := s.users.ListRealmUsers(self.Realm)
	if err != nil {
		return nil, err
	}
	return lo.Filter(members, func(member repositories.User, _ int) bool {
		return !member.IsBot && member.ID != self.ID && !member.JoinedAt.Before(cutoff)
	}), nil
}

func (s *DigestService) redactConversations(conversations []digest.Conversation) []digest.Conversation {
	if s.redactor == nil {
		return conversations
	}
	for i := range conversations {
		for j := range conversations[i].Previews {
			conversations[i].Previews[j].Content = s.redactor.Redact(conversations[i].Previews[j].Content)
		}
	}
	return conversations
}

func (s *DigestService) redactPMs(pms []domain.PrivateMessage) []digest.Preview {
	previewCount := min(digest.MaxPreviews, len(pms))
	previews := make([]digest.Preview, 0, previewCount)
	for _, pm := range pms[:previewCount] {
		content := pm.Content
		if s.redactor != nil {
			content = s.redactor.Redact(content)
		}
		previews = append(previews, digest.Preview{
			SenderName: pm.SenderName,
			Content:    content,
			At:         pm.At,
		})
	}
	return previews
}

func (s *DigestService) unsubscribeURL(token string) string {
	return fmt.Sprintf("%s/v1/unsubscribe?token=%s", s.unsubscribeBaseURL, url.QueryEscape(token))
}
