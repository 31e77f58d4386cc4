package main

import (
	"digest-lab/auth"
	"digest-lab/domain"
	"digest-lab/errors"
	"digest-lab/repositories"
	goerrors "errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// seedConfig is the minimal slice of the daemon config this tool needs.
type seedConfig struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"/tmp/digest-lab/badger"`
	Realm          string `envconfig:"SEED_REALM" default:"acme"`
	Password       string `envconfig:"SEED_PASSWORD" default:"Str0ng&Secure!Pass"`
}

// Seeds a realm with users, streams, subscriptions and a week of traffic, so a
// fresh deployment has something to sweep and digest.
func main() {
	_ = godotenv.Load()
	var cfg seedConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	db, err := badger.Open(badger.DefaultOptions(cfg.BadgerFilepath).WithLogger(nil))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	fmt.Printf("🚀 Seeding realm %q into %s...\n", cfg.Realm, cfg.BadgerFilepath)

	users := repositories.NewUserRepository(db)
	streams := repositories.NewStreamRepository(db)
	subscriptions := repositories.NewSubscriptionRepository(db)
	messages := repositories.NewMessageRepository(db, slog.Default())
	activity := repositories.NewActivityRepository(db)

	now := time.Now().UTC()

	seedRealm(users, cfg.Realm)
	ids := seedUsers(users, cfg.Realm, cfg.Password, now)
	seedStreams(streams, subscriptions, ids, now)
	seedTraffic(messages, ids, now)
	seedActivity(activity, ids, now)

	fmt.Println("\n✅ Done! Start digestd (or run the inspect tool) against the same store.")
}

func seedRealm(users repositories.IUserRepository, name string) {
	err := users.CreateRealm(repositories.Realm{Name: name, DigestEnabled: true})
	if err != nil {
		log.Fatalf("❌ Realm: %v", err)
	}
	fmt.Printf("🏰 Realm created: %s\n", name)
}

// seedUsers creates three humans and a bot. Alice has been away for a week,
// Bob checked in an hour ago, Carol joined inside the digest window.
func seedUsers(users repositories.IUserRepository, realm, password string, now time.Time) map[string]string {
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("❌ Password hash: %v", err)
	}

	fixtures := []repositories.User{
		{Email: "alice@example.com", FullName: "Alice Martin", JoinedAt: now.AddDate(0, -6, 0)},
		{Email: "bob@example.com", FullName: "Bob Dupont", JoinedAt: now.AddDate(0, -3, 0)},
		{Email: "carol@example.com", FullName: "Carol Chen", JoinedAt: now.Add(-24 * time.Hour)},
		{Email: "reminder-bot@example.com", FullName: "Reminder Bot", IsBot: true, JoinedAt: now.AddDate(-1, 0, 0)},
	}

	ids := make(map[string]string, len(fixtures))
	for _, user := range fixtures {
		user.Realm = realm
		user.PasswordHash = hash
		user.DigestEnabled = true
		id, err := users.CreateUser(user)
		if err != nil {
			if goerrors.Is(err, errors.ErrUserAlreadyExists) {
				fmt.Printf("⏭️  User already seeded: %s\n", user.Email)
				continue
			}
			log.Fatalf("❌ User %s: %v", user.Email, err)
		}
		ids[user.Email] = id
		fmt.Printf("👤 User created: %s (%s)\n", user.FullName, user.Email)
	}
	return ids
}

func seedStreams(streams repositories.IStreamRepository, subscriptions repositories.ISubscriptionRepository,
	ids map[string]string, now time.Time) {
	fixtures := []domain.Stream{
		{ID: 1, Name: "engineering", Description: "Build things", CreatedAt: now.AddDate(0, -6, 0)},
		{ID: 2, Name: "random", Description: "Everything else", CreatedAt: now.AddDate(0, -6, 0)},
		{ID: 3, Name: "design", Description: "Pixels and flows", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: 4, Name: "founders", Description: "Invite only", InviteOnly: true, CreatedAt: now.Add(-48 * time.Hour)},
	}
	for _, stream := range fixtures {
		if err := streams.CreateStream(stream); err != nil {
			log.Fatalf("❌ Stream %s: %v", stream.Name, err)
		}
		fmt.Printf("📢 Stream created: #%s\n", stream.Name)
	}

	// Alice follows engineering and random, but muted random.
	subs := []domain.Subscription{
		{UserID: ids["alice@example.com"], StreamID: 1, InHomeView: true, Active: true},
		{UserID: ids["alice@example.com"], StreamID: 2, InHomeView: false, Active: true},
		{UserID: ids["bob@example.com"], StreamID: 1, InHomeView: true, Active: true},
		{UserID: ids["bob@example.com"], StreamID: 2, InHomeView: true, Active: true},
		{UserID: ids["carol@example.com"], StreamID: 1, InHomeView: true, Active: true},
	}
	for _, sub := range subs {
		if err := subscriptions.Upsert(sub); err != nil {
			log.Fatalf("❌ Subscription: %v", err)
		}
	}
	fmt.Printf("🔔 Subscriptions created: %d\n", len(subs))
}

// seedTraffic writes a busy topic, a quieter one and a couple of PMs for
// Alice, all inside the last few days.
func seedTraffic(messages repositories.IMessageRepository, ids map[string]string, now time.Time) {
	bob := ids["bob@example.com"]
	carol := ids["carol@example.com"]

	fixtures := []domain.StreamMessage{
		{StreamID: 1, Topic: "release planning", SenderID: bob, SenderName: "Bob Dupont",
			Content: "Shipping the digest feature on Friday", At: now.Add(-40 * time.Hour)},
		{StreamID: 1, Topic: "release planning", SenderID: carol, SenderName: "Carol Chen",
			Content: "Docs are ready for review", At: now.Add(-39 * time.Hour)},
		{StreamID: 1, Topic: "release planning", SenderID: bob, SenderName: "Bob Dupont",
			Content: "QA signed off this morning", At: now.Add(-20 * time.Hour)},
		{StreamID: 1, Topic: "incident review", SenderID: carol, SenderName: "Carol Chen",
			Content: "Postmortem draft is up", At: now.Add(-30 * time.Hour)},
		{StreamID: 2, Topic: "coffee", SenderID: bob, SenderName: "Bob Dupont",
			Content: "New machine on the third floor", At: now.Add(-10 * time.Hour)},
	}
	for _, msg := range fixtures {
		msg.ID = uuid.New()
		if err := messages.StoreStreamMessage(msg); err != nil {
			log.Fatalf("❌ Message: %v", err)
		}
	}

	pms := []domain.PrivateMessage{
		{RecipientID: ids["alice@example.com"], SenderID: bob, SenderName: "Bob Dupont",
			Content: "Ping me when you are back!", At: now.Add(-36 * time.Hour)},
		{RecipientID: ids["alice@example.com"], SenderID: carol, SenderName: "Carol Chen",
			Content: "Left a review comment for you", At: now.Add(-12 * time.Hour)},
	}
	for _, pm := range pms {
		pm.ID = uuid.New()
		if err := messages.StorePrivateMessage(pm); err != nil {
			log.Fatalf("❌ Private message: %v", err)
		}
	}
	fmt.Printf("💬 Messages created: %d stream, %d private\n", len(fixtures), len(pms))
}

func seedActivity(activity repositories.IActivityRepository, ids map[string]string, now time.Time) {
	// Alice is the digest candidate; Bob is active. Carol never visited.
	if err := activity.TouchVisit(ids["alice@example.com"], now.AddDate(0, 0, -7)); err != nil {
		log.Fatalf("❌ Activity: %v", err)
	}
	if err := activity.TouchVisit(ids["bob@example.com"], now.Add(-time.Hour)); err != nil {
		log.Fatalf("❌ Activity: %v", err)
	}
	fmt.Println("⏱️  Last visits recorded")
}
