package main

import (
	"digest-lab/repositories"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

// inspectConfig is the minimal slice of the daemon config this tool needs.
type inspectConfig struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"/tmp/digest-lab/badger"`
	Colours        bool   `envconfig:"INSPECT_COLOURS" default:"true"`
}

func main() {
	_ = godotenv.Load()
	var cfg inspectConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	dbPath := flag.String("db", cfg.BadgerFilepath, "Path to badger DB")
	// Default to the queue; archive entries live under "archive:"
	prefix := flag.String("prefix", "digest:", "Prefix to scan (digest:, archive:, user:, msg:, pm:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	header := fmt.Sprintf(" digest-lab inspector — %s (prefix %q) ", *dbPath, *prefix)
	if cfg.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "User ID", "Timestamp", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			// Secondary indexes hold no payload worth printing.
			if strings.HasPrefix(key, "userid:") {
				continue
			}

			err := item.Value(func(v []byte) error {
				table.Append(describe(key, v))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// describe builds one table row per entry, decoding the JSON payload that
// matches the key family.
func describe(key string, val []byte) []string {
	switch {
	case strings.HasPrefix(key, "digest:"):
		// Queue records store timestamps as UnixNano, not RFC 3339.
		var evt struct {
			UserID string `json:"user_id"`
			Cutoff int64  `json:"cutoff"`
			SentAt int64  `json:"sent_at"`
		}
		if err := json.Unmarshal(val, &evt); err == nil && evt.UserID != "" {
			state := "PENDING"
			detail := "-"
			if strings.HasPrefix(key, "digest:sent:") {
				state = "SENT"
				detail = "sent " + time.Unix(0, evt.SentAt).UTC().Format("2006-01-02 15:04")
			}
			cutoff := time.Unix(0, evt.Cutoff).UTC()
			return []string{key, state, evt.UserID, cutoff.Format("2006-01-02 15:04"), detail}
		}

	case strings.HasPrefix(key, "archive:"):
		var record repositories.DigestRecord
		if err := json.Unmarshal(val, &record); err == nil {
			return []string{key, "ARCHIVE", record.UserID,
				record.SentAt.Format("2006-01-02 15:04"), record.Subject}
		}

	case strings.HasPrefix(key, "user:"):
		var user repositories.User
		if err := json.Unmarshal(val, &user); err == nil {
			detail := fmt.Sprintf("%s realm=%s digest=%t", user.Email, user.Realm, user.DigestEnabled)
			return []string{key, "USER", user.ID, user.JoinedAt.Format("2006-01-02"), detail}
		}

	case strings.HasPrefix(key, "msg:"), strings.HasPrefix(key, "pm:"):
		var msg struct {
			SenderName string `json:"sender_name"`
			Content    string `json:"content"`
			At         int64  `json:"at"`
		}
		if err := json.Unmarshal(val, &msg); err == nil {
			content := msg.Content
			if len(content) > 60 {
				content = content[:60] + "…"
			}
			return []string{key, "MESSAGE", msg.SenderName,
				time.Unix(0, msg.At).Format("15:04:05"), content}
		}
	}

	return []string{key, "RAW", "-", "-", fmt.Sprintf("Size: %d bytes", len(val))}
}

func openDB(path string) (*badger.DB, error) {
	// BypassLockGuard allows opening while the daemon holds the lock.
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	return badger.Open(opts)
}
