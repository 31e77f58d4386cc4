package internal

import (
	"time"
)

type Config struct {
	BufferSize      int    `env:"BUFFER_SIZE,required=true"`
	NumberOfWorkers int    `env:"NUMBER_OF_WORKERS,required=true"`
	BadgerFilepath  string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath   string `env:"BLUGE_FILEPATH,required=true"`
	LogLevel        string `env:"LOG_LEVEL,required=true"`
	Host            string `env:"HOST,required=true"`
	Port            int    `env:"PORT,required=true"`

	DigestCron          string        `env:"DIGEST_CRON,required=true"`
	DigestWindow        time.Duration `env:"DIGEST_WINDOW,required=true"`
	InactivityThreshold time.Duration `env:"INACTIVITY_THRESHOLD,required=true"`
	UnsubscribeBaseURL  string        `env:"UNSUBSCRIBE_BASE_URL,required=true"`
	CensoredWordsPath   string        `env:"CENSORED_WORDS_PATH"`

	EmailSender  string `env:"EMAIL_SENDER,required=true"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	FromAddress  string `env:"FROM_ADDRESS,required=true"`
	FromName     string `env:"FROM_NAME,required=true"`

	MetricInterval       time.Duration `env:"METRIC_INTERVAL,required=true"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,required=true"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,required=true"`
	ArchivePageSize      *int          `env:"ARCHIVE_PAGE_SIZE"`
	ArchiveFlushEvery    int           `env:"ARCHIVE_FLUSH_EVERY,required=true"`
}
