package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	"chat-sync/domain"
	"chat-sync/projection"
	"chat-sync/repositories"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	PostgresDSN string `env:"POSTGRES_DSN,required=true"`
	LogLevel    string `env:"LOG_LEVEL,default=INFO"`
}

// Read-only history inspection: prints the stored timeline of one
// conversation or group the way the mapper would render it.
func main() {
	conversationID := flag.String("conversation", "", "conversation id to inspect")
	groupID := flag.String("group", "", "group id to inspect")
	selfID := flag.String("self", "", "user id used to mark messages as mine")
	flag.Parse()

	if (*conversationID == "") == (*groupID == "") {
		log.Fatal("exactly one of -conversation or -group is required")
	}

	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	db, err := sql.Open("postgres", config.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	target := domain.ConversationTarget(*conversationID)
	if *groupID != "" {
		target = domain.GroupChatTarget(*groupID)
	}

	rows, err := repositories.NewMessageRepository(db, logger).FetchHistory(context.Background(), target)
	if err != nil {
		log.Fatalf("History fetch failed: %v", err)
	}

	color.Cyanln("History for", target.ID)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"At", "Sender", "Kind", "Content", "Duration"})
	for _, msg := range projection.MapRows(rows, *selfID) {
		kind := "text"
		body := msg.Content
		if msg.Body == domain.VoiceBody {
			kind = "voice"
			body = msg.FileURL
		}
		sender := msg.SenderID
		if msg.Mine {
			sender = color.Green.Sprint(sender)
		}
		table.Append([]string{
			msg.CreatedAt.Format("2006-01-02 15:04:05"),
			sender,
			kind,
			body,
			msg.Duration,
		})
	}
	table.Render()
}
