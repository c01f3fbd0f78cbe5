package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	v1 "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker/v1"
	"github.com/segmentio/kafka-go"
)

func main() {
	var (
		brokers       = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic         = flag.String("topic", "tickers.synced", "Kafka topic name")
		group         = flag.String("group", "", "Consumer group id (optional, reads every partition from the start offset if empty)")
		fromBeginning = flag.Bool("from-beginning", false, "Start from the oldest retained event instead of the newest")
		maxWait       = flag.Duration("max-wait", time.Second, "Maximum time to wait for new events per fetch")
	)
	flag.Parse()

	startOffset := kafka.LastOffset
	if *fromBeginning {
		startOffset = kafka.FirstOffset
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     strings.Split(*brokers, ","),
		Topic:       *topic,
		GroupID:     *group,
		StartOffset: startOffset,
		MaxWait:     *maxWait,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Watching sync events on broker: %s, topic: %s", *brokers, *topic)

	received := 0
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			log.Fatalf("Failed to read event: %v", err)
		}

		var event v1.SyncEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("Skipping malformed event at offset %d: %v", msg.Offset, err)
			continue
		}

		received++
		log.Printf("Sync %d at %s: stored %d tickers [%s]",
			received,
			event.SyncedAt.Format(time.RFC3339),
			event.Stored,
			strings.Join(event.Symbols, ", "),
		)
	}

	log.Printf("Received %d sync events", received)
}
