package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendify/internal/attendance"
	"attendify/internal/config"
	"attendify/internal/queue"
	"attendify/internal/store"
)

const tallyTTL = 24 * time.Hour

// Worker consumes attendance events and keeps per-session live tallies in
// Redis so dashboards can poll a counter instead of the database.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var events queue.Queue
	if cfg.QueueBackend == "memory" {
		events = queue.NewInMemory(64)
	} else {
		events = queue.NewRedisQueue(redisClient.Client, "attendify:events")
	}

	messages, err := events.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for attendance events...")
	for msg := range messages {
		if msg.Type != queue.TypeAttendanceMarked {
			continue
		}

		var rec attendance.Record
		if err := json.Unmarshal(msg.Body, &rec); err != nil {
			log.Printf("bad event body: %v", err)
			continue
		}

		key := "attendify:tally:" + rec.Token
		count, err := redisClient.Client.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("tally incr failed for %s: %v", rec.Token, err)
			continue
		}
		_ = redisClient.Client.Expire(ctx, key, tallyTTL).Err()

		log.Printf("session %s: %d marked (latest %s / %s)", rec.Token, count, rec.Name, rec.DeviceID)
	}

	log.Println("worker stopped")
}
