package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/middleware"
)

func main() {
	addr := flag.String("addr", "http://127.0.0.1:8080", "API base URL")
	secret := flag.String("secret", "", "game server HMAC secret")
	player := flag.Int64("player", 1, "player id")
	mode := flag.String("mode", "blast", "test mode: blast | idem")
	n := flag.Int("n", 200, "number of concurrent requests")
	amt := flag.String("amt", "1", "gross win amount")
	flag.Parse()

	client := resty.New().
		SetBaseURL(*addr).
		SetTimeout(5 * time.Second).
		SetHeader("Content-Type", "application/json")

	settle := func(round string) (int, error) {
		body, err := json.Marshal(map[string]any{"playerId": *player, "amount": *amt, "gameRoundId": round})
		if err != nil {
			return 0, err
		}
		resp, err := client.R().
			SetHeader(middleware.HeaderSignature, middleware.Sign(*secret, body)).
			SetBody(body).
			Post("/api/games/win")
		if err != nil {
			return 0, err
		}
		return resp.StatusCode(), nil
	}

	var (
		wg       sync.WaitGroup
		applied  atomic.Int64
		replayed atomic.Int64
	)
	run := func(round func(i int) string) {
		for i := 0; i < *n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				code, err := settle(round(i))
				switch {
				case err != nil:
					log.Printf("err: %v", err)
				case code == http.StatusCreated:
					applied.Add(1)
				case code == http.StatusOK:
					replayed.Add(1)
				default:
					log.Printf("unexpected status %d", code)
				}
			}(i)
		}
		wg.Wait()
	}

	switch *mode {
	case "idem":
		// N requests for the same round: exactly one settles
		round := fmt.Sprintf("idem-%d", time.Now().UnixNano())
		log.Printf("Running IDEM test: n=%d round=%s", *n, round)
		run(func(int) string { return round })
		log.Printf("IDEMPOTENT test done. applied=%d (expected=1), replayed=%d", applied.Load(), replayed.Load())

	case "blast":
		// N distinct rounds: all settle, none lost
		log.Printf("Running BLAST test: n=%d", *n)
		prefix := time.Now().UnixNano()
		run(func(i int) string { return fmt.Sprintf("blast-%d-%d", prefix, i) })
		log.Printf("BLAST test done. applied=%d (expected=%d)", applied.Load(), *n)

	default:
		log.Fatalf("unknown mode: %s", *mode)
	}

	log.Println("Done.")
}
