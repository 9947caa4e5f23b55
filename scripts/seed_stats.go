// seed_stats.go — standalone script to seed quiz result counters via the gateway API.
//
// Usage:
//
//	go run scripts/seed_stats.go -api http://localhost:8700 -n 50
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"
)

type recordRequest struct {
	FighterSlug string `json:"fighterSlug"`
	FighterName string `json:"fighterName"`
}

// A skewed sample roster so the leaderboard looks lived-in.
var seedFighters = []struct {
	slug, name string
	weight     int
}{
	{"islam-makhachev", "Islam Makhachev", 8},
	{"jon-jones", "Jon Jones", 7},
	{"alex-pereira", "Alex Pereira", 7},
	{"max-holloway", "Max Holloway", 5},
	{"charles-oliveira", "Charles Oliveira", 5},
	{"sean-omalley", "Sean O'Malley", 4},
	{"ilia-topuria", "Ilia Topuria", 4},
	{"dustin-poirier", "Dustin Poirier", 3},
	{"zhang-weili", "Zhang Weili", 3},
	{"merab-dvalishvili", "Merab Dvalishvili", 2},
}

func pick(rng *rand.Rand) (string, string) {
	total := 0
	for _, f := range seedFighters {
		total += f.weight
	}
	r := rng.Intn(total)
	for _, f := range seedFighters {
		r -= f.weight
		if r < 0 {
			return f.slug, f.name
		}
	}
	last := seedFighters[len(seedFighters)-1]
	return last.slug, last.name
}

func main() {
	apiURL := flag.String("api", "http://localhost:8700", "gateway API base URL")
	origin := flag.String("origin", "http://localhost:5173", "Origin header (must be on the gateway allow-list)")
	count := flag.Int("n", 50, "number of results to record")
	flag.Parse()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	client := &http.Client{Timeout: 10 * time.Second}

	seeded := 0
	for i := 0; i < *count; i++ {
		slug, name := pick(rng)
		body, _ := json.Marshal(recordRequest{FighterSlug: slug, FighterName: name})

		req, err := http.NewRequest(http.MethodPost, *apiURL+"/api/stats/record", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", *origin)

		resp, err := client.Do(req)
		if err != nil {
			log.Fatalf("record failed: %v", err)
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			fmt.Printf("rate limited after %d results, backing off 60s\n", seeded)
			time.Sleep(60 * time.Second)
			i--
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			log.Fatalf("record returned %d", resp.StatusCode)
		}
		resp.Body.Close()
		seeded++
	}

	fmt.Printf("seeded %d quiz results\n", seeded)
}
