package main

import (
	"fmt"
	"log"

	"github.com/nickdiaz444/pickleball-open-play2/config"
	"github.com/nickdiaz444/pickleball-open-play2/db"
	"github.com/nickdiaz444/pickleball-open-play2/rotation"
	"github.com/nickdiaz444/pickleball-open-play2/store"
)

// Demo roster for local development. Sixteen players fills three courts with
// four left waiting.
var demoPlayers = []string{
	"Alice", "Ben", "Carla", "Diego",
	"Elena", "Felix", "Grace", "Hugo",
	"Isla", "Jonas", "Kira", "Liam",
	"Mona", "Noah", "Olive", "Pete",
}

func main() {
	// Open storage directly, since we are in a cmd script.
	// Assuming running from root: go run ./cmd/seed
	cfg := config.Load()

	var (
		st  store.Store
		err error
	)
	switch cfg.StorageDriver {
	case "file":
		st = store.NewFileStore(cfg.DataDir)
	case "sqlite":
		st, err = db.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
	default:
		log.Fatalf("unknown storage driver %q", cfg.StorageDriver)
	}

	engine, err := rotation.NewEngine(st)
	if err != nil {
		log.Fatalf("failed to load session: %v", err)
	}

	fmt.Println("Seeding demo session...")

	existing := engine.Snapshot().Players
	for _, name := range demoPlayers {
		if containsName(existing, name) {
			continue
		}
		if _, err := engine.AddPlayer(name); err != nil {
			log.Fatalf("failed to add %s: %v", name, err)
		}
		fmt.Printf("Added player: %s\n", name)
	}

	if _, err := engine.ShuffleQueue(); err != nil {
		log.Fatalf("failed to shuffle queue: %v", err)
	}
	state, err := engine.AssignCourts()
	if err != nil {
		log.Fatalf("failed to assign courts: %v", err)
	}

	playing := 0
	for _, c := range state.Courts {
		if c.IsFull() {
			playing++
		}
	}
	fmt.Printf("Seeding complete: %d players, %d courts playing, %d waiting.\n",
		len(state.Players), playing, len(state.Queue))
}

func containsName(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
