// Command prestigio is the command-line surface for the points store.
// It mutates the same persisted store as the admin server.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gravadigital/prestigio-api/internal/auth"
	"github.com/gravadigital/prestigio-api/internal/config"
	"github.com/gravadigital/prestigio-api/internal/domain/event"
	"github.com/gravadigital/prestigio-api/internal/logger"
	"github.com/gravadigital/prestigio-api/internal/services"
	"github.com/gravadigital/prestigio-api/internal/storage"
	"github.com/gravadigital/prestigio-api/internal/storage/document"
	"github.com/gravadigital/prestigio-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize("warn")
	log := logger.CLI()

	dataFile := flag.String("data", cfg.Storage.DataFile, "Path to the local data file")
	flag.Parse()
	cfg.Storage.DataFile = *dataFile

	args := flag.Args()
	if len(args) == 0 {
		showHelp()
		return
	}

	store, err := buildStore(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	service := services.NewPrestigeService(store)

	switch args[0] {
	case "add":
		if len(args) < 4 {
			fail(`Usage: prestigio add <id> <points> "<reason>"`)
		}
		points, err := strconv.Atoi(args[2])
		if err != nil {
			fail("points must be an integer")
		}
		runAdd(service, args[1], points, strings.Join(args[3:], " "))

	case "add-person":
		if len(args) < 3 {
			fail(`Usage: prestigio add-person <id> "<name>" ["<emoji>"]`)
		}
		avatar := ""
		if len(args) > 3 {
			avatar = args[3]
		}
		runAddPerson(service, args[1], args[2], avatar)

	case "list":
		runList(service)

	case "pending":
		runPending(service)

	case "vouch":
		if len(args) < 4 {
			fail("Usage: prestigio vouch <event-id> <fingerprint> <approve|deny>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fail("event-id must be an integer")
		}
		runVouch(service, id, args[2], args[3])

	case "hash-password":
		if len(args) < 2 {
			fail("Usage: prestigio hash-password <password>")
		}
		hash, err := auth.HashPassword(args[1])
		if err != nil {
			fail(err.Error())
		}
		fmt.Println(hash)

	default:
		showHelp()
	}
}

func buildStore(cfg *config.Config) (storage.Store, error) {
	storageType, err := storage.ValidateStorageType(cfg.Storage.Backend)
	if err != nil {
		return nil, err
	}

	if storageType == storage.StorageTypePostgres {
		db, err := postgres.Connect(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(db), nil
	}
	return document.New(cfg.Storage.DataFile), nil
}

func runAdd(service *services.PrestigeService, id string, points int, reason string) {
	created, err := service.RecordEvent(services.RecordEventRequest{
		PersonID:      id,
		Points:        points,
		Reason:        reason,
		AutoProvision: true,
	})
	if err != nil {
		fail(err.Error())
	}

	sign := ""
	if created.Points >= 0 {
		sign = "+"
	}
	fmt.Printf("✅ %s: %s%d prestige for %q\n", created.PersonID, sign, created.Points, created.Reason)
}

func runAddPerson(service *services.PrestigeService, id, name, avatar string) {
	p, err := service.RegisterPerson(id, name, avatar)
	if err != nil {
		fail(err.Error())
	}
	fmt.Printf("✅ Added person: %s %s (id: %s)\n", p.Name, p.Avatar, p.ID)
}

func runList(service *services.PrestigeService) {
	ranked, totals, err := service.Leaderboard()
	if err != nil {
		fail(err.Error())
	}

	fmt.Println("\n🏅 PRESTIGE LEADERBOARD 🏅")
	for _, entry := range ranked {
		sign := ""
		if entry.Score >= 0 {
			sign = "+"
		}
		fmt.Printf("#%d %s %-14s %7s  %s %s\n",
			entry.Rank, entry.Avatar, entry.Name,
			sign+strconv.Itoa(entry.Score), entry.Tier.Icon, entry.Tier.Name)
	}
	fmt.Printf("\n%d players, %d events, %d total prestige\n\n",
		totals.People, totals.Events, totals.TotalPrestige)
}

func runPending(service *services.PrestigeService) {
	pending, err := service.Pending()
	if err != nil {
		fail(err.Error())
	}

	if len(pending) == 0 {
		fmt.Println("No pending events.")
		return
	}

	for _, e := range pending {
		sign := ""
		if e.Points >= 0 {
			sign = "+"
		}
		fmt.Printf("[%d] %s %s%d %q (%d/%d vouches, %d denials)\n",
			e.ID, e.PersonID, sign, e.Points, e.Reason,
			len(e.Approvals), event.Quorum, len(e.Denials))
	}
}

func runVouch(service *services.PrestigeService, id int64, fingerprint, choice string) {
	result, err := service.Vouch(id, fingerprint, choice)
	if err != nil {
		fail(err.Error())
	}

	switch {
	case !result.Recorded:
		fmt.Println("Vote ignored (already voted, or this is your own proposal).")
	case result.Transitioned:
		fmt.Printf("Vote recorded, event is now %s.\n", result.Status)
	default:
		fmt.Println("Vote recorded, still pending.")
	}
}

func fail(message string) {
	fmt.Fprintln(os.Stderr, "❌ "+message)
	os.Exit(1)
}

func showHelp() {
	fmt.Print(`PRESTIGIO points CLI

COMMANDS:

  add <id> <points> "<reason>"
      Add points to a person (negative to deduct).
      Auto-creates the person if they don't exist.

  add-person <id> "<name>" ["<emoji>"]
      Register a person with a display name and avatar.

  list
      Show the current leaderboard.

  pending
      Show events still awaiting vouches.

  vouch <event-id> <fingerprint> <approve|deny>
      Cast a vouch vote on a pending event.

  hash-password <password>
      Print a bcrypt hash for ADMIN_PASSWORD_HASH.

EXAMPLES:
  prestigio add alice 500 "Aced the exam"
  prestigio add bob -200 "Forgot my birthday"
  prestigio add-person alice "Alice" "🐱"
  prestigio list
`)
}
