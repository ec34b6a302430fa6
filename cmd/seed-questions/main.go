package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/examdesk/examdesk-backend/internal/config"
	"github.com/examdesk/examdesk-backend/internal/database"
	"github.com/examdesk/examdesk-backend/internal/logger"
	"github.com/examdesk/examdesk-backend/internal/repository"
	"github.com/examdesk/examdesk-backend/internal/repository/memory"
	"github.com/examdesk/examdesk-backend/internal/service"
)

type seedQuestion struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Choices  []string `json:"choices"`
}

var defaultSeed = []seedQuestion{
	{"Is this a question?", "Yes", []string{"Yes", "No"}},
	{"Which planet is closest to the sun?", "Mercury", []string{"Mercury", "Venus", "Earth", "Mars"}},
	{"What is 7 x 6?", "42", []string{"36", "42", "48", "56"}},
	{"Is water wet?", "Yes", []string{"Yes", "No", "Maybe"}},
	{"Which gas do plants absorb?", "Carbon dioxide", []string{"Oxygen", "Nitrogen", "Carbon dioxide"}},
}

func main() {
	file := flag.String("file", "", "JSON file with [{question, answer, choices}] (defaults to a built-in set)")
	dryRun := flag.Bool("dry-run", false, "Reconcile against an in-memory store instead of PostgreSQL")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	seed := defaultSeed
	if *file != "" {
		raw, err := os.ReadFile(*file)
		if err != nil {
			log.Fatal().Err(err).Str("file", *file).Msg("Failed to read seed file")
		}
		if err := json.Unmarshal(raw, &seed); err != nil {
			log.Fatal().Err(err).Str("file", *file).Msg("Failed to parse seed file")
		}
	}

	var (
		questions  service.QuestionStore
		choices    service.ChoiceStore
		transactor service.Transactor
	)
	if *dryRun {
		store := memory.New()
		questions, choices, transactor = store.Questions(), store.Choices(), store
	} else {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		questions = repository.NewQuestionRepository(pool)
		choices = repository.NewChoiceRepository(pool)
		transactor = repository.NewTxManager(pool)
	}

	questionService := service.NewQuestionService(questions, choices, transactor, service.KeepWhenAbsent, log)

	fmt.Printf("=== Seeding %d Questions ===\n", len(seed))

	successCount := 0
	for i, sq := range seed {
		q, err := questionService.Create(ctx, sq.Question, sq.Answer, sq.Choices)
		if err != nil {
			fmt.Printf("Error creating question %d (%q): %v\n", i+1, sq.Question, err)
			continue
		}
		successCount++
		fmt.Printf("Created question %d: %q answer=%q choices=%v\n", q.ID, q.Text, q.Answer.Text, q.ChoiceTexts())
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d questions.\n", successCount, len(seed))
}
