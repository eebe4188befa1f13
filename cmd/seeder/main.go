package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rei-da-mesa/internal/config"
	"github.com/mauv0809/rei-da-mesa/internal/database"
	"github.com/mauv0809/rei-da-mesa/internal/snapshot"
	"github.com/mauv0809/rei-da-mesa/internal/table"
	"github.com/spf13/cobra"
)

var (
	force   bool
	matches int
)

var defaultPlayers = []struct {
	name  string
	emoji string
	level table.Level
}{
	{"Caique", "🏓", table.LevelIntermediate},
	{"Lucas", "🔥", table.LevelBeginner},
	{"Emanuel", "⚡", table.LevelIntermediate},
	{"Rian", "🦖", table.LevelAdvanced},
	{"Gustavo", "🦁", table.LevelIntermediate},
	{"Jorge", "🦍", table.LevelBeginner},
	{"Ricardo", "🦊", table.LevelPro},
}

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Seed the table with the default roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return seed(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing table")
	rootCmd.Flags().IntVar(&matches, "matches", 0, "Number of random matches to play after seeding")
}

// defaultState builds the roster p1..p7, all active and queued in order.
func defaultState() table.State {
	s := table.NewState()
	for i, p := range defaultPlayers {
		id := fmt.Sprintf("p%d", i+1)
		s.Players[id] = table.NewPlayer(id, p.name, p.emoji, p.level)
		s.Queue = append(s.Queue, id)
	}
	return s
}

// playRandom plays n matches with random modes and points.
func playRandom(engine *table.Engine, s table.State, n int, rng *rand.Rand) table.State {
	for i := 0; i < n; i++ {
		mode := table.ModeSolo
		if rng.Intn(2) == 0 {
			mode = table.ModeDuplas
		}
		res := engine.StartMatch(s, mode)
		if !res.Changed {
			res = engine.StartMatch(s, table.ModeSolo)
		}
		if !res.Changed {
			log.Warn("Not enough players queued to keep playing", "played", i)
			return s
		}
		s = res.State
		for !s.ActiveMatch.Decided() {
			side := table.SideA
			if rng.Intn(2) == 0 {
				side = table.SideB
			}
			s = engine.UpdateScore(s, side, 1).State
		}
		s = engine.FinishMatch(s, false).State
	}
	return s
}

func seed(ctx context.Context) error {
	log.Info("Starting database seeder...")
	cfg := config.Load()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer teardown()

	store := snapshot.New(db)
	existing, version, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if existing != nil && !force {
		log.Warn("Table already seeded, use --force to overwrite", "version", version, "players", len(existing.Players))
		return nil
	}

	rng := rand.New(rand.NewSource(rand.Int63()))
	state := playRandom(table.NewEngine(table.WithRand(rng)), defaultState(), matches, rng)

	newVersion, err := store.Save(ctx, state, version)
	if err != nil {
		return fmt.Errorf("failed to save seeded state: %w", err)
	}
	log.Info("Seeded table", "version", newVersion, "players", len(state.Players), "history", len(state.History))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}
