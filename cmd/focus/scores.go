package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/platform/tui"
	"github.com/vovakirdan/focus-arcade/internal/registry"
	"github.com/vovakirdan/focus-arcade/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagPlayer      string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show run history",
	Long: `Display the best runs for a game, or a summary of every game.

Examples:
  focus scores
  focus scores aim
  focus scores mem --limit 20
  focus scores --player ana
  focus scores aim --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the history interactively")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Show the latest runs of one player")
}

func runScores(_ *cobra.Command, args []string) error {
	var info registry.GameInfo
	if len(args) == 1 {
		var ok bool
		info, ok = registry.Info(config.GameID(args[0]))
		if !ok {
			return fmt.Errorf("unknown game %q (run 'focus list' to see available games)", args[0])
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresTUI:
		w, h, sizeErr := term.GetSize(int(os.Stdout.Fd()))
		if sizeErr != nil {
			w, h = 80, 24
		}
		player := flagPlayer
		if player == "" {
			player = playerName()
		}
		return tui.RunHistory(tui.HistoryOptions{
			Store:  store,
			Player: player,
			Game:   info.ID,
			Width:  w,
			Height: h,
		})
	case flagPlayer != "":
		return printPlayer(store, flagPlayer)
	case info.ID == "":
		return printSummary(store)
	default:
		return printGame(store, info)
	}
}

func printGame(store *storage.Store, info registry.GameInfo) error {
	scores, err := store.TopScores(string(info.ID), flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'focus play %s' to record the first one!\n", info.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-12s  %-8d  %s\n",
			i+1, entry.Player, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(string(info.ID)); err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Avg: %.1f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	return nil
}

func printPlayer(store *storage.Store, player string) error {
	scores, err := store.RecentScores(player, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("Latest Runs - %s\n", player)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-8s  %s\n", "Game", "Score", "Date")
	fmt.Printf("  %-16s  %-8s  %s\n", "----", "-----", "----")
	for _, entry := range scores {
		title := entry.GameID
		if info, ok := registry.Info(config.GameID(entry.GameID)); ok {
			title = info.Title
		}
		fmt.Printf("  %-16s  %-8d  %s\n", title, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("cannot retrieve stats: %w", err)
	}

	fmt.Println("Run History")
	fmt.Println()
	fmt.Printf("  %-16s  %-6s  %-6s  %s\n", "Game", "Runs", "Best", "Avg")
	fmt.Printf("  %-16s  %-6s  %-6s  %s\n", "----", "----", "----", "---")
	for _, g := range registry.List() {
		stats := all[string(g.ID)]
		if stats == nil {
			fmt.Printf("  %-16s  %-6d  %-6s  %s\n", g.Title, 0, "-", "-")
			continue
		}
		fmt.Printf("  %-16s  %-6d  %-6d  %.1f\n", g.Title, stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	return nil
}
