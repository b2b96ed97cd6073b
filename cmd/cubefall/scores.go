package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubefall/internal/registry"
	"github.com/vovakirdan/cubefall/internal/storage"
)

var (
	flagScoresLimit   int
	flagScoresSession string
	flagScoresClear   bool
	flagScoresStats   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the best results for a game, cubefall when none is given.

Examples:
  cubefall scores
  cubefall scores cubefall_sandbox --limit 25
  cubefall scores --limit 0                   # every stored result
  cubefall scores --session <id>              # results from one session
  cubefall scores --stats                     # totals for every game
  cubefall scores cubefall_sandbox --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show (0 = all)")
	scoresCmd.Flags().StringVar(&flagScoresSession, "session", "", "Only show results from this session ID")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every stored result for the game")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show aggregate statistics for all games")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := defaultGame
	if len(args) > 0 {
		gameID = args[0]
	}

	info, ok := registry.Info(gameID)
	if !ok && !flagScoresStats {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'cubefall list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresStats:
		err = printStats(store)
	case flagScoresClear:
		var n int64
		n, err = store.ClearScores(gameID)
		if err == nil {
			fmt.Printf("Deleted %d results for %s.\n", n, info.Title)
		}
	default:
		err = printScores(store, info)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printScores(store *storage.Store, info registry.GameInfo) error {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	switch {
	case flagScoresSession != "":
		id, parseErr := uuid.Parse(flagScoresSession)
		if parseErr != nil {
			return fmt.Errorf("invalid session ID: %w", parseErr)
		}
		scores, err = store.SessionScores(id)
	case flagScoresLimit <= 0:
		scores, err = store.AllScores(info.ID)
	default:
		scores, err = store.TopScores(info.ID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'cubefall play %s' to set the first high score!\n", info.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-4s  %-6s  %-7s  %-6s  %s\n", "Rank", "Score", "Edge", "Pieces", "Cleared", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-4s  %-6s  %-7s  %-6s  %s\n", "----", "-----", "----", "------", "-------", "----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-4d  %-6d  %-7d  %-6s  %s\n",
			i+1, e.Score, e.MinEdge, e.Pieces, e.Cleared,
			e.Duration.Round(time.Second), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if highScore, err := store.HighScore(info.ID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", highScore)
	}
	return nil
}

func printStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-18s  %-6s  %-8s  %-8s  %-7s  %-8s  %s\n", "Game", "Games", "Best", "Average", "Pieces", "Cleared", "Last played")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-18s  %-6d  %-8d  %-8.0f  %-7d  %-8d  %s\n",
			id, st.GamesCount, st.HighScore, st.AvgScore, st.TotalPieces, st.TotalCleared,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
