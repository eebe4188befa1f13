package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	mode      string
	amount    int
	autoStart bool
	emoji     string
	level     string
	newName   string
	outFile   string
)

func init() {
	startCmd.Flags().StringVar(&mode, "mode", "SOLO", "Match mode: SOLO or DUPLAS")
	scoreCmd.Flags().IntVar(&amount, "amount", 1, "Point delta: 1 or -1")
	finishCmd.Flags().BoolVar(&autoStart, "auto-start", true, "Start the next match right away")
	addPlayerCmd.Flags().StringVar(&emoji, "emoji", "", "Player emoji")
	addPlayerCmd.Flags().StringVar(&level, "level", "", "Player level")
	updatePlayerCmd.Flags().StringVar(&newName, "name", "", "New name")
	updatePlayerCmd.Flags().StringVar(&emoji, "emoji", "", "New emoji")
	updatePlayerCmd.Flags().StringVar(&level, "level", "", "New level")
	exportCmd.Flags().StringVar(&outFile, "out", "", "Write the backup to a file instead of stdout")

	playersCmd.AddCommand(addPlayerCmd, updatePlayerCmd, removePlayerCmd, togglePlayerCmd, playerStatsCmd)
	queueCmd.AddCommand(moveCmd, shuffleCmd, dequeueCmd)
	announceCmd.AddCommand(announceLeaderboardCmd, announceWeeklyCmd)

	rootCmd.AddCommand(healthCmd, stateCmd, startCmd, scoreCmd, resetMatchCmd, finishCmd)
	rootCmd.AddCommand(playersCmd, queueCmd, resetCmd, exportCmd, importCmd)
	rootCmd.AddCommand(leaderboardCmd, weeklyCmd, talliesCmd, announceCmd, metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the table state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/state", nil)
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a match with the front of the queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/match/start", url.Values{"mode": {strings.ToUpper(mode)}}, nil)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <A|B>",
	Short: "Award or retract a point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{"side": {strings.ToUpper(args[0])}, "amount": {fmt.Sprint(amount)}}
		return performPostRequest("/match/score", params, nil)
	},
}

var resetMatchCmd = &cobra.Command{
	Use:   "reset-match",
	Short: "Zero the score of the running match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/match/reset", nil, nil)
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Record the decided match and rotate the queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/match/finish", url.Values{"auto_start": {fmt.Sprint(autoStart)}}, nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Manage the roster",
}

var addPlayerCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a player to the roster and queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{"name": {args[0]}, "emoji": {emoji}, "level": {level}}
		return performPostRequest("/players", params, nil)
	},
}

var updatePlayerCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a player's name, emoji or level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{"id": {args[0]}, "name": {newName}, "emoji": {emoji}, "level": {level}}
		return performPostRequest("/players/update", params, nil)
	},
}

var removePlayerCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/players/remove", url.Values{"id": {args[0]}}, nil)
	},
}

var togglePlayerCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Bench or return a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/players/toggle", url.Values{"id": {args[0]}}, nil)
	},
}

var playerStatsCmd = &cobra.Command{
	Use:   "stats <id>",
	Short: "Show a player's card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players/stats", url.Values{"id": {args[0]}})
	},
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Manage the queue",
}

var moveCmd = &cobra.Command{
	Use:   "move <index> <up|down>",
	Short: "Move a queue entry one slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/queue/move", url.Values{"index": {args[0]}, "direction": {args[1]}}, nil)
	},
}

var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Shuffle the waiting players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/queue/shuffle", nil, nil)
	},
}

var dequeueCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Take a player out of the queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/queue/remove", url.Values{"id": {args[0]}}, nil)
	},
}

var resetCmd = &cobra.Command{
	Use:       "reset <all|stats>",
	Short:     "Wipe everything or only the statistics",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"all", "stats"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/reset", url.Values{"scope": {args[0]}}, nil)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a JSON backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outFile == "" {
			return performGetRequest("/export", nil)
		}
		body, err := doRequest(http.MethodGet, "/export", nil, nil)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outFile, body, 0o644); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}
		fmt.Printf("Backup written to %s\n", outFile)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}
		return performPostRequest("/import", nil, data)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the rankings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard", nil)
	},
}

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show the last seven days' leaders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/weekly", nil)
	},
}

var talliesCmd = &cobra.Command{
	Use:   "tallies",
	Short: "Show the lifetime counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tallies", nil)
	},
}

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Post summaries to the channel",
}

var announceLeaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Post the leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/announce/leaderboard", nil, nil)
	},
}

var announceWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Post the weekly leaders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/announce/weekly", nil, nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

// requestURL joins the endpoint with params and the global dry-run flag.
func requestURL(endpoint string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	for key, values := range params {
		if len(values) == 0 || values[0] == "" {
			params.Del(key)
		}
	}
	if dryRun {
		params.Set("dry_run", "true")
	}
	u := host + endpoint
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func doRequest(method, endpoint string, params url.Values, body []byte) ([]byte, error) {
	target := requestURL(endpoint, params)
	fmt.Fprintf(os.Stderr, "Making request to %s\n", target)

	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return respBody, fmt.Errorf("server answered %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return respBody, nil
}

func printResponse(method, endpoint string, params url.Values, body []byte) error {
	respBody, err := doRequest(method, endpoint, params, body)
	if err != nil {
		return err
	}
	fmt.Println(string(respBody))
	return nil
}

func performGetRequest(endpoint string, params url.Values) error {
	return printResponse(http.MethodGet, endpoint, params, nil)
}

func performPostRequest(endpoint string, params url.Values, body []byte) error {
	return printResponse(http.MethodPost, endpoint, params, body)
}
