// Command watan builds Watan boards and answers adjacency queries about them.
// Boards can be generated, read from layout files, saved to SQLite and served
// over HTTP.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Flag values. Defaults come from the environment.
var (
	dbPath   string
	logLevel string

	seed       int64
	style      string
	layoutPath string
	gameID     string
	save       bool
	writePath  string
	port       int

	rootCmd = &cobra.Command{
		Use:           "watan",
		Short:         "Build Watan boards and query their topology",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}

	newCmd = &cobra.Command{
		Use:   "new",
		Short: "Generate or read a board and print it",
		Args:  cobra.NoArgs,
		RunE:  runNew,
	}

	loadCmd = &cobra.Command{
		Use:   "load <game-id>",
		Short: "Load a saved game and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runLoad,
	}

	gamesCmd = &cobra.Command{
		Use:   "games",
		Short: "List saved games",
		Args:  cobra.NoArgs,
		RunE:  runGames,
	}

	adjCmd = &cobra.Command{
		Use:       "adj <criterion|goal> <n>",
		Short:     "Print the neighbours of a criterion or goal",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"criterion", "goal"},
		RunE:      runAdj,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve a board over the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("watan failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", envOrDefault("WATAN_DB", "data/watan.db"), "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOrDefault("WATAN_LOG_LEVEL", "info"), "debug, info, warn or error")

	// Board source flags shared by new, adj and serve.
	for _, c := range []*cobra.Command{newCmd, adjCmd, serveCmd} {
		c.Flags().Int64Var(&seed, "seed", 0, "generation seed (0 draws one)")
		c.Flags().StringVar(&style, "style", "random", "generation style: random or clustered")
		c.Flags().StringVar(&layoutPath, "layout", "", "read the board from a layout file (.txt or .yaml)")
	}
	for _, c := range []*cobra.Command{adjCmd, serveCmd} {
		c.Flags().StringVar(&gameID, "game", "", "use a saved game")
	}

	newCmd.Flags().BoolVar(&save, "save", false, "save the board as a new game")
	newCmd.Flags().StringVar(&writePath, "write", "", "write the layout to a file (.txt or .yaml)")
	serveCmd.Flags().IntVar(&port, "port", envIntOrDefault("WATAN_PORT", 8080), "HTTP port")

	rootCmd.AddCommand(newCmd, loadCmd, gamesCmd, adjCmd, serveCmd)
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
