package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anirudhs/quizdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizdrill",
	Short: "Spaced-repetition quizzes in the terminal",
	Long: "Quizdrill runs quizzes from plain text files, grades your answers,\n" +
		"and schedules questions so the ones you miss come back sooner.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDRILL_DB env var)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZDRILL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// quizName derives the log key for a quiz from its file path. Results for
// "french.quiz" and "./quizzes/french.quiz" land in the same log.
func quizName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resolveQuizPath locates a quiz file. A path that exists is used as given;
// otherwise the name is looked up under $QUIZDRILL_HOME, bare or with a
// .quiz extension.
func resolveQuizPath(arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}
	home := os.Getenv("QUIZDRILL_HOME")
	if home == "" {
		return "", fmt.Errorf("quiz file %q not found", arg)
	}
	for _, candidate := range []string{
		filepath.Join(home, arg),
		filepath.Join(home, arg+".quiz"),
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("quiz %q not found (also looked in %s)", arg, home)
}
