package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/anirudhs/quizdrill/internal/quiz"
	"github.com/anirudhs/quizdrill/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history <quiz-file> <question-id>",
	Short: "Show every recorded attempt at one question",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionID := args[1]
		path, err := resolveQuizPath(args[0])
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		records, err := st.Log(quizName(path)).History(questionID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Printf("No attempts recorded for %q.\n", questionID)
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tSCORE\tTIME\tRESPONSE")
		for _, rec := range records {
			label := scoreLabel(rec)
			if rec.IsCorrection {
				label += " (corrected)"
			}
			fmt.Fprintf(w, "%s\t%s\t%.1fs\t%s\n",
				rec.Timestamp.Local().Format("2006-01-02 15:04"),
				label, rec.ElapsedSecs, responseText(rec))
		}
		return w.Flush()
	},
}

func scoreLabel(rec quiz.AttemptRecord) string {
	if rec.Ungraded {
		return "ungraded"
	}
	return fmt.Sprintf("%.0f%%", rec.Score*100)
}

func responseText(rec quiz.AttemptRecord) string {
	if len(rec.ResponseList) > 0 {
		out := rec.ResponseList[0]
		for _, line := range rec.ResponseList[1:] {
			out += "; " + line
		}
		return out
	}
	return rec.Response
}
