package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/anirudhs/quizdrill/internal/quizfile"
	"github.com/anirudhs/quizdrill/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results <quiz-file>",
	Short: "Show aggregate scores per question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveQuizPath(args[0])
		if err != nil {
			return err
		}
		qz, err := quizfile.Load(path)
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

		records, err := st.Log(quizName(path)).All()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No results recorded yet.")
			return nil
		}

		type agg struct {
			id       string
			attempts int
			total    float64
			graded   int
		}
		byID := make(map[string]*agg)
		var order []string
		for _, rec := range records {
			a := byID[rec.QuestionID]
			if a == nil {
				a = &agg{id: rec.QuestionID}
				byID[rec.QuestionID] = a
				order = append(order, rec.QuestionID)
			}
			a.attempts++
			if !rec.Ungraded {
				a.graded++
				a.total += rec.Score
			}
		}

		// Best average first; ties by id keep the output stable.
		sort.SliceStable(order, func(i, j int) bool {
			ai, aj := byID[order[i]], byID[order[j]]
			mi, mj := mean(ai.total, ai.graded), mean(aj.total, aj.graded)
			if mi != mj {
				return mi > mj
			}
			return ai.id < aj.id
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SCORE\tATTEMPTS\tID\tQUESTION")
		for _, id := range order {
			a := byID[id]
			label := "ungraded"
			if a.graded > 0 {
				label = fmt.Sprintf("%.0f%%", mean(a.total, a.graded)*100)
			}
			text := ""
			if q := qz.Find(id); q != nil {
				text = q.Prompt()
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", label, a.attempts, id, text)
		}
		return w.Flush()
	},
}

func mean(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
