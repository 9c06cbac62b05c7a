package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/anirudhs/quizdrill/internal/quizfile"
)

var searchCmd = &cobra.Command{
	Use:   "search <quiz-file> <term>",
	Short: "Find questions whose text or answers mention a term",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveQuizPath(args[0])
		if err != nil {
			return err
		}
		qz, err := quizfile.Load(path)
		if err != nil {
			return err
		}
		term := strings.ToLower(args[1])

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		found := 0
		for i := range qz.Questions {
			q := &qz.Questions[i]
			if !questionMentions(q.Text, q.AllVariants(), term) {
				continue
			}
			found++
			fmt.Fprintf(w, "%s\t%s\n", q.ID, q.Prompt())
		}
		if found == 0 {
			fmt.Println("No matches.")
			return nil
		}
		return w.Flush()
	},
}

func questionMentions(texts, variants []string, term string) bool {
	for _, t := range texts {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	for _, v := range variants {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}
