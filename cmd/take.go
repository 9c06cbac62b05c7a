package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/anirudhs/quizdrill/internal/quizfile"
	"github.com/anirudhs/quizdrill/internal/scheduler"
	"github.com/anirudhs/quizdrill/internal/session"
	"github.com/anirudhs/quizdrill/internal/store"
	"github.com/anirudhs/quizdrill/internal/tui"
)

var takeCmd = &cobra.Command{
	Use:   "take <quiz-file>",
	Short: "Take a quiz session",
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
		log := st.Log(quizName(path))

		flip, _ := cmd.Flags().GetBool("flip")
		questions := qz.Questions
		if flip {
			for i := range questions {
				questions[i].Flip()
			}
		}

		filters := scheduler.Filters{}
		filters.Tags, _ = cmd.Flags().GetStringArray("tag")
		filters.Exclude, _ = cmd.Flags().GetStringArray("exclude")
		filters.Count, _ = cmd.Flags().GetInt("num")
		filters.InOrder, _ = cmd.Flags().GetBool("in-order")

		var seed *uint64
		if cmd.Flags().Changed("seed") {
			s, _ := cmd.Flags().GetUint64("seed")
			seed = &s
		}

		sched := scheduler.New(scheduler.DefaultScorerConfig())
		plan, err := sched.Schedule(questions, log, filters, seed, time.Now())
		if err != nil {
			return err
		}
		if len(plan.Questions) == 0 {
			fmt.Println("No questions matched the filters.")
			return nil
		}

		var recorder session.Recorder = log
		if noSave, _ := cmd.Flags().GetBool("no-save"); noSave {
			recorder = nil
		}
		runner := session.NewRunner(plan.Questions, recorder)
		if err := tui.Run(runner, qz.Instructions); err != nil {
			return err
		}

		printSummary(runner.BuildSummary())
		return nil
	},
}

func init() {
	takeCmd.Flags().IntP("num", "n", 0, "Maximum number of questions to ask (0 = all)")
	takeCmd.Flags().Uint64("seed", 0, "Seed for reproducible question selection and order")
	takeCmd.Flags().StringArray("tag", nil, "Only ask questions carrying any of these tags (repeatable)")
	takeCmd.Flags().StringArray("exclude", nil, "Skip questions carrying any of these tags (repeatable)")
	takeCmd.Flags().Bool("in-order", false, "Ask questions in quiz file order instead of by priority")
	takeCmd.Flags().Bool("flip", false, "Ask flashcards back-to-front")
	takeCmd.Flags().Bool("no-save", false, "Do not record results")
}

// printSummary echoes the session result after the TUI exits, so the
// figures survive the alternate screen teardown.
func printSummary(s *session.Summary) {
	if s.Answered == 0 {
		return
	}
	fmt.Printf("Answered %d: %d correct, %d partial, %d incorrect",
		s.Answered, s.Correct, s.Partial, s.Incorrect)
	if s.Ungraded > 0 {
		fmt.Printf(", %d ungraded", s.Ungraded)
	}
	fmt.Printf("  (score %.0f%%)\n", s.Score*100)
}
