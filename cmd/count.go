package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/anirudhs/quizdrill/internal/quiz"
	"github.com/anirudhs/quizdrill/internal/quizfile"
	"github.com/anirudhs/quizdrill/internal/scheduler"
)

var countCmd = &cobra.Command{
	Use:   "count <quiz-file>",
	Short: "Count the questions matching the given tag filters",
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

		if byTag, _ := cmd.Flags().GetBool("tags"); byTag {
			printTagCounts(cmd, qz.Questions)
			return nil
		}

		tags, _ := cmd.Flags().GetStringArray("tag")
		exclude, _ := cmd.Flags().GetStringArray("exclude")
		n := scheduler.CountMatching(qz.Questions, scheduler.Filters{
			Tags:    tags,
			Exclude: exclude,
		})
		fmt.Println(n)
		return nil
	},
}

func init() {
	countCmd.Flags().StringArray("tag", nil, "Only count questions carrying any of these tags (repeatable)")
	countCmd.Flags().StringArray("exclude", nil, "Skip questions carrying any of these tags (repeatable)")
	countCmd.Flags().Bool("tags", false, "List every tag with its question count instead")
}

func printTagCounts(cmd *cobra.Command, questions []quiz.Question) {
	counts := make(map[string]int)
	var order []string
	for i := range questions {
		for _, tag := range questions[i].Tags {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}
	sort.Strings(order)
	for _, tag := range order {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", counts[tag], tag)
	}
}
