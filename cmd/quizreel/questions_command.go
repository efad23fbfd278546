package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"quizreel/internal/questions"
)

func newQuestionsCommand(ctx *commandContext) *cobra.Command {
	var sourceFlag string

	cmd := &cobra.Command{
		Use:   "questions [source]",
		Short: "Load and preview a question list without generating anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			source := strings.TrimSpace(sourceFlag)
			if len(args) == 1 {
				source = strings.TrimSpace(args[0])
			}
			if source == "" {
				source, err = promptLine(cmd, "Question source (URL or file)")
				if err != nil {
					return err
				}
			}

			list, err := questions.NewSource(questions.WithLogger(logger)).Load(cmd.Context(), source)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(list))
			for i, q := range list {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					truncate(q.Question, 60),
					truncate(q.CorrectAnswer(), 30),
					strconv.Itoa(len(q.Answers)),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Question", "Correct Answer", "Options"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "%d questions, all valid\n", len(list))
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Question source URL or file path")
	return cmd
}

func truncate(value string, max int) string {
	value = strings.TrimSpace(value)
	if len(value) <= max {
		return value
	}
	if max <= 3 {
		return value[:max]
	}
	return value[:max-3] + "..."
}
