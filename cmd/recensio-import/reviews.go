package main

import (
	"errors"
	"strconv"

	"github.com/emzola/recensio/data"
	"github.com/emzola/recensio/repository"
	"github.com/spf13/cobra"
)

// reviewsCmd imports reviews. Titles are matched by (name, year) and authors
// by username; both must already exist. A row whose author already reviewed
// the title is skipped, keeping the one-review-per-user rule intact.
var reviewsCmd = &cobra.Command{
	Use:   "reviews [file]",
	Short: "Import reviews from a CSV file (columns: title,year,username,text,score)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readCSVFile(args[0])
		if err != nil {
			return err
		}
		imported, skipped := 0, 0
		for _, record := range records {
			name, err := field(record, "title")
			if err != nil {
				return err
			}
			yearStr, err := field(record, "year")
			if err != nil {
				return err
			}
			year, err := strconv.Atoi(yearStr)
			if err != nil {
				return err
			}
			username, err := field(record, "username")
			if err != nil {
				return err
			}
			scoreStr, err := field(record, "score")
			if err != nil {
				return err
			}
			score, err := strconv.Atoi(scoreStr)
			if err != nil {
				return err
			}
			title := &data.Title{Name: name, Year: int32(year)}
			err = repo.GetOrCreateTitle(title)
			if err != nil {
				return err
			}
			user, err := repo.GetUserByUsername(username)
			if err != nil {
				return err
			}
			review := &data.Review{
				TitleID: title.ID,
				UserID:  user.ID,
				Text:    record["text"],
				Score:   int32(score),
			}
			err = repo.CreateReview(review)
			if err != nil {
				if errors.Is(err, repository.ErrDuplicateRecord) {
					skipped++
					continue
				}
				return err
			}
			imported++
		}
		logger.PrintInfo("reviews imported", map[string]string{
			"imported": strconv.Itoa(imported),
			"skipped":  strconv.Itoa(skipped),
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reviewsCmd)
}
