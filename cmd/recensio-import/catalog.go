package main

import (
	"strconv"
	"strings"

	"github.com/emzola/recensio/data"
	"github.com/spf13/cobra"
)

// categoriesCmd imports categories from a CSV file with name,slug columns.
var categoriesCmd = &cobra.Command{
	Use:   "categories [file]",
	Short: "Import categories from a CSV file (columns: name,slug)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readCSVFile(args[0])
		if err != nil {
			return err
		}
		for _, record := range records {
			name, err := field(record, "name")
			if err != nil {
				return err
			}
			slug, err := field(record, "slug")
			if err != nil {
				return err
			}
			category := &data.Category{Name: name, Slug: slug}
			err = repo.GetOrCreateCategory(category)
			if err != nil {
				return err
			}
		}
		logger.PrintInfo("categories imported", map[string]string{
			"count": strconv.Itoa(len(records)),
		})
		return nil
	},
}

// genresCmd imports genres from a CSV file with name,slug columns.
var genresCmd = &cobra.Command{
	Use:   "genres [file]",
	Short: "Import genres from a CSV file (columns: name,slug)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readCSVFile(args[0])
		if err != nil {
			return err
		}
		for _, record := range records {
			name, err := field(record, "name")
			if err != nil {
				return err
			}
			slug, err := field(record, "slug")
			if err != nil {
				return err
			}
			genre := &data.Genre{Name: name, Slug: slug}
			err = repo.GetOrCreateGenre(genre)
			if err != nil {
				return err
			}
		}
		logger.PrintInfo("genres imported", map[string]string{
			"count": strconv.Itoa(len(records)),
		})
		return nil
	},
}

// titlesCmd imports titles. Genre slugs are separated by semicolons inside
// the genres column. Referenced categories and genres are created on the fly.
var titlesCmd = &cobra.Command{
	Use:   "titles [file]",
	Short: "Import titles from a CSV file (columns: name,year,category,genres)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readCSVFile(args[0])
		if err != nil {
			return err
		}
		for _, record := range records {
			name, err := field(record, "name")
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
			title := &data.Title{Name: name, Year: int32(year)}
			if slug := record["category"]; slug != "" {
				category := &data.Category{Name: slug, Slug: slug}
				err = repo.GetOrCreateCategory(category)
				if err != nil {
					return err
				}
				title.Category = category
			}
			for _, slug := range strings.Split(record["genres"], ";") {
				slug = strings.TrimSpace(slug)
				if slug == "" {
					continue
				}
				genre := &data.Genre{Name: slug, Slug: slug}
				err = repo.GetOrCreateGenre(genre)
				if err != nil {
					return err
				}
				title.Genres = append(title.Genres, *genre)
			}
			err = repo.GetOrCreateTitle(title)
			if err != nil {
				return err
			}
		}
		logger.PrintInfo("titles imported", map[string]string{
			"count": strconv.Itoa(len(records)),
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(titlesCmd)
}
