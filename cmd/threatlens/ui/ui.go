package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/threatlens/threatlens-api/internal/config"
)

// Confirm asks a yes/no question and reports the answer
func Confirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// PrintTarget prints the database the command is about to touch.
func PrintTarget(cfg config.DatabaseConfig) {
	fmt.Println(titleStyle.Render("Target database"))
	fmt.Printf("  Driver:   %s\n", cfg.Driver)
	if cfg.Driver == config.DriverSQLite {
		fmt.Printf("  Path:     %s\n", cfg.Path)
	} else {
		fmt.Printf("  Host:     %s:%s\n", cfg.Host, cfg.Port)
		fmt.Printf("  Database: %s\n", cfg.DBName)
	}
	fmt.Println()
}

// PrintPrediction prints a predictor label.
func PrintPrediction(description, label string) {
	fmt.Println(subtleStyle.Render(description))
	fmt.Println(labelStyle.Render(label))
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Println(successStyle.Render(msg))
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Println(errorStyle.Render("Error: " + msg))
}
