package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/threatlens/threatlens-api/cmd/threatlens/ui"
	"github.com/threatlens/threatlens-api/internal/analysis"
	"github.com/threatlens/threatlens-api/internal/config"
	"github.com/threatlens/threatlens-api/internal/database"
	"github.com/threatlens/threatlens-api/internal/threat"
	"github.com/threatlens/threatlens-api/internal/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "threatlens",
		Short:         "Administer a threatlens API deployment",
		Long:          "Maintenance commands for the threatlens API: schema migration, threat import, predictor checks and account cleanup. Configuration is read from the same environment as the API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and indexes",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}

	importCmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a JSON array of threat records",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	importCmd.Flags().Int("batch", threat.DefaultImportBatch, "Records per insert statement")

	predictCmd := &cobra.Command{
		Use:   "predict <description>",
		Short: "Run the configured predictor once and print its label",
		Args:  cobra.ExactArgs(1),
		RunE:  runPredict,
	}

	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	deleteUserCmd := &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete the account registered under an email",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteUser,
	}
	deleteUserCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	userCmd.AddCommand(deleteUserCmd)
	rootCmd.AddCommand(migrateCmd, importCmd, predictCmd, userCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

func openDB(ctx context.Context) (*config.Config, *bun.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	ui.PrintTarget(cfg.Database)
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	ui.PrintSuccess("Schema is up to date.")
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	batch, _ := cmd.Flags().GetInt("batch")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	cfg, db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	ui.PrintTarget(cfg.Database)
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	n, err := threat.Import(ctx, threat.NewRepository(db), f, batch)
	if err != nil {
		return fmt.Errorf("imported %d threats before failing: %w", n, err)
	}

	ui.PrintSuccess(fmt.Sprintf("Imported %d threats.", n))
	return nil
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	label, err := analysis.NewProcessPredictor(cfg.Predictor).Predict(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	ui.PrintPrediction(args[0], label)
	return nil
}

func runDeleteUser(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	email := args[0]
	yes, _ := cmd.Flags().GetBool("yes")

	cfg, db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := user.NewRepository(db)
	n, err := repo.CountByEmail(ctx, email)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no account registered under %s", email)
	}

	if !yes {
		ui.PrintTarget(cfg.Database)
		ok, err := ui.Confirm("Delete "+email+"?", "The account is removed immediately. Issued tokens stay valid until they expire.")
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := repo.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	ui.PrintSuccess("Deleted " + email + ".")
	return nil
}
