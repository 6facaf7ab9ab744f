package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rutsatz/algamoney-api/internal/api/app"
	"github.com/rutsatz/algamoney-api/internal/api/service"
	"github.com/rutsatz/algamoney-api/pkg/cryptox"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "algamoney",
		Short:         "Algamoney ledger API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envFile, cmd.Flags().Changed("env-file"))
		},
		// serve is the default
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newUserCmd())
	return root
}

// loadEnvFile loads the dotenv file when present. A missing default file is
// fine; a missing file passed explicitly is not. Variables already set in
// the environment win.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	log.Printf("dotenv: loaded %s", path)
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API and ops listeners",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.LoadConfig()
			db, err := app.OpenDatabase(cfg, app.NewLogger(cfg))
			if err != nil {
				return err
			}
			return db.Close()
		},
	}
}

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var (
		name        string
		password    string
		authorities []string
	)
	addCmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create a user; a random password is printed when --password is omitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.LoadConfig()
			if err := app.InitPepper(cfg); err != nil {
				return fmt.Errorf("failed to load pepper: %w", err)
			}

			db, err := app.OpenDatabase(cfg, app.NewLogger(cfg))
			if err != nil {
				return err
			}
			defer db.Close()

			generated := password == ""
			if generated {
				if password, err = cryptox.GeneratePassword(); err != nil {
					return err
				}
			}

			users := &service.UserService{Store: db}
			u, err := users.CreateUser(context.Background(), args[0], name, password, authorities)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", u.Username, u.ID)
			if generated {
				fmt.Fprintf(cmd.OutOrStdout(), "password: %s\n", password)
			}
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the username)")
	addCmd.Flags().StringVar(&password, "password", "", "Password (generated when empty)")
	addCmd.Flags().StringSliceVar(&authorities, "authority", service.CategoryAuthorities,
		"Authority to grant; repeat for several")

	userCmd.AddCommand(addCmd)
	return userCmd
}
