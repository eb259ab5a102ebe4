package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and write the config file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := app.config()
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), app.configPath())
				return nil
			},
		},
		newConfigInitCmd(app),
		newConfigSetCurrencyCmd(app),
	)

	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
			if err := config.Save(path, app.config()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigSetCurrencyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-currency CODE",
		Short: "Set the default display currency for new installs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.config()
			code := strings.ToUpper(strings.TrimSpace(args[0]))
			if _, ok := cfg.Budget.RateTable().RateFor(code); !ok {
				return fmt.Errorf("unknown currency %q (known: %s)", code, strings.Join(cfg.Budget.RateTable().Codes(), ", "))
			}
			cfg.Budget.Currency = code
			if err := config.Save(app.configPath(), cfg); err != nil {
				return err
			}
			if app.Config != nil {
				app.Config.Budget.Currency = code
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default currency: %s %s\n", code, formatter.Dim("("+app.configPath()+")"))
			return nil
		},
	}
}

func (a *App) config() config.Config {
	if a.Config != nil {
		return *a.Config
	}
	return config.DefaultConfig()
}

func (a *App) configPath() string {
	if a.ConfigPath != "" {
		return a.ConfigPath
	}
	return config.ConfigPath()
}
