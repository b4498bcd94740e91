package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manuscript-tools/refcheck/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit refcheck configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in ` + "`" + `~/.config/refcheck/config.yml` + "`" + `.

Keys: registry_paths (comma-separated), crossref_mailto, style,
cache_path, concurrency.

Examples:
  refcheck config set style ama
  refcheck config set registry_paths predatory.csv,bealls.csv`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if humanOutput {
		outputHuman("config: %s\n", config.Path())
		outputHuman("  registry_paths:  %s\n", strings.Join(cfg.RegistryPaths, ", "))
		outputHuman("  crossref_mailto: %s\n", cfg.CrossrefMailto)
		outputHuman("  style:           %s\n", cfg.Style)
		outputHuman("  cache_path:      %s\n", cfg.CachePath)
		outputHuman("  concurrency:     %d\n", cfg.Concurrency)
	} else {
		outputJSON(cfg)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	switch key {
	case "registry_paths":
		cfg.RegistryPaths = strings.Split(value, ",")
	case "crossref_mailto":
		cfg.CrossrefMailto = value
	case "style":
		cfg.Style = value
	case "cache_path":
		cfg.CachePath = value
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			exitWithError(ExitError, "concurrency must be a positive integer")
		}
		cfg.Concurrency = n
	default:
		exitWithError(ExitError, "unknown config key %q", key)
	}

	if err := config.Save(cfg); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		outputHuman("Set %s = %s\n", key, value)
	} else {
		outputJSON(map[string]string{"status": "updated", "key": key, "value": value})
	}
	return nil
}
