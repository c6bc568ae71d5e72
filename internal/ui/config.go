package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/satchel/internal/config"
	"github.com/javiermolinar/satchel/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  satchel config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)

	reader := bufio.NewReader(in)

	// Ask if user wants to edit
	if !promptYesNoReader(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	cfg.Grid.Width = promptInt(reader, out, "Grid width", cfg.Grid.Width)
	cfg.Grid.Height = promptInt(reader, out, "Grid height", cfg.Grid.Height)
	cfg.Storage.Session = promptChoice(reader, out, "Session store",
		[]string{config.SessionCache, config.SessionMemory, config.SessionRedis, config.SessionNone}, cfg.Storage.Session)
	if cfg.Storage.Session == config.SessionRedis {
		cfg.Storage.RedisAddr = promptValue(reader, out, "Redis address", cfg.Storage.RedisAddr)
		cfg.Storage.SessionTTL = promptValue(reader, out, "Session TTL (empty for none)", cfg.Storage.SessionTTL)
	}
	cfg.Storage.Durable = promptChoice(reader, out, "Durable store",
		[]string{config.DurableSQLite, config.DurableFile, config.DurableNone}, cfg.Storage.Durable)
	switch cfg.Storage.Durable {
	case config.DurableSQLite:
		cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	case config.DurableFile:
		cfg.Storage.FilePath = promptValue(reader, out, "Save file path", cfg.Storage.FilePath)
	}
	cfg.Vault.Path = promptValue(reader, out, "Vault file (empty for built-in)", cfg.Vault.Path)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Sound.Enabled = promptBool(reader, out, "Play sounds", cfg.Sound.Enabled)
	if cfg.Sound.Enabled {
		cfg.Sound.Bell = promptBool(reader, out, "Ring the terminal bell", cfg.Sound.Bell)
	}

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[grid]")
	fmt.Fprintf(out, "  width       = %d\n", cfg.Grid.Width)
	fmt.Fprintf(out, "  height      = %d\n", cfg.Grid.Height)
	fmt.Fprintf(out, "  cell_size   = %d\n", cfg.Grid.CellSize)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  session     = %s\n", cfg.Storage.Session)
	switch cfg.Storage.Session {
	case config.SessionCache:
		fmt.Fprintf(out, "  cache_dir   = %s\n", cfg.Storage.CacheDir)
	case config.SessionRedis:
		fmt.Fprintf(out, "  redis_addr  = %s\n", cfg.Storage.RedisAddr)
		fmt.Fprintf(out, "  session_ttl = %s\n", cfg.Storage.SessionTTL)
	}
	fmt.Fprintf(out, "  durable     = %s\n", cfg.Storage.Durable)
	switch cfg.Storage.Durable {
	case config.DurableSQLite:
		fmt.Fprintf(out, "  db_path     = %s\n", cfg.Storage.DBPath)
	case config.DurableFile:
		fmt.Fprintf(out, "  file_path   = %s\n", cfg.Storage.FilePath)
	}
	if cfg.Vault.Path != "" {
		fmt.Fprintln(out, "\n[vault]")
		fmt.Fprintf(out, "  path        = %s\n", cfg.Vault.Path)
	}
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme       = %s\n", cfg.UI.Theme)
	fmt.Fprintln(out, "\n[sound]")
	fmt.Fprintf(out, "  enabled     = %t\n", cfg.Sound.Enabled)
	fmt.Fprintf(out, "  bell        = %t\n", cfg.Sound.Bell)
}

func promptYesNo(in io.Reader, out io.Writer, question string) bool {
	return promptYesNoReader(bufio.NewReader(in), out, question)
}

func promptYesNoReader(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

// promptBool keeps current on empty input.
func promptBool(reader *bufio.Reader, out io.Writer, label string, current bool) bool {
	hint := "y/N"
	if current {
		hint = "Y/n"
	}
	fmt.Fprintf(out, "  %s [%s]: ", label, hint)
	input, _ := reader.ReadString('\n')
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return current
	}
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q.\n", value)
		if value == strconv.Itoa(current) {
			return current
		}
	}
}

func promptChoice(reader *bufio.Reader, out io.Writer, label string, options []string, current string) string {
	list := strings.Join(options, ", ")
	full := fmt.Sprintf("%s (%s)", label, list)
	for {
		value := strings.ToLower(promptValue(reader, out, full, current))
		for _, o := range options {
			if value == o {
				return value
			}
		}
		fmt.Fprintf(out, "  Invalid choice %q. Available: %s\n", value, list)
		if value == current {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if value == strings.ToLower(current) {
			return current
		}
	}
}
