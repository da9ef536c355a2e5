package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/linkdock/linkdock/config"
	"github.com/linkdock/linkdock/finder"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize linkdock configuration",
	Long:  `Create the linkdock configuration directory and default config file.`,
	RunE:  runOnboard,
}

func init() {
	rootCmd.AddCommand(onboardCmd)
}

// finderKeyURLs maps finder backends to their API key portal URLs.
var finderKeyURLs = map[string]string{
	"openai":    "https://platform.openai.com/api-keys",
	"anthropic": "https://console.anthropic.com",
}

func runOnboard(_ *cobra.Command, _ []string) error {
	configPath, err := config.Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil {
		fmt.Println("Config already exists at:", configPath)
		fmt.Println("To reconfigure, edit the file directly or delete it first.")
		return nil
	}

	// --- interactive wizard ---

	cfg := config.DefaultConfig()

	var (
		selectedFinder string
		modelName      string
		apiKey         string
		addr           = cfg.Server.Addr
	)

	// Step 1: select finder backend
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose your link finder").
				Description("The finder answers panel queries with design links. The stub serves a built-in catalog and needs no API key.").
				Options(buildFinderOptions()...).
				Value(&selectedFinder),
		),
	).Run()
	if err != nil {
		return err
	}

	// Steps 2 and 3 only apply to model-backed finders.
	if selectedFinder != "stub" {
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Model for "+selectedFinder).
					Description("Leave empty to use the backend's default model.").
					Value(&modelName),
			),
		).Run()
		if err != nil {
			return err
		}

		keyURL := finderKeyURLs[selectedFinder]
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter your "+selectedFinder+" API key").
					Description("Create one at "+keyURL+". Leave empty to read it from the environment instead.").
					EchoMode(huh.EchoModePassword).
					Value(&apiKey),
			),
		).Run()
		if err != nil {
			return err
		}
	}

	// Step 4: listen address
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Daemon listen address").
				Description("The panel iframe and the plugin shim connect here. Keep it on localhost.").
				Value(&addr),
		),
	).Run()
	if err != nil {
		return err
	}

	// --- apply config ---

	cfg.Server.Addr = strings.TrimSpace(addr)
	cfg.Finder.Provider = selectedFinder
	cfg.Finder.Model = strings.TrimSpace(modelName)
	cfg.Finder.APIKey = strings.TrimSpace(apiKey)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("linkdock initialized successfully!")
	fmt.Println()
	fmt.Println("  Config:", configPath)
	fmt.Println("  Finder:", selectedFinder)
	fmt.Println("  Address:", cfg.Server.Addr)
	fmt.Println()
	fmt.Println("Run 'linkdock serve' to start.")
	return nil
}

func buildFinderOptions() []huh.Option[string] {
	names := finder.Supported()
	// Put the stub first.
	sorted := make([]string, 0, len(names))
	for _, n := range names {
		if n == "stub" {
			sorted = append([]string{n}, sorted...)
		} else {
			sorted = append(sorted, n)
		}
	}
	options := make([]huh.Option[string], 0, len(sorted))
	for _, name := range sorted {
		label := name
		if name == "stub" {
			label += " (built-in catalog, no API key) [Recommended]"
		}
		options = append(options, huh.NewOption(label, name))
	}
	return options
}
