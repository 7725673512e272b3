package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lodestone-mc/lodestone/internal/config"
	"github.com/lodestone-mc/lodestone/internal/ghcli"
)

// configItem maps one CLI flag to the Actions variable or secret the
// release workflow consumes.
type configItem struct {
	Flag     string
	Name     string
	Help     string
	IsSecret bool
}

var setupItems = []configItem{
	{Flag: "modrinth-id", Name: "MODRINTH_ID", Help: "Modrinth project ID"},
	{Flag: "cf-id", Name: "CF_ID", Help: "CurseForge project ID"},
	{Flag: "enable-modrinth-sync", Name: "ENABLE_MODRINTH_SYNC", Help: "enable Modrinth modpack sync (true/false)"},
	{Flag: "enable-curseforge-sync", Name: "ENABLE_CURSEFORGE_SYNC", Help: "enable CurseForge modpack sync (true/false)"},
	{Flag: "modrinth-token", Name: "MODRINTH_TOKEN", Help: "Modrinth API token", IsSecret: true},
	{Flag: "curseforge-token", Name: "CURSEFORGE_TOKEN", Help: "CurseForge API token", IsSecret: true},
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision repository variables and secrets for the release workflow",
	Long: "Setup configures the current repository's GitHub Actions variables and\n" +
		"secrets through the gh CLI. Only values passed as flags are written;\n" +
		"everything else is listed and left untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		ctx := cmd.Context()
		gh := &ghcli.Client{GhPath: cfg.GhPath, Verbose: cfg.Verbose}

		if err := gh.Validate(ctx); err != nil {
			return err
		}
		owner, name, err := gh.RepoInfo(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Repository: %s/%s\n", owner, name)

		existingVars, err := gh.ListVariables(ctx)
		if err != nil {
			return fmt.Errorf("listing variables: %w", err)
		}
		existingSecrets, err := gh.ListSecrets(ctx)
		if err != nil {
			return fmt.Errorf("listing secrets: %w", err)
		}

		var actions []string
		for _, item := range setupItems {
			if !cmd.Flags().Changed(item.Flag) {
				switch {
				case item.IsSecret && existingSecrets[item.Name]:
					fmt.Fprintf(os.Stderr, "%s: using existing value (***)\n", item.Name)
				case !item.IsSecret:
					if v, ok := existingVars[item.Name]; ok {
						fmt.Fprintf(os.Stderr, "%s: using existing value (%s)\n", item.Name, v)
					}
				}
				continue
			}

			value, _ := cmd.Flags().GetString(item.Flag)
			if item.IsSecret {
				err = gh.SetSecret(ctx, item.Name, value)
			} else {
				err = gh.SetVariable(ctx, item.Name, value)
			}
			if err != nil {
				return fmt.Errorf("setting %s: %w", item.Name, err)
			}
			actions = append(actions, item.Name)
		}

		if len(actions) == 0 {
			fmt.Fprintln(os.Stderr, "No changes made.")
			return nil
		}
		fmt.Fprintln(os.Stderr, "Setup complete:")
		for _, a := range actions {
			fmt.Fprintf(os.Stderr, "  - %s: set at repo level\n", a)
		}
		return nil
	},
}

func init() {
	for _, item := range setupItems {
		setupCmd.Flags().String(item.Flag, "", item.Help)
	}
	rootCmd.AddCommand(setupCmd)
}
