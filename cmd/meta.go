package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lodestone-mc/lodestone/internal/modmeta"
)

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Inspect and edit [mc-publish] metadata",
}

var metaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the decoded [mc-publish] table",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := metaFilePath(cmd)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		doc := modmeta.ParseDocument(string(data))
		frag, err := modmeta.Locate(doc, modmeta.TableName)
		if err != nil {
			return err
		}
		if frag == nil {
			return fmt.Errorf("missing [%s] table in %s", modmeta.TableName, path)
		}
		values, err := modmeta.Decode(doc, frag, modmeta.TableName)
		if err != nil {
			return fmt.Errorf("invalid TOML in %s: %w", path, err)
		}

		for _, key := range modmeta.RequiredKeys {
			if v, ok := values[key]; ok {
				fmt.Printf("%s = %v\n", key, v)
			}
		}
		return nil
	},
}

// metaSetFlags maps each settable key to its CLI flag name.
var metaSetFlags = map[string]string{
	"modrinth":        "modrinth",
	"curseforge":      "curseforge",
	"loader":          "loader",
	"mc_version":      "mc-version",
	"modrinth_slug":   "modrinth-slug",
	"curseforge_slug": "curseforge-slug",
}

var metaSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update [mc-publish] keys, preserving the rest of the file",
	Long: "Set rewrites only the [mc-publish] table: keys that exist are updated in\n" +
		"place, new keys are appended to the table, and the table itself is appended\n" +
		"to the document when absent. Every other line is left byte-for-byte intact.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := metaFilePath(cmd)
		if err != nil {
			return err
		}

		values := make(map[string]string)
		for key, flag := range metaSetFlags {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				values[key] = v
			}
		}
		if len(values) == 0 {
			return fmt.Errorf("nothing to set; pass at least one metadata flag")
		}

		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		doc := modmeta.ParseDocument(string(data))
		frag, err := modmeta.Locate(doc, modmeta.TableName)
		if err != nil {
			return err
		}

		out, changed := modmeta.Rewrite(doc, modmeta.TableName, frag, values, modmeta.RequiredKeys)
		if !changed {
			fmt.Fprintf(os.Stderr, "%s already up to date\n", path)
			return nil
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Updated [%s] in %s\n", modmeta.TableName, path)
		return nil
	},
}

func metaFilePath(cmd *cobra.Command) (string, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		return file, nil
	}
	return modmeta.Find(".")
}

func init() {
	metaShowCmd.Flags().String("file", "", "path to mods.toml (default: discovered)")

	metaSetCmd.Flags().String("file", "", "path to mods.toml (default: discovered)")
	metaSetCmd.Flags().String("modrinth", "", "Modrinth project ID")
	metaSetCmd.Flags().String("curseforge", "", "CurseForge project ID")
	metaSetCmd.Flags().String("loader", "", "mod loader")
	metaSetCmd.Flags().String("mc-version", "", "target Minecraft version")
	metaSetCmd.Flags().String("modrinth-slug", "", "Modrinth project slug")
	metaSetCmd.Flags().String("curseforge-slug", "", "CurseForge project slug")

	metaCmd.AddCommand(metaShowCmd)
	metaCmd.AddCommand(metaSetCmd)
	rootCmd.AddCommand(metaCmd)
}
