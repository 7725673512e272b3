package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lodestone-mc/lodestone/internal/ghout"
	"github.com/lodestone-mc/lodestone/internal/modmeta"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate mods.toml [mc-publish] metadata",
	Long: "Validate locates the repository's single mods.toml, checks that the\n" +
		"[mc-publish] table carries every required key, and optionally exports the\n" +
		"fields to $GITHUB_OUTPUT.",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _ := cmd.Flags().GetString("root")
		writeOutputs, _ := cmd.Flags().GetBool("write-outputs")
		watch, _ := cmd.Flags().GetBool("watch")

		path, err := modmeta.Find(root)
		if err != nil {
			return err
		}

		if err := validateFile(path, writeOutputs); err != nil {
			if !watch {
				return err
			}
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}

		if watch {
			return watchFile(path, writeOutputs)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().String("root", ".", "directory to search for mods.toml")
	validateCmd.Flags().Bool("write-outputs", false, "write parsed values to GITHUB_OUTPUT")
	validateCmd.Flags().Bool("watch", false, "re-validate whenever mods.toml changes")
	rootCmd.AddCommand(validateCmd)
}

// validateFile runs one locate-decode-validate pass and optionally
// exports the record.
func validateFile(path string, writeOutputs bool) error {
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
	meta, err := modmeta.Validate(values)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(os.Stderr, "Validated %s at %s\n", modmeta.FileName, path)

	if !writeOutputs {
		return nil
	}
	out, err := ghout.Open()
	if err != nil {
		return err
	}
	defer out.Close()
	for _, kv := range [][2]string{
		{"modrinth_id", meta.Modrinth},
		{"curseforge_id", meta.CurseForge},
		{"loader", meta.Loader},
		{"mc_version", meta.MCVersion},
		{"modrinth_slug", meta.ModrinthSlug},
		{"curseforge_slug", meta.CurseForgeSlug},
	} {
		if err := out.Set(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// watchFile blocks, re-validating the file after each change burst.
func watchFile(path string, writeOutputs bool) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "watch"})

	w, err := modmeta.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("starting watcher for %s: %w", path, err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	defer w.Stop()

	logger.Info("watching for changes", "file", path)
	for range w.Changes {
		if err := validateFile(path, writeOutputs); err != nil {
			logger.Error("validation failed", "err", err)
		}
	}
	return nil
}
