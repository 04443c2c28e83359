package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/store"
)

var verboseInfo bool
var verboseDebug bool
var verboseTrace bool

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sprout",
	Short: "Sprout renders the study cards embedded in Markdown documents",
	Long:  `Render, check and index the flashcards written inside your Markdown notes.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Enable verbose output. The most verbose level wins when multiple flags are passsed.
		if verboseInfo {
			core.CurrentLogger().SetVerboseLevel(core.VerboseInfo)
		}
		if verboseDebug {
			core.CurrentLogger().SetVerboseLevel(core.VerboseDebug)
		}
		if verboseTrace {
			core.CurrentLogger().SetVerboseLevel(core.VerboseTrace)
		}
	},
}

func init() {
	// Use PersistentFlags to make flags accessible to sub-commands
	rootCmd.PersistentFlags().BoolVarP(&verboseInfo, "v", "", false, "enable verbose info output")
	rootCmd.PersistentFlags().BoolVarP(&verboseDebug, "vv", "", false, "enable verbose debug output")
	rootCmd.PersistentFlags().BoolVarP(&verboseTrace, "vvv", "", false, "enable verbose trace output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default: .sprout.toml in the current directory or its parents)")
}

// loadConfig reads the configuration file. The file is read again on every call.
func loadConfig() (core.Config, error) {
	settings, err := loadSettings()
	if err != nil {
		return core.Config{}, err
	}
	return settings.Normalize()
}

func loadSettings() (core.Settings, error) {
	if configPath != "" {
		return core.ReadSettingsFromFile(configPath)
	}
	return core.ReadSettingsFromDirectory(core.HomeDir())
}

func openStore() *store.Store {
	s, err := store.Open(filepath.Join(core.HomeDir(), store.DefaultFilename))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open card index: %v\n", err)
		os.Exit(1)
	}
	return s
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
