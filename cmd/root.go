package cmd

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/josephlewis42/sdshell/core/config"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sdshell",
	Short: "A simple interactive shell",
	Long: `A simple interactive shell.

Reads one command per line, splits it on whitespace and either runs one of
the builtins (cd, help, exit) or launches the named program and waits for it.`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		expanded, err := homedir.Expand(cfgPath)
		if err != nil {
			return err
		}
		cfgPath = expanded
		return nil
	},
	RunE: runShell,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func defaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ".sdshell"
	}
	return filepath.Join(home, ".sdshell")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "config directory")
}
