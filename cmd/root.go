package cmd

import (
	"fmt"
	"os"

	"github.com/tldsplit/tldsplit/config"
	"github.com/tldsplit/tldsplit/log"
	"github.com/tldsplit/tldsplit/util"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals
var (
	version    = "undefined"
	buildTime  = "undefined"
	configPath string
	cfg        *config.Config
)

//nolint:gochecknoglobals
var rootCmd = &cobra.Command{
	Use:   "tldsplit",
	Short: "tldsplit splits hostnames into subdomain, domain and public suffix",
	Long: `A public suffix aware hostname splitter.

tldsplit compiles the Public Suffix List into a suffix trie and splits
URLs or hostnames into their subdomain, registered domain and public
suffix parts.`,
}

//nolint:gochecknoinits
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config.yml", "path to config file")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newVersionCommand())
}

func initConfig() {
	var err error

	cfg, err = config.LoadConfig(configPath, false)
	util.FatalOnError("can't load config: ", err)

	log.ConfigureLogger(cfg.Log)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
