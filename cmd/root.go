/*
Copyright © 2026 kibanatools
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kibanatools/kbackup/config"
	"github.com/kibanatools/kbackup/logger"
	"github.com/kibanatools/kbackup/service"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kbackup",
	Short: "Back up and restore Kibana configuration objects",
	Long: `kbackup exports dashboards, visualizations, saved searches and config
documents from the Kibana configuration index to JSON files, and imports
them back by replaying the indexing requests against Elasticsearch.

Exported files carry the _index, _id and _type metadata alongside the
_source payload, so they can be imported into another cluster as-is.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.kbackup.yaml)")
	rootCmd.PersistentFlags().String("host", "127.0.0.1", "Elasticsearch host")
	rootCmd.PersistentFlags().Int("port", 9200, "Elasticsearch port")
	rootCmd.PersistentFlags().String("index", ".kibana", "Kibana configuration index")
	rootCmd.PersistentFlags().StringP("dir", "d", ".", "Directory to read and write export files")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	viper.BindPFlag("elasticsearch.host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("elasticsearch.port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("elasticsearch.index", rootCmd.PersistentFlags().Lookup("index"))
	viper.BindPFlag("export_dir", rootCmd.PersistentFlags().Lookup("dir"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".kbackup" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kbackup")
	}

	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix("KB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newStore builds the config store and logger from the resolved settings.
func newStore() (*service.ConfigStore, *config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Debug)
	if err != nil {
		return nil, nil, err
	}
	return service.NewConfigStore(cfg.Elasticsearch, log), cfg, nil
}
