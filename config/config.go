package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Debug         bool                `mapstructure:"debug"`
	ExportDir     string              `mapstructure:"export_dir"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type ElasticsearchConfig struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Index string `mapstructure:"index"`
}

// SetDefaults registers the values used when neither config file, flags nor
// environment provide them. The defaults match a local Kibana 4 setup.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("export_dir", ".")
	v.SetDefault("elasticsearch.host", "127.0.0.1")
	v.SetDefault("elasticsearch.port", 9200)
	v.SetDefault("elasticsearch.index", ".kibana")
}

// Load unmarshals the resolved viper state into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}
