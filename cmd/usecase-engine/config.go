// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/Sneha-B6/P-1/internal/secrets"
	"github.com/Sneha-B6/P-1/pkg/types"
)

const envPrefix = "USECASE_ENGINE"

// initConfig layers configuration: built-in defaults, then the config file,
// then USECASE_ENGINE_* environment variables. Command flags bound with
// bindFlags override all three.
func initConfig() {
	// Seeding defaults as a config layer makes every key known to viper, so
	// nested environment overrides reach Unmarshal.
	defaults, err := yaml.Marshal(types.DefaultPipelineConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: encoding default config:", err)
	}
	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(bytes.NewReader(defaults)); err != nil {
		fmt.Fprintln(os.Stderr, "warning: loading default config:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("usecase-engine")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "usecase-engine"))
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("generation.api_key")

	if err := viper.MergeInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: reading config file %s: %v\n", cfgFile, err)
	}
}

// bindFlags binds the named flags of cmd to configuration keys. Binding
// happens when a command runs, since several commands share keys.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			return fmt.Errorf("flag --%s not defined on %s", name, cmd.Name())
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// pipelineConfig returns the effective configuration. The Claude API key
// falls back to .secrets/anthropic-api-key.
func pipelineConfig() (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	cfg.Generation.APIKey = secrets.Lookup(loadedSecrets, secrets.AnthropicAPIKey, cfg.Generation.APIKey)
	cfg.Output.Path = outputPath(cfg.Output)
	return cfg, nil
}

// outputPath swaps a .pdf extension for .txt when writing text output.
func outputPath(out types.OutputConfig) string {
	if out.Format == types.FormatText && strings.EqualFold(filepath.Ext(out.Path), ".pdf") {
		return strings.TrimSuffix(out.Path, filepath.Ext(out.Path)) + ".txt"
	}
	return out.Path
}
