package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/meysamhadeli/dirsnap/snapshot"
	"github.com/meysamhadeli/dirsnap/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file
type Config struct {
	Version  string         `mapstructure:"version"`
	LogLevel string         `mapstructure:"log_level"`
	Scanner  *ScannerConfig `mapstructure:"scanner"`
	Server   *ServerConfig  `mapstructure:"server"`
	Check    *CheckConfig   `mapstructure:"check"`
}

// ScannerConfig controls which files end up in a snapshot
type ScannerConfig struct {
	Root        string   `mapstructure:"root"`
	MaxFileSize int64    `mapstructure:"max_file_size"`
	Extensions  []string `mapstructure:"extensions"`
	ExcludeDirs []string `mapstructure:"exclude_dirs"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Route           string        `mapstructure:"route"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CheckConfig controls the diagnostic client
type CheckConfig struct {
	URL          string `mapstructure:"url"`
	Needle       string `mapstructure:"needle"`
	PrefixLength int    `mapstructure:"prefix_length"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:  "0.3.1",
	LogLevel: "info",
	Scanner: &ScannerConfig{
		Root:        "",
		MaxFileSize: utils.DefaultMaxFileSize,
		Extensions:  utils.DefaultExtensions,
		ExcludeDirs: utils.DefaultExcludedDirs,
	},
	Server: &ServerConfig{
		Addr:            ":3000",
		Route:           "/api/files",
		ShutdownTimeout: 5 * time.Second,
	},
	Check: &CheckConfig{
		URL:          "http://localhost:3000/api/files",
		Needle:       "page.tsx",
		PrefixLength: 500,
	},
}

// configName is the config file name looked up in the working directory (without extension)
const configName = "dirsnap-config"

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("DIRSNAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	cfgFile := ""
	if rootCmd != nil {
		cfgFile, _ = rootCmd.PersistentFlags().GetString("config")
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	if rootCmd != nil {
		bindFlags(v, rootCmd)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("scanner.root", DefaultConfig.Scanner.Root)
	v.SetDefault("scanner.max_file_size", DefaultConfig.Scanner.MaxFileSize)
	v.SetDefault("scanner.extensions", DefaultConfig.Scanner.Extensions)
	v.SetDefault("scanner.exclude_dirs", DefaultConfig.Scanner.ExcludeDirs)
	v.SetDefault("server.addr", DefaultConfig.Server.Addr)
	v.SetDefault("server.route", DefaultConfig.Server.Route)
	v.SetDefault("server.shutdown_timeout", DefaultConfig.Server.ShutdownTimeout)
	v.SetDefault("check.url", DefaultConfig.Check.URL)
	v.SetDefault("check.needle", DefaultConfig.Check.Needle)
	v.SetDefault("check.prefix_length", DefaultConfig.Check.PrefixLength)
}

// bindEnv binds the short environment variable names on top of the DIRSNAP_ prefixed ones
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("log_level", "DIRSNAP_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("scanner.root", "DIRSNAP_SCANNER_ROOT", "DIRSNAP_ROOT")
	_ = v.BindEnv("server.addr", "DIRSNAP_SERVER_ADDR", "DIRSNAP_ADDR")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	_ = v.BindPFlag("log_level", flags.Lookup("log_level"))
	_ = v.BindPFlag("scanner.root", flags.Lookup("root"))
	_ = v.BindPFlag("scanner.max_file_size", flags.Lookup("max_file_size"))
	_ = v.BindPFlag("scanner.extensions", flags.Lookup("extensions"))
	_ = v.BindPFlag("scanner.exclude_dirs", flags.Lookup("exclude_dirs"))
	_ = v.BindPFlag("server.addr", flags.Lookup("addr"))
	_ = v.BindPFlag("server.route", flags.Lookup("route"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringP("config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("log_level", DefaultConfig.LogLevel, "Log level for structured logs (debug, info, warn, error).")

	// Scanner configuration
	rootCmd.PersistentFlags().String("root", DefaultConfig.Scanner.Root, "Directory to snapshot. Defaults to the current working directory.")
	rootCmd.PersistentFlags().Int64("max_file_size", DefaultConfig.Scanner.MaxFileSize, "Files of this many bytes or more are left out of the snapshot.")
	rootCmd.PersistentFlags().StringSlice("extensions", DefaultConfig.Scanner.Extensions, "File extensions captured in the snapshot (case-insensitive).")
	rootCmd.PersistentFlags().StringSlice("exclude_dirs", DefaultConfig.Scanner.ExcludeDirs, "Directory names that are never descended into.")

	// Server configuration
	rootCmd.PersistentFlags().String("addr", DefaultConfig.Server.Addr, "Address the HTTP server listens on.")
	rootCmd.PersistentFlags().String("route", DefaultConfig.Server.Route, "Route that serves the snapshot.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// Validate rejects values the scanner and server cannot work with
func (c *Config) Validate() error {
	if c.Scanner == nil || c.Server == nil || c.Check == nil {
		return fmt.Errorf("incomplete configuration")
	}
	if c.Scanner.MaxFileSize <= 0 {
		return fmt.Errorf("scanner.max_file_size must be positive, got %d", c.Scanner.MaxFileSize)
	}
	if len(utils.NormalizeExtensions(c.Scanner.Extensions)) == 0 {
		return fmt.Errorf("scanner.extensions must not be empty")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if !strings.HasPrefix(c.Server.Route, "/") {
		return fmt.Errorf("server.route must start with '/', got %q", c.Server.Route)
	}
	if c.Check.PrefixLength < 0 {
		return fmt.Errorf("check.prefix_length must not be negative")
	}
	return nil
}

// ScannerOptions resolves the scanner configuration against the working directory.
func (c *Config) ScannerOptions(cwd string) snapshot.Options {
	root := c.Scanner.Root
	if root == "" {
		root = cwd
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}

	return snapshot.Options{
		Root:        root,
		Extensions:  c.Scanner.Extensions,
		ExcludeDirs: c.Scanner.ExcludeDirs,
		MaxFileSize: c.Scanner.MaxFileSize,
	}
}
