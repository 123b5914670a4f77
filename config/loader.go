package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts file probing so loading is testable.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem is the os-backed FileSystem.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Option configures Load.
type Option func(*loaderConfig)

type loaderConfig struct {
	fs         FileSystem
	configFile string
	envFile    string
}

// WithFileSystem sets a custom filesystem.
func WithFileSystem(fs FileSystem) Option {
	return func(lc *loaderConfig) { lc.fs = fs }
}

// WithConfigFile forces an explicit config file path.
func WithConfigFile(path string) Option {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile forces an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// Load fills cfg for the named suite from config files and environment
// variables. Missing files are not an error; environment variables win
// over file values. Environment keys are upper-snake with the suite name
// as prefix: a suite "compute" reads COMPUTE_SERVICE, COMPUTE_TLS_CA_FILE,
// and so on.
func Load(name string, cfg interface{}, opts ...Option) error {
	var lc loaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.fs == nil {
		lc.fs = RealFileSystem{}
	}

	configFile := lc.configFile
	if configFile == "" {
		configFile = findFirst(lc.fs,
			fmt.Sprintf("./config/%s.yml", name),
			fmt.Sprintf("./%s.yml", name),
			"./config/config.yml",
			"./config.yml",
		)
	}
	envFile := lc.envFile
	if envFile == "" {
		envFile = findFirst(lc.fs, fmt.Sprintf(".env.%s", name), ".env")
	}

	if envFile != "" && lc.fs.Exists(envFile) {
		if err := lc.fs.LoadEnv(envFile); err != nil {
			return fmt.Errorf("config: load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	if configFile != "" && lc.fs.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(strings.ToUpper(name))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v, name)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal for %s: %w", name, err)
	}
	return nil
}

func findFirst(fs FileSystem, paths ...string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// bindEnvKeys makes AutomaticEnv see prefixed variables even for keys that
// never appeared in a config file. Viper only consults the environment for
// keys it already knows, so every matching env var is set explicitly.
func bindEnvKeys(v *viper.Viper, name string) {
	prefix := strings.ToUpper(name) + "_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(pair[0], prefix))
		// Both flat ("build_timeout") and nested ("tls.ca_file") shapes
		// exist in the config structs; set the likely variants.
		v.Set(key, pair[1])
		v.Set(strings.ReplaceAll(key, "_", "."), pair[1])
		if i := strings.Index(key, "_"); i > 0 {
			v.Set(key[:i]+"."+key[i+1:], pair[1])
		}
	}
}
