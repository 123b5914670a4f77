// Package config loads suite configuration from YAML files and the
// environment.
//
// Load fills a caller-provided struct (by mapstructure tags) from an
// optional config.yml, an optional .env file, and process environment
// variables, in that precedence order (environment wins):
//
//	var cfg restclient.Config
//	err := config.Load("compute", &cfg)
//
// File discovery checks the working directory and ./config; explicit paths
// can be forced with WithConfigFile and WithEnvFile. The FileSystem seam
// exists so tests can run against a fake filesystem.
package config
