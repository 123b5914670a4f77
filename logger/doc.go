// Package logger provides structured logging for restkit, backed by
// zerolog.
//
// The REST client consumes the small Sink interface rather than a concrete
// logger, so test suites can inject capture doubles; Logger is the
// zerolog-backed implementation used in real runs.
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "console"}, "compute")
//	client, _ := restclient.New(cfg, provider, restclient.WithLogger(log))
//
// There is no package-global logger: every consumer receives its sink
// explicitly.
package logger
