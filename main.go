package main

import (
	"log/slog"
	"os"

	"github.com/neflity/neflity-site/neflity"
)

// main ...
func main() {
	conf, err := neflity.ReadConfig("./config.toml")
	if err != nil {
		panic(err)
	}

	level, levelErr := neflity.ParseLogLevel(conf.Site.LogLevel)
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	if levelErr != nil {
		log.Warn("using info log level", "error", levelErr)
	}

	site, err := neflity.NewSite(log, conf)
	if err != nil {
		panic(err)
	}

	if err = site.Start(); err != nil {
		log.Error("site stopped", "error", err)
		os.Exit(1)
	}
}
