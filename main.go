package main

import (
	"log"
	"os"

	"github.com/avstrong/hotelserver/internal/app"
	"github.com/avstrong/hotelserver/internal/config"
	"github.com/avstrong/hotelserver/internal/logger"
)

func main() {
	l := logger.New(log.Default())

	conf, err := config.Load(".env")
	if err != nil {
		l.LogErrorf("Failed to load config: %v", err.Error())
		os.Exit(1)
	}

	l = l.WithLevel(logger.ParseLevel(conf.LogLevel))

	var exitCode int

	if err := app.Run(l, conf); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	os.Exit(exitCode)
}
