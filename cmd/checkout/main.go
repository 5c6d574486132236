package main

import (
	"log"

	"github.com/ibeloyar/oilcheckout/internal/app"
	"github.com/ibeloyar/oilcheckout/internal/config"
	"github.com/ibeloyar/oilcheckout/pgk/logger"
)

func main() {
	lg, err := logger.New()
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	cfg, err := config.Read()
	if err != nil {
		lg.Fatal(err)
	}

	if err := app.Run(cfg, lg); err != nil {
		lg.Fatal(err)
	}
}
