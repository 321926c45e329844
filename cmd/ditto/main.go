package main

import (
	"log"
	"os"

	"github.com/Black-And-White-Club/impiccato-bot/app"
)

func main() {
	if err := app.CLI(app.BotDitto, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
