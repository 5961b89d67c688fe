package main

import (
	"log"

	"rookhaven/server/internal/app"
)

func main() {
	a, err := app.New(app.ConfigFromEnv())
	if err != nil {
		log.Fatalf("startup failed:\n%v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
