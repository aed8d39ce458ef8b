package main

import (
	"log"

	"github.com/patric-chuzhbe/crudboard/internal/app"
)

func main() {
	theApp, err := app.New()
	if err != nil {
		log.Fatalln("unable to initialize the application:", err)
	}
	defer theApp.Close()

	if err := theApp.Run(); err != nil {
		log.Fatalln("application error:", err)
	}
}
