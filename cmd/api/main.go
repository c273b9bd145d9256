package main

import (
	"log"

	"stocklab/cmd"
	"stocklab/internal/config"
)

func main() {
	apiHandler, err := cmd.InitializeDependencies(config.DefaultPath())
	if err != nil {
		log.Fatal(err)
	}
	err = apiHandler.StartApi(apiHandler.Config.API.Port)
	if err != nil {
		log.Fatal(err)
	}
}
