package main

import (
	"cinecap/cmd/handlers"
	"cinecap/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
