package main

import (
	"newsmith/cmd/cmd"
	"newsmith/internal/logger"
)

func main() {
	logger.Init()
	cmd.Execute()
}
