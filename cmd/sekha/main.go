package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/sekha-ai/sekha-controller/internal/cmd"
)

func main() {
	// Optional .env in the working directory; real environment wins.
	_ = godotenv.Load()

	os.Exit(cmd.Main(os.Args))
}
