package main

import (
	_ "github.com/joho/godotenv/autoload"

	"casevault/internal/cli"
)

func main() {
	cli.Execute()
}
