package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/harmonlab/harmony-rl/commands"
)

// main entry point to training, harmonization and inspection
func main() {
	// .env is optional, flags and environment variables still apply
	godotenv.Load()

	rootCommand := commands.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
