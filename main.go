/*
Copyright © 2026 kibanatools
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/kibanatools/kbackup/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// A .env file is optional, the environment may already carry everything.
	_ = godotenv.Load()
}
