package main

import "recipesmith/internal/cli"

func main() {
	cli.Execute()
}
