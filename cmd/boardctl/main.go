package main

import (
	"fmt"
	"os"

	"boardstudio/internal/version"
)

func main() {
	// Minimal CLI entrypoint for the Board Studio project.
	// For now, it prints a banner and an optional version.
	args := os.Args
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println(version.String())
			return
		}
	}

	fmt.Println("Board Studio — development skeleton")
	fmt.Printf("Version: %s\n", version.String())
}
