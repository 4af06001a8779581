// Package main provides the entry point for Espresso.
// Espresso models the supervisor registers, exceptions and timers of a
// PowerPC 750-class core, driven by the Akita simulation framework.
//
// For the full CLI, use: go run ./cmd/espresso
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("Espresso - PowerPC supervisor model")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: espresso <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run        Fire the timer alarm of one core and report exceptions")
	fmt.Println("  spr        Decode SPR numbers")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/espresso' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/espresso' instead.")
	}
}
