// Command lurelands runs the Lurelands game-state engine.
package main

import "github.com/mesh-intelligence/lurelands/internal/cli"

func main() {
	cli.Execute()
}
