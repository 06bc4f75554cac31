// Package main provides the orbitcap CLI.
package main

import "github.com/voxel-foundry/orbitcap/internal/cli"

func main() {
	cli.Execute()
}
