package main

import "github.com/oshokin/nvim-updater/cmd/nvim-updater/cmd"

func main() {
	cmd.Execute()
}
