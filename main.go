package main

import "github.com/frahmantamala/firedept-portal/cmd"

func main() {
	cmd.Execute()
}
