package main

import "github.com/denizydmr07/stubrun/cmd"

func main() {
	cmd.Execute()
}
