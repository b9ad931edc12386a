package main

import "github.com/meysamhadeli/dirsnap/cmd"

func main() {
	cmd.Execute()
}
