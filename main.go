package main

import "github.com/koki-develop/glyphview/cmd"

func main() {
	cmd.Execute()
}
