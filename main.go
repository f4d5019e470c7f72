package main

import (
	"github.com/ojciec-dev/svnparse/cmd"
)

func main() {
	cmd.Execute()
}
