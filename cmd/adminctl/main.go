package main

import (
	"fmt"
	"os"

	"github.com/aqarhub/go-admin-client/cmd/adminctl/cmd"
	"github.com/common-nighthawk/go-figure"
)

func main() {
	displayAppname("adminctl")
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
