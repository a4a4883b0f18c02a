package main

import (
	"fmt"
	"os"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
