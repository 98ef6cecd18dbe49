package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pstuifzand/tui-templategen/internal/cli"
)

func main() {
	logFile, err := os.Create("tgen.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logFile.Close()
		os.Exit(1)
	}
}
