package main

import (
	"fmt"
	"os"

	"github.com/mahimDev/bistro-boss-server/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
