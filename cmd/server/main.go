package main

import (
	"os"

	"github.com/dmitrijs2005/docusage/internal/server"
)

func main() {
	os.Exit(server.Main())
}
