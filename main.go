package main

import (
	"github.com/giantswarm/mcp-eks/cmd"
)

// version is set during build time using ldflags:
//
//	go build -ldflags "-X main.version=v1.2.3"
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
