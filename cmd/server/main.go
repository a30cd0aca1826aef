package main

import (
	"context"
	"log"
	"os"

	"github.com/elizarovs/postkeeper/internal/buildinfo"
	"github.com/elizarovs/postkeeper/internal/server"
	"github.com/elizarovs/postkeeper/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
