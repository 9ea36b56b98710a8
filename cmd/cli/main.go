package main

import (
	"context"
	"log"

	"github.com/phonesaver/phonesaver/internal/client/cli"
	"github.com/phonesaver/phonesaver/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
