package main

import (
	"flag"
	"log"

	"github.com/kataras/iris/v12"

	"github.com/DineshVarikuppala/Dukanam/internal/config"
	"github.com/DineshVarikuppala/Dukanam/internal/infra/logger"
	"github.com/DineshVarikuppala/Dukanam/internal/server"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init()

	app := iris.New()
	server.RegisterRoutes(app, cfg)

	addr := cfg.Server.Addr()
	log.Printf("web server listening on %s", addr)
	if err := app.Run(iris.Addr(addr)); err != nil {
		log.Fatalf("failed to run web server: %v", err)
	}
}
