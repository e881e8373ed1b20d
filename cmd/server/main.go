package main

import (
	"webchat/internal/config"
	"webchat/internal/db"
	clog "webchat/internal/log"
	"webchat/internal/server"
	"webchat/internal/ws"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// 本地开发允许从 .env 读取环境变量，文件不存在就跳过。
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	clog.Init(cfg.Env)
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("validate config")
	}

	gdb, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	room := ws.NewRoom(cfg.RoomCode)
	go room.Run()

	r := server.SetupRouter(cfg, gdb, room)
	log.Info().Str("port", cfg.Port).Str("room", cfg.RoomCode).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server run")
	}
}
