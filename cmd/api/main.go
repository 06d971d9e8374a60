package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stabsurvival/internal/adapters/content"
	httpadapter "stabsurvival/internal/adapters/http"
	"stabsurvival/internal/adapters/http/handlers"
	"stabsurvival/internal/adapters/persistence"
	"stabsurvival/internal/adapters/security"
	"stabsurvival/internal/adapters/websocket"
	"stabsurvival/internal/application/usecases"
	"stabsurvival/internal/infra/campaignstore"
	"stabsurvival/internal/infra/config"
	"stabsurvival/internal/infra/logger"
	"stabsurvival/internal/infra/timer"
)

// Intervalo da varredura de sessões ociosas.
const evictionInterval = 5 * time.Minute

// @title Stabilizer Survival API
// @version 1.0
// @description Backend do jogo educacional de circuitos estabilizadores (sessões anônimas, estado em memória).
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @externalDocs.description  Protocolo WebSocket (não interativo via Swagger)
// @externalDocs.url          /openapi.json
func main() {
	// 1. Configuração e Logger
	_ = godotenv.Load() // .env é opcional; ambiente real vence
	logger.Init()
	cfg := config.Load()

	// 2. Campanha (documento malformado impede o boot)
	store, err := campaignstore.Load(cfg.Content.CampaignPath)
	if err != nil {
		logger.Error("Não foi possível carregar a campanha", "erro", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.WatchEnabled {
		go func() {
			if err := store.Watch(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("watcher da campanha encerrou", "erro", err)
			}
		}()
	}

	// 3a. Adapters (Driving - Persistence)
	sessionRepo := persistence.NewInMemorySessionRepository()

	verifier := security.NewDevPasswordVerifier()
	tokenService := security.NewJWTService(cfg.JWTSecret)

	// 3b. Adapters (Driving - Conteúdo)
	// A base de assets acompanha o snapshot corrente: um reload que troque
	// meta.assets_base vale para as próximas buscas e requisições.
	assetsBase := func() string { return store.Current().Meta.AssetsBase }
	source := content.NewFileSource(
		cfg.Content.ContentRoot,
		cfg.Content.AssetsRoot,
		assetsBase,
	)
	loader := content.NewLoader(source, cfg.Content.CacheVersion)

	// 3c. Adapters (Driving - WebSocket Hub)
	wsHub := websocket.NewHub()
	// Inicia o Hub em background
	go wsHub.Run()

	// 4. Application (Use Cases)
	contentUC := usecases.NewContentUseCases(loader, wsHub)
	gameUC := usecases.NewGameUseCases(sessionRepo, wsHub, contentUC, verifier)
	sessionUC := usecases.NewSessionUseCases(sessionRepo, store, tokenService)

	// O serviço de timer liga de volta nos casos de uso (tick e expiração).
	timers := timer.NewService(timer.Callbacks{
		OnTick:   gameUC.OnTimerTick,
		OnExpire: gameUC.OnTimerExpire,
	})
	gameUC.AttachTimers(timers)
	defer timers.StopAll()

	// Varredura periódica de sessões abandonadas
	go func() {
		ticker := time.NewTicker(evictionInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessionRepo.EvictIdle(cfg.SessionTTL); n > 0 {
					logger.Info("Sessões ociosas removidas", "quantidade", n)
				}
			}
		}
	}()

	// 5. Adapters (Driven - Handlers)
	sessionHandler := handlers.NewSessionHandler(sessionUC, gameUC)
	campaignHandler := handlers.NewCampaignHandler(store)

	wsHandler := websocket.NewWebSocketHandler(wsHub, gameUC, sessionUC, tokenService)

	// 6. Router
	router := httpadapter.NewRouter(
		sessionHandler,
		campaignHandler,
		wsHandler,
		tokenService,
		httpadapter.StaticConfig{
			ContentRoot: cfg.Content.ContentRoot,
			AssetsRoot:  cfg.Content.AssetsRoot,
			AssetsBase:  assetsBase,
			OpenAPIPath: "api/openapi.json",
		},
	)

	// 7. Servidor
	logger.Info("Iniciando servidor", "porta", cfg.Port, "campanha", store.Current().Meta.Title)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), router); err != nil {
		logger.Error("Falha no servidor HTTP", "erro", err)
	}
}
