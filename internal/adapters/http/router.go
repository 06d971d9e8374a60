package httpadapter

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"stabsurvival/internal/adapters/http/handlers"
	"stabsurvival/internal/adapters/http/middlewares"
	"stabsurvival/internal/adapters/websocket"
	"stabsurvival/internal/ports"
)

// StaticConfig aponta os diretórios servidos diretamente ao renderer
// (imagens e fragmentos são opacos para o núcleo do jogo). AssetsBase é
// consultada por requisição para acompanhar reloads da campanha.
type StaticConfig struct {
	ContentRoot string
	AssetsRoot  string
	AssetsBase  func() string
	OpenAPIPath string
}

// NewRouter configura as rotas e middlewares.
func NewRouter(
	sessionHandler *handlers.SessionHandler,
	campaignHandler *handlers.CampaignHandler,
	wsHandler *websocket.WebSocketHandler,
	tokenService ports.TokenService,
	static StaticConfig,
) http.Handler {
	r := chi.NewRouter()

	// Middlewares globais
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Configuração CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Rota de Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Swagger UI apontando para o documento OpenAPI estático
	r.Get("/openapi.json", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, static.OpenAPIPath)
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/openapi.json"),
	))

	// WebSocket Endpoint (token na query string)
	r.Get("/ws", wsHandler.HandleWS)

	// Campanha corrente (público)
	r.Get("/campaign", campaignHandler.GetCampaign)

	// Grupo de rotas de Sessões
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessionHandler.CreateSession)

		// Rotas protegidas pelo token de sessão
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokenService))
			r.Get("/current", sessionHandler.GetCurrent)
		})
	})

	// Conteúdo estático: fragmentos markdown e imagens referenciados pelo
	// documento de campanha, consumidos direto pelo renderer.
	fileServer(r, "/content", func() string {
		return filepath.Join(static.ContentRoot, "content")
	})
	fileServer(r, "/assets", func() string {
		return filepath.Join(static.AssetsRoot, static.AssetsBase())
	})

	return r
}

// fileServer monta um servidor de arquivos cujo diretório é recalculado a
// cada requisição (o diretório de assets muda com meta.assets_base).
func fileServer(r chi.Router, prefix string, dir func() string) {
	r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(dir())))
		fs.ServeHTTP(w, req)
	})
}
