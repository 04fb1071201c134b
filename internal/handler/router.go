package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/hireman/internal/metrics"
	"github.com/hitoshi/hireman/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	PrincipalFinder   middleware.PrincipalFinder
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	Collector         metrics.MetricsCollector
	Gatherer          prometheus.Gatherer
	CORSAllowedOrigin string

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 求人
	JobService JobServiceInterface

	// 応募
	ApplicationService ApplicationServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → CORS → SessionMiddleware → RateLimit(General)
//
// ログイン（POST /api/login）はセッション不要のため認証チェーンの外に置き、
// 代わりにIP単位のログイン専用レート制限を適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware(deps.Logger))

	var observer middleware.RequestObserver
	if deps.Collector != nil {
		observer = deps.Collector
	}
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, observer))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.CORSAllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	jobHandler := NewJobHandler(deps.JobService)
	appHandler := NewApplicationHandler(deps.ApplicationService)

	// --- 認証不要のルート ---

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if deps.Gatherer != nil {
		r.Get("/metrics", metrics.Handler(deps.Gatherer).ServeHTTP)
	}

	// ログインはIP単位の専用レート制限のみを通す
	r.With(deps.RateLimiter.LoginMiddleware()).Post("/api/login", authHandler.Login)
	r.Post("/api/logout", authHandler.Logout)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.PrincipalFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/api/me", authHandler.Me)

		// 求人カタログ
		r.Route("/api/jobs", func(r chi.Router) {
			r.Get("/", jobHandler.ListJobs)
			r.Post("/", jobHandler.CreateJob)

			// 求人単位の応募
			r.Route("/{jobID}/applications", func(r chi.Router) {
				r.Get("/", appHandler.ListJobApplications)
				r.Post("/", appHandler.CreateApplication)
			})
		})

		// 応募者本人の応募一覧
		r.Get("/api/user/applications", appHandler.ListMyApplications)

		// 応募のライフサイクル操作
		r.Route("/api/applications/{id}", func(r chi.Router) {
			r.Put("/", appHandler.UpdateStatus)
			r.Put("/progress", appHandler.UpdateInterviewRounds)
		})
	})

	return r
}
