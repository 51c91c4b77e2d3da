package router

import (
	"net/http"

	_ "github.com/RoyceAzure/lab/phonebook/docs"
	"github.com/RoyceAzure/lab/phonebook/internal/api"
	m "github.com/RoyceAzure/lab/phonebook/internal/api/middleware"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/auth/token"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AllowedOrigins []string
	// StaticDir 前端 build 目錄, 空字串表示不提供
	StaticDir string
	// AuthLimiter 限制登入與註冊, nil 表示不限流
	AuthLimiter ratelimit.Limiter
	// PrintRoutes 啟動時印出路由樹
	PrintRoutes bool
}

func SetupRouter(server *api.Server, tokenMaker token.Maker, logger *zerolog.Logger, opts Options) *chi.Mux {
	if logger == nil {
		logger = &log.Logger
	}
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", m.RequestIDHeader},
		ExposedHeaders:   []string{m.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(m.AuthPayloadMiddleware(tokenMaker))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger 文檔
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler())

	// API 路由
	r.Route("/api", func(r chi.Router) {
		//Auth相關路由
		r.Group(func(r chi.Router) {
			if opts.AuthLimiter != nil {
				r.Use(m.NewRateLimitMiddleware(opts.AuthLimiter))
			}
			r.Post("/auth/login", server.AuthHandler.Login)
			r.Post("/users/register", server.UserHandler.Register)
		})

		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", server.ContactHandler.List)
				r.Post("/", server.ContactHandler.Create)
				r.Get("/search", server.ContactHandler.Search)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", server.ContactHandler.Get)
					r.Put("/", server.ContactHandler.Update)
					r.Delete("/", server.ContactHandler.Delete)

					r.Post("/phonenumbers", server.ContactHandler.AddPhoneNumber)
					r.Put("/phonenumbers/{phoneId}", server.ContactHandler.UpdatePhoneNumber)
					r.Patch("/phonenumbers/{phoneId}", server.ContactHandler.UpdatePhoneNumber)
					r.Delete("/phonenumbers/{phoneId}", server.ContactHandler.DeletePhoneNumber)

					r.Post("/photo", server.PhotoHandler.SetContactPhoto)
					r.Get("/photo", server.PhotoHandler.GetContactPhoto)
					r.Delete("/photo", server.PhotoHandler.RemoveContactPhoto)
				})
			})

			r.Route("/contact_photos", func(r chi.Router) {
				r.Post("/uploadfile", server.PhotoHandler.UploadFile)
				r.Get("/retrievefile/{name}", server.PhotoHandler.RetrieveFile)
				r.Delete("/deletefile/{name}", server.PhotoHandler.DeleteFile)
			})
		})
	})

	if opts.StaticDir != "" {
		r.NotFound(newSPAHandler(opts.StaticDir).ServeHTTP)
	}

	if opts.PrintRoutes {
		// 在設置完所有路由後打印路由樹
		err := chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			logger.Debug().Str("method", method).Str("route", route).Msg("route")
			return nil
		})
		if err != nil {
			logger.Warn().Err(err).Msg("walk routes")
		}
	}
	return r
}
