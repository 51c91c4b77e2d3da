package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/RoyceAzure/lab/phonebook/internal/api"
	"github.com/RoyceAzure/lab/phonebook/internal/api/handler"
	"github.com/RoyceAzure/lab/phonebook/internal/api/router"
	"github.com/RoyceAzure/lab/phonebook/internal/appcontext"
	"github.com/RoyceAzure/lab/phonebook/internal/config"
	"github.com/RoyceAzure/lab/phonebook/internal/constants"
	"github.com/rs/zerolog/log"
)

// @title phonebook
// @version 1.0
// @description 個人通訊錄 REST API
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        Authorization
// @description                 Description for Authorization header: Type "Bearer" followed by a space and the token. Example: "Bearer {token}"

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init application")
		return
	}

	// 初始化 handler
	authHandler := handler.NewAuthHandler(app.AuthService)
	userHandler := handler.NewUserHandler(app.UserService)
	contactHandler := handler.NewContactHandler(app.ContactService)
	photoHandler := handler.NewPhotoHandler(app.PhotoService)

	server := api.NewServer(authHandler, userHandler, contactHandler, photoHandler)

	// 設置路由
	r := router.SetupRouter(server, app.TokenMaker, app.Logger, router.Options{
		AllowedOrigins: app.Cf.AllowedOrigins(),
		StaticDir:      app.Cf.StaticDir,
		AuthLimiter:    app.AuthLimiter,
		PrintRoutes:    app.Cf.IsDebug(),
	})

	// 設定服務器參數
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler: r,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		app.Logger.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error().Err(err).Msg("Server shutdown error")
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Application shutdown error")
		}

		shutDownCompleted <- struct{}{}
	}()

	// 啟動服務
	app.Logger.Info().Str("addr", srv.Addr).Msg("Server starting")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		app.Logger.Fatal().Err(err).Msg("Server stopped unexpectedly")
	}
	<-shutDownCompleted
	log.Info().Msg("closed completed")
}
