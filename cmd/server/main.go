package main

import (
	"github.com/J-Liu7/waterlily/internal/config"
	"github.com/J-Liu7/waterlily/internal/database"
	"github.com/J-Liu7/waterlily/internal/handlers"
	"github.com/J-Liu7/waterlily/internal/logging"
	"github.com/J-Liu7/waterlily/internal/middleware"
	"github.com/J-Liu7/waterlily/internal/services"

	_ "github.com/J-Liu7/waterlily/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Waterlily Survey API
// @version         1.0
// @description     Survey authoring and response collection API
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logging.Init(cfg.Logging)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	db := database.Connect(cfg, log)
	database.AutoMigrate(db, log)

	authService := services.NewAuthService(db, cfg.Auth.JWTSecret)
	surveyService := services.NewSurveyService(db)
	responseService := services.NewResponseService(db)

	authHandler := handlers.NewAuthHandler(authService)
	surveyHandler := handlers.NewSurveyHandler(surveyService, log)
	responseHandler := handlers.NewResponseHandler(responseService, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		surveys := api.Group("/surveys")
		{
			surveys.GET("", surveyHandler.ListSurveys)
			surveys.GET("/:id", surveyHandler.GetSurvey)

			authed := surveys.Group("")
			authed.Use(middleware.JWTAuth(authService))
			{
				authed.POST("", surveyHandler.CreateSurvey)
				authed.DELETE("/:id", surveyHandler.DeactivateSurvey)
				authed.POST("/:id/responses", responseHandler.SubmitResponse)
				authed.GET("/responses/my", responseHandler.ListMyResponses)
				authed.GET("/responses/:id", responseHandler.GetResponse)
			}
		}
	}

	addr := ":" + cfg.Server.Port
	log.Info("server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("failed to run server", zap.Error(err))
	}
}
