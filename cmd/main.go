package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mcpmyapi-backend/internal/config"
	"mcpmyapi-backend/internal/handler"
	"mcpmyapi-backend/internal/llm"
	"mcpmyapi-backend/internal/publisher"
	"mcpmyapi-backend/internal/service"
	"mcpmyapi-backend/internal/storage"
	"mcpmyapi-backend/internal/tools"
	"mcpmyapi-backend/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// 初始化存储
	store := newStore(cfg)
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.Init(initCtx); err != nil {
		cancel()
		logger.Fatalf("Failed to init storage: %v", err)
	}
	cancel()

	// 初始化模型客户端和外部依赖
	client := llm.NewOpenAIClient(cfg.OpenAI)
	pub := publisher.NewClient(cfg.Publisher.Endpoint, cfg.Publisher.Timeout)
	notifier := publisher.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.Timeout)

	// 初始化服务
	conversations := service.NewConversationService(store)
	interpreter := service.NewQueryInterpreter(client)
	pipeline := service.NewPipeline(client, pub)
	registry := tools.NewRegistry(pub)
	agents := service.NewAgentService(
		conversations,
		interpreter,
		pipeline,
		client,
		registry,
		notifier,
		cfg.Agent.MaxHistoryMessages,
		cfg.Agent.RecursionLimit,
	)

	// 初始化处理器
	chatHandler := handler.NewChatHandler(agents)
	systemHandler := handler.NewSystemHandler()

	// 创建路由
	router := setupRouter(cfg, chatHandler, systemHandler)

	// 创建HTTP服务器
	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// 启动服务器
	go func() {
		logger.Infof("服务器启动在端口 %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待信号优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务器正在关闭...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("服务器关闭失败: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Errorf("存储关闭失败: %v", err)
	}
	logger.Info("服务器已关闭")
}

// newStore 按配置选择存储实现，默认 mongo
func newStore(cfg *config.Config) storage.Store {
	switch cfg.Storage.Type {
	case "memory":
		logger.Info("使用内存存储")
		return storage.NewMemoryStore()
	default:
		logger.Infof("使用 MongoDB 存储: %s", cfg.Mongo.Database)
		return storage.NewMongoStore(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Timeout)
	}
}

func setupRouter(cfg *config.Config, chatHandler *handler.ChatHandler, systemHandler *handler.SystemHandler) *gin.Engine {
	// 设置gin模式
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CORS配置
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// 基础路由
	router.GET("/", systemHandler.Root)
	router.GET("/test", systemHandler.Test)
	router.GET("/health", systemHandler.Health)
	router.GET("/furniture/:type/:color", systemHandler.Furniture)

	// 智能体路由
	router.POST("/chat", chatHandler.Chat)
	router.POST("/conversation_agent", chatHandler.ConversationAgent)

	return router
}
