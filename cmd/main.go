package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gocatalog/config"
	_ "gocatalog/docs" // Registro do spec swagger gerado
	"gocatalog/internal/pkg/hasher"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/session"

	// Camadas para Injeção de Dependências
	"gocatalog/internal/api/product" // Handlers
	"gocatalog/internal/api/router"  // Roteador central
	"gocatalog/internal/api/user"
	"gocatalog/internal/repository/productrepo" // Armazenamento em memória
	"gocatalog/internal/repository/userrepo"
	"gocatalog/internal/service/productservice" // Lógica de Negócio
	"gocatalog/internal/service/userservice"
)

// @title GoCatalog API
// @version 1.0
// @description Catálogo de produtos e identidades de usuário em memória, com sessões por token opaco.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoCatalog...")

	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	if err := godotenv.Load(); err != nil {
		// Sem .env não é fatal: as variáveis podem estar no ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 2. Infraestrutura de domínio (tudo em memória, nada de DB/Cache externo)

	// A. Capability de hashing de credenciais
	credentialHasher := hasher.NewBcrypt(cfg.BcryptCost)
	appLog.Debug("Hasher de credenciais inicializado.", nil)

	// B. Session Store (token opaco -> snapshot do usuário)
	sessions := session.NewStore()
	appLog.Debug("Session Store inicializado.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Montagem da Clean Architecture)
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios (Camada de Armazenamento)
	// Instâncias explícitas, injetadas — nunca singletons de processo.
	productRepo := productrepo.NewMemoryRepository(appLog)
	userRepo := userrepo.NewMemoryRepository(appLog)
	appLog.Debug("Repositórios em memória inicializados.", nil)

	// B. Serviços (Camada de Lógica de Negócio)
	productSvc := productservice.NewService(productRepo, appLog)
	userSvc := userservice.NewService(userRepo, credentialHasher, sessions, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	// C. Handlers (Camada de Apresentação)
	productHandler := product.NewHandler(productSvc, appLog)
	userHandler := user.NewHandler(userSvc, appLog)
	appLog.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(productHandler, userHandler, sessions, appLog)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor GoCatalog ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	// Lógica do Graceful Shutdown (captura de sinal)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
