package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config armazena todas as configurações do aplicativo GoCatalog.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Segurança (hashing de credenciais)
	BcryptCost int

	// Servidor HTTP
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Segurança
		BcryptCost: getIntEnv("BCRYPT_COST", bcrypt.DefaultCost),

		// 3. Servidor HTTP
		ReadTimeout:  getDurationEnv("HTTP_READ_TIMEOUT_SEC", 10) * time.Second,
		WriteTimeout: getDurationEnv("HTTP_WRITE_TIMEOUT_SEC", 10) * time.Second,
		IdleTimeout:  getDurationEnv("HTTP_IDLE_TIMEOUT_SEC", 60) * time.Second,
	}

	return cfg
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
