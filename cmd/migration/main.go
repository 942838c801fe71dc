package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/matheusprado/erp-suplementos/internal/infrastructure/database"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	if err := database.RunMigrations(); err != nil {
		log.Fatalf("erro ao aplicar migrações: %v", err)
	}
}
