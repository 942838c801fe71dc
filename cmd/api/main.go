package main

import (
	"log"

	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	app, err := NewApp()
	if err != nil {
		log.Fatalf("erro ao montar aplicação: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("erro ao executar aplicação: %v", err)
	}
}
