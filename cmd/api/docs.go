package main

// @title           ERP Suplementos API
// @version         1.0
// @description     API do sistema de retaguarda para loja de suplementos

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
