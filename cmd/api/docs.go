package main

// @title           SurpriseVista API
// @version         1.0
// @description     Conversational commerce API for the SurpriseVista gift store

// @contact.name   API Support
// @contact.email  support@surprisevista.in

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT authentication header using the Bearer scheme. Example: "Bearer {token}"
