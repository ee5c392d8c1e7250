package main

import (
	"log"
	"net/http"

	"marwad-digital-menu/api-gateway/internal/gateway"
	"marwad-digital-menu/config"

	"github.com/rs/cors"
)

func main() {
	cfg := config.Load("8080")

	gw, err := gateway.NewGateway(gateway.Config{
		HubSvcURL:       cfg.HubSvcURL,
		AnalyticsSvcURL: cfg.AnalyticsSvcURL,
		FrontendDir:     config.GetEnv("FRONTEND_DIR", "./frontend"),
	}, &http.Client{})
	if err != nil {
		log.Fatal("Invalid upstream URL:", err)
	}

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	log.Printf("API Gateway starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
