package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carecam.com/patient-chat/internal/api"
	"carecam.com/patient-chat/internal/config"
	"carecam.com/patient-chat/internal/core"
	"carecam.com/patient-chat/internal/llm"
	"carecam.com/patient-chat/internal/records"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if config.AppConfig.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	// Initialize the text-generation client once, per the configured provider
	var llmClient llm.Client
	switch config.AppConfig.LLMProvider {
	case "gemini":
		client, err := llm.NewGeminiClient(context.Background(), config.AppConfig.GeminiAPIKey, config.AppConfig.ChatModel)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		llmClient = client
	default:
		llmClient = llm.NewOpenAIClient(config.AppConfig.OpenAIAPIKey, config.AppConfig.ChatModel)
	}
	defer llmClient.Close()

	// Initialize record loader and chat service
	loader := records.NewLoader(config.AppConfig.DataDir)
	llmTimeout := time.Duration(config.AppConfig.LLMTimeoutSecs) * time.Second
	chatService := core.NewChatService(loader, llmClient, llmTimeout)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(chatService)
	router := api.NewRouter(apiHandler)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // must outlive the LLM call deadline
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give active connections time to finish before forcing the stop.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
