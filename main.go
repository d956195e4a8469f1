package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/project-showcase-backend/api"
	"github.com/rpupo63/project-showcase-backend/config"
	"github.com/rpupo63/project-showcase-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.With().Timestamp().Logger()

	c := config.New()

	// Deployment secrets can live in SSM Parameter Store; they win over .env
	if prefix := config.GetString(c, "SSM_PARAMETER_PREFIX", ""); prefix != "" {
		if err := config.MergeFromSSM(context.Background(), c, prefix); err != nil {
			fmt.Printf("Error loading SSM parameters: %v\n", err)
			os.Exit(1)
		}
	}

	region := config.GetString(c, "AWS_REGION", "us-east-1")
	if region == "auto" {
		region = "us-east-1"
	}

	store, err := storage.NewS3Store(context.Background(), storage.S3Config{
		Endpoint:       config.GetString(c, "AWS_ENDPOINT_URL_S3", ""),
		Region:         region,
		AccessKeyID:    config.GetString(c, "AWS_ACCESS_KEY_ID", ""),
		SecretKey:      config.GetString(c, "AWS_SECRET_ACCESS_KEY", ""),
		ForcePathStyle: config.GetBool(c, "S3_FORCE_PATH_STYLE", true),
	})
	if err != nil {
		fmt.Printf("Error initializing object store: %v\n", err)
		os.Exit(1)
	}

	buckets := storage.Buckets{
		Submissions: config.GetString(c, "SUBMISSIONS_BUCKET", "showcase-submissions"),
		Approved:    config.GetString(c, "APPROVED_BUCKET", "showcase-approved"),
		Images:      config.GetString(c, "IMAGES_BUCKET", "showcase-images"),
	}
	imagesBaseURL := config.GetString(c, "IMAGES_PUBLIC_BASE_URL",
		fmt.Sprintf("https://%s.fly.storage.tigris.dev", buckets.Images))

	repo := storage.NewSubmissionRepo(store, buckets, imagesBaseURL)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(repo, c)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
