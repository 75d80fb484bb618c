package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/devstack"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/logger"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "db", "mysql", "database type: mysql, postgres or sqlserver")
	var withRedis bool
	flag.BoolVar(&withRedis, "redis", true, "also start a redis server")
	var tokenUser string
	flag.StringVar(&tokenUser, "token", "", "print a development bearer token for this user id (needs JWT_SECRET)")
	flag.Parse()

	usage := `
Run throwaway backing services for the community data service.

Usage:

devstack [-h] [-f ENV_FILE_PATH] [-db TYPE] [-redis=false] [-token USER_ID]

ENV_FILE_PATH: path to the .env file

example
  devstack -db postgres -token reader-1
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logger.New("info")

	if envFilename != "" {
		log.Info().Str("file", envFilename).Msg("Loading environment variables")
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatal().Err(err).Msg("Failed to load environment variables")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	stack, err := devstack.Start(ctx, dbType, withRedis)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start containers")
	}

	// Print the environment the server needs
	env := stack.Env()
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, env[k])
	}

	if tokenUser != "" {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			log.Warn().Msg("JWT_SECRET is not set, no token issued")
		} else {
			token, err := services.NewJWTAuthenticator(secret).Issue(tokenUser, "user", 24*time.Hour)
			if err != nil {
				log.Error().Err(err).Msg("Failed to issue token")
			} else {
				fmt.Printf("Authorization: Bearer %s\n", token)
			}
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigs
	log.Info().Str("signal", sig.String()).Msg("Terminating containers")
	for _, err := range stack.Terminate(context.Background()) {
		log.Error().Err(err).Msg("Terminate failed")
	}
}
