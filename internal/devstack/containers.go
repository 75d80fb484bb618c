// containers.go
//
// Reader community data service for the This Is Us series
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of This-Is-Us-Series.
// This-Is-Us-Series is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// This-Is-Us-Series is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with This-Is-Us-Series.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package devstack

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Defaults used by the stack's databases
const (
	DatabaseName = "community"
	DatabaseUser = "community"
	DatabasePass = "community-pass"
)

// Stack is a set of throwaway backing services for local runs and integration tests
type Stack struct {
	Network     *testcontainers.DockerNetwork
	DBContainer testcontainers.Container
	Redis       testcontainers.Container

	DBType    string
	DBHost    string
	DBPort    string
	RedisAddr string
}

type databaseSpec struct {
	image   string
	port    string
	dataDir string
	env     map[string]string
	wait    func(nat.Port) wait.Strategy
}

func specFor(dbType string) (databaseSpec, error) {
	switch dbType {
	case "mysql", "mariadb":
		return databaseSpec{
			image:   getEnv("DB_IMAGE", "mariadb:11"),
			port:    "3306",
			dataDir: "/var/lib/mysql",
			env: map[string]string{
				"MARIADB_DATABASE":      DatabaseName,
				"MARIADB_USER":          DatabaseUser,
				"MARIADB_PASSWORD":      DatabasePass,
				"MARIADB_ROOT_PASSWORD": DatabasePass,
			},
			wait: func(p nat.Port) wait.Strategy {
				return wait.ForAll(
					wait.ForListeningPort(p),
					wait.ForLog("ready for connections").WithOccurrence(2),
				).WithStartupTimeoutDefault(90 * time.Second)
			},
		}, nil
	case "postgres", "postgresql":
		return databaseSpec{
			image:   getEnv("DB_IMAGE", "postgres:17-alpine"),
			port:    "5432",
			dataDir: "/var/lib/postgresql/data",
			env: map[string]string{
				"POSTGRES_DB":       DatabaseName,
				"POSTGRES_USER":     DatabaseUser,
				"POSTGRES_PASSWORD": DatabasePass,
			},
			wait: func(p nat.Port) wait.Strategy {
				return wait.ForAll(
					wait.ForListeningPort(p),
					wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				).WithStartupTimeoutDefault(60 * time.Second)
			},
		}, nil
	}
	return databaseSpec{}, fmt.Errorf("no container image for database type: %s", dbType)
}

// Start launches a database of dbType and, when withRedis is set, a Redis server
func Start(ctx context.Context, dbType string, withRedis bool) (*Stack, error) {
	stack := &Stack{DBType: dbType}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	stack.Network = nw

	if err := stack.startDatabase(ctx); err != nil {
		stack.Terminate(ctx)
		return nil, err
	}

	if withRedis {
		if err := stack.startRedis(ctx); err != nil {
			stack.Terminate(ctx)
			return nil, err
		}
	}

	return stack, nil
}

// StartRedis launches only a Redis server
func StartRedis(ctx context.Context) (*Stack, error) {
	stack := &Stack{}
	if err := stack.startRedis(ctx); err != nil {
		stack.Terminate(ctx)
		return nil, err
	}
	return stack, nil
}

func (s *Stack) startDatabase(ctx context.Context) error {
	spec, err := specFor(s.DBType)
	if err != nil {
		return err
	}

	tcpPort, err := nat.NewPort("tcp", spec.port)
	if err != nil {
		return fmt.Errorf("failed to create DB port: %w", err)
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:              spec.image,
			ExposedPorts:       []string{string(tcpPort)},
			Env:                spec.env,
			WaitingFor:         spec.wait(tcpPort),
			Networks:           []string{s.Network.Name},
			HostConfigModifier: tmpfsData(spec.dataDir),
		},
		Started: true,
	})
	if err != nil {
		return fmt.Errorf("failed to start database: %w", err)
	}
	s.DBContainer = dbContainer

	host, err := dbContainer.Host(ctx)
	if err != nil {
		return fmt.Errorf("failed to get database host: %w", err)
	}
	mapped, err := dbContainer.MappedPort(ctx, tcpPort)
	if err != nil {
		return fmt.Errorf("failed to get database port: %w", err)
	}
	s.DBHost = host
	s.DBPort = mapped.Port()

	return nil
}

func (s *Stack) startRedis(ctx context.Context) error {
	tcpPort, err := nat.NewPort("tcp", "6379")
	if err != nil {
		return fmt.Errorf("failed to create Redis port: %w", err)
	}

	req := testcontainers.ContainerRequest{
		Image:        getEnv("REDIS_IMAGE", "redis:7-alpine"),
		ExposedPorts: []string{string(tcpPort)},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	if s.Network != nil {
		req.Networks = []string{s.Network.Name}
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return fmt.Errorf("failed to start redis: %w", err)
	}
	s.Redis = redisContainer

	host, err := redisContainer.Host(ctx)
	if err != nil {
		return fmt.Errorf("failed to get redis host: %w", err)
	}
	mapped, err := redisContainer.MappedPort(ctx, tcpPort)
	if err != nil {
		return fmt.Errorf("failed to get redis port: %w", err)
	}
	s.RedisAddr = fmt.Sprintf("%s:%s", host, mapped.Port())

	return nil
}

// Config returns a service configuration pointed at the stack
func (s *Stack) Config() *config.Config {
	return &config.Config{
		Port:              "3000",
		LogLevel:          "info",
		DBType:            s.DBType,
		DBHost:            s.DBHost,
		DBPort:            s.DBPort,
		DBDatabase:        DatabaseName,
		DBUser:            DatabaseUser,
		DBPassword:        DatabasePass,
		DBConnectionLimit: 10,
		DBConnectAttempts: 20,
		AuthMode:          config.AuthModeJWT,
		TermsVersion:      1,
		SiteTimezone:      "UTC",
		EditWindow:        time.Hour,
		RedisAddr:         s.RedisAddr,
		StatsCacheTTL:     30 * time.Second,
	}
}

// Env renders the stack as environment variables for the server
func (s *Stack) Env() map[string]string {
	env := map[string]string{}
	if s.DBContainer != nil {
		env["DB_TYPE"] = s.DBType
		env["DB_HOST"] = s.DBHost
		env["DB_PORT"] = s.DBPort
		env["DB_DATABASE"] = DatabaseName
		env["DB_USER"] = DatabaseUser
		env["DB_PASSWORD"] = DatabasePass
	}
	if s.RedisAddr != "" {
		env["REDIS_ADDR"] = s.RedisAddr
	}
	return env
}

// Terminate stops every container and removes the network
func (s *Stack) Terminate(ctx context.Context) []error {
	var errs []error
	if s.Redis != nil {
		if err := s.Redis.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to terminate redis: %w", err))
		}
	}
	if s.DBContainer != nil {
		if err := s.DBContainer.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to terminate database: %w", err))
		}
	}
	if s.Network != nil {
		if err := s.Network.Remove(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove network: %w", err))
		}
	}
	return errs
}

// tmpfsData keeps database files in memory; the containers are throwaway
func tmpfsData(dir string) func(*container.HostConfig) {
	return func(hostConfig *container.HostConfig) {
		hostConfig.Tmpfs = map[string]string{dir: "rw"}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
