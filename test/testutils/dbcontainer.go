package testutils

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/docker/go-connections/nat"
	. "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega/gexec"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const binaryPackage = "github.com/technopolitica/company-employees/cmd/company-employees"

type DBServer struct {
	container        *postgres.PostgresContainer
	ConnectionString string
}

var dbConfig = struct {
	Username string
	Password string
	DBName   string
}{
	Username: "postgres",
	Password: "postgres",
	DBName:   "test",
}

func newConnectionString(host string, port nat.Port) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", dbConfig.Username, dbConfig.Password, host, port.Int(), dbConfig.DBName)
}

var defaultPGPort = nat.Port("5432/tcp")

func StartDBServer(ctx context.Context) (server DBServer, err error) {
	container, err := postgres.RunContainer(ctx,
		postgres.WithDatabase(dbConfig.DBName),
		postgres.WithUsername(dbConfig.Username),
		postgres.WithPassword(dbConfig.Password),
		testcontainers.WithImage("docker.io/postgres:14-alpine"),
		testcontainers.WithWaitStrategy(wait.ForSQL(defaultPGPort, "pgx", newConnectionString)),
	)
	if err != nil {
		err = fmt.Errorf("failed to start database server: %w", err)
		return
	}

	host, err := container.Host(ctx)
	if err != nil {
		err = fmt.Errorf("failed to determine host name: %w", err)
		return
	}
	port, err := container.MappedPort(ctx, defaultPGPort)
	if err != nil {
		err = fmt.Errorf("failed to determine port: %w", err)
		return
	}

	server = DBServer{container: container, ConnectionString: newConnectionString(host, port)}
	return
}

// MigrateToLatest runs the migrate subcommand of binaryPath against the server.
func (dbServer DBServer) MigrateToLatest(ctx context.Context, binaryPath string) (err error) {
	migrateCmd := exec.Command(
		binaryPath,
		"--db-url", dbServer.ConnectionString,
		"migrate",
		"--to", "latest")
	session, err := gexec.Start(migrateCmd, GinkgoWriter, GinkgoWriter)
	if err != nil {
		err = fmt.Errorf("failed to run command: %w", err)
		return
	}
	select {
	case <-session.Exited:
		if session.ExitCode() != 0 {
			err = fmt.Errorf("exited with non-zero code %d", session.ExitCode())
			return
		}
	case <-ctx.Done():
		err = fmt.Errorf("context cancelled: %w", context.Cause(ctx))
		return
	}
	return
}

func (dbServer DBServer) Terminate(ctx context.Context) error {
	return dbServer.container.Terminate(ctx)
}

func BuildBinary() (binaryPath string, err error) {
	binaryPath, err = gexec.Build(binaryPackage)
	if err != nil {
		err = fmt.Errorf("failed to build binary: %w", err)
	}
	return
}
