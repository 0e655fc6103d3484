package testutils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"time"

	. "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega/gexec"
)

type APIServer struct {
	BaseURL *url.URL
	session *gexec.Session
}

func findOpenPort() (addr *net.TCPAddr, err error) {
	addr, err = net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return
	}
	listener, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return
	}
	defer listener.Close()
	addr = listener.Addr().(*net.TCPAddr)
	return
}

// waitUntilHealthy polls /health until it answers 200, the process exits or
// ctx is done.
func (server APIServer) waitUntilHealthy(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	var lastErr error
	for {
		select {
		case <-ticker.C:
			if code := server.session.ExitCode(); code != -1 {
				return fmt.Errorf("server exited early with code %d", code)
			}
			lastErr = server.pingHealthEndpoint()
			if lastErr == nil {
				return nil
			}
		case <-ctx.Done():
			return fmt.Errorf("cancelled (%s), last error: %w", context.Cause(ctx), lastErr)
		}
	}
}

func (server APIServer) pingHealthEndpoint() (err error) {
	healthEndpoint := server.BaseURL.JoinPath("health")
	res, err := http.Get(healthEndpoint.String())
	if err != nil {
		return
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("got unexpected http status code in response: %s", res.Status)
	}
	return
}

func StartAPIServer(ctx context.Context, binaryPath string, dbConnectionString string) (server APIServer, err error) {
	addr, err := findOpenPort()
	if err != nil {
		err = fmt.Errorf("failed to find open port: %w", err)
		return
	}
	serverCmd := exec.Command(
		binaryPath,
		"--db-url", dbConnectionString,
		"--log-format", "console",
		"serve",
		"--port", fmt.Sprint(addr.Port),
	)
	session, err := gexec.Start(serverCmd, GinkgoWriter, GinkgoWriter)
	if err != nil {
		err = fmt.Errorf("failed to start server: %w", err)
		return
	}
	baseURL, err := url.Parse(fmt.Sprintf("http://%s", addr.String()))
	if err != nil {
		err = fmt.Errorf("failed to parse base URL: %w", err)
		return
	}
	server = APIServer{
		BaseURL: baseURL,
		session: session,
	}
	err = server.waitUntilHealthy(ctx)
	return
}

func (server APIServer) Terminate() {
	server.session.Terminate().Wait()
}
