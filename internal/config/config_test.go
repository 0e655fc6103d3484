package config

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/technopolitica/company-employees/internal/paging"
)

func writeConfig(contents string) string {
	path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
	Expect(os.WriteFile(path, []byte(contents), 0o600)).To(Succeed())
	return path
}

var _ = Describe("Load", func() {
	It("returns the defaults without a file", func() {
		cfg, err := Load("")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(Defaults()))
		Expect(cfg.PagingLimits()).To(Equal(paging.DefaultLimits))
	})

	It("overlays the file on the defaults", func() {
		cfg, err := Load(writeConfig(`
server:
  port: 9090
  request_timeout: 3s
database:
  url: postgres://localhost/employees
paging:
  max_page_size: 25
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.Port).To(Equal(9090))
		Expect(cfg.Server.RequestTimeout).To(Equal(3 * time.Second))
		Expect(cfg.Server.ReadHeaderTimeout).To(Equal(Defaults().Server.ReadHeaderTimeout))
		Expect(cfg.Database.URL).To(Equal("postgres://localhost/employees"))
		Expect(cfg.PagingLimits()).To(Equal(paging.Limits{DefaultPageSize: 10, MaxPageSize: 25}))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("fails on a missing file", func() {
		_, err := Load(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("fails on malformed YAML", func() {
		_, err := Load(writeConfig("server: [1, 2"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Validate", func() {
	It("requires a database for postgres storage", func() {
		Expect(Defaults().Validate()).To(MatchError(ContainSubstring("database.url")))
	})

	It("does not need a database for memory storage", func() {
		cfg := Defaults()
		cfg.Server.Storage = StorageMemory
		Expect(cfg.Validate()).To(Succeed())
	})

	It("reports every problem", func() {
		cfg := Defaults()
		cfg.Server.Storage = "cassandra"
		cfg.Server.Port = 70000
		cfg.Paging.DefaultPageSize = 60
		err := cfg.Validate()
		Expect(err).To(MatchError(ErrInvalidConfig))
		Expect(err).To(MatchError(ContainSubstring("server.port")))
		Expect(err).To(MatchError(ContainSubstring("server.storage")))
		Expect(err).To(MatchError(ContainSubstring("paging.max_page_size")))
	})
})
