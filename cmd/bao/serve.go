package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/baoverify/bao/configuration"
	"github.com/baoverify/bao/registry/handlers"
	"github.com/baoverify/bao/registry/storage"
	"github.com/baoverify/bao/storagedriver"
	"github.com/baoverify/bao/storagedriver/filesystem"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve [config]",
	Short: "run the bao HTTP blob store",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := serveConfigPath
		if len(args) == 1 {
			configPath = args[0]
		}
		if configPath == "" {
			return fmt.Errorf("no configuration given: pass it as an argument or with --config")
		}
		return runServe(configPath)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "path to a bao server configuration file (alternative to the positional argument)")
}

func runServe(configPath string) error {
	f, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("opening configuration: %w", err)
	}
	defer f.Close()

	config, err := configuration.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing configuration: %w", err)
	}

	if level, err := logrus.ParseLevel(string(config.Log.Level)); err == nil {
		logrus.SetLevel(level)
	}
	if config.Log.Formatter == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetReportCaller(config.Log.ReportCaller)

	driver, err := newStorageDriver(config.Storage)
	if err != nil {
		return fmt.Errorf("constructing storage driver: %w", err)
	}

	blobs := storage.NewBlobStore(driver)
	app := handlers.NewApp(blobs, config.Storage.MaxBlobSize())

	addr := config.HTTP.Addr
	if addr == "" {
		addr = ":5050"
	}
	network := config.HTTP.Net
	if network == "" {
		network = "tcp"
	}

	ln, err := net.Listen(network, addr)
	if err != nil {
		return fmt.Errorf("listening on %s %s: %w", network, addr, err)
	}

	logrus.Infof("listening on %s", addr)
	return http.Serve(ln, app.Handler())
}

func newStorageDriver(storageConfig configuration.Storage) (storagedriver.StorageDriver, error) {
	switch storageConfig.Type() {
	case "filesystem":
		rootDirectory, _ := storageConfig.Parameters()["rootdirectory"].(string)
		if rootDirectory == "" {
			rootDirectory = "/var/lib/bao"
		}
		return filesystem.New(filesystem.DriverParameters{RootDirectory: rootDirectory})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", storageConfig.Type())
	}
}
