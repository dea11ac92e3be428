package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"replygen/app/client/gateway"
	"replygen/app/config"
	"replygen/app/service/completion"
	"replygen/app/service/controller"
	"replygen/app/service/mcpserver"
	"replygen/app/service/server"
	"replygen/app/tui"
	"replygen/app/util/mylog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	mylog.Preinit()

	root := &cobra.Command{
		Use:           "replygen",
		Short:         "Creative reply generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to config.yaml")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the completion gateway HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "tui",
			Short: "Run the terminal front end against a running gateway",
			RunE:  runTUI,
		},
		&cobra.Command{
			Use:   "mcp",
			Short: "Expose the completion gateway as an MCP tool over stdio",
			RunE:  runMCP,
		},
	)

	if err := root.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// setup builds the injector shared by all commands. The returned func
// releases everything setup acquired.
func setup(logToFile bool) (*do.Injector, context.Context, func()) {
	di := do.New()

	appCtx, cancel := context.WithCancel(context.Background())
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	var logOut io.Writer = os.Stderr
	var logFile *os.File
	if logToFile {
		if logFile, err = mylog.OpenFile(cfg); err != nil {
			log.Fatalf("log file open failed: %v", err)
		}
		logOut = logFile
	}

	if err = mylog.Init(cfg, logOut); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, completion.New)
	do.Provide(di, server.New)
	do.Provide(di, mcpserver.New)
	do.Provide(di, gateway.NewClient)
	do.Provide(di, controller.New)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		slog.Info("Shutting down...")

		cancel()
	}()

	return di, appCtx, func() {
		cancel()
		_ = di.Shutdown()
		if logFile != nil {
			_ = logFile.Close()
		}
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	di, appCtx, cleanup := setup(false)
	defer cleanup()

	slog.Info("Service started")

	return do.MustInvoke[*server.Service](di).Run(appCtx)
}

func runMCP(_ *cobra.Command, _ []string) error {
	// stdout carries the MCP protocol, logs stay on stderr
	di, _, cleanup := setup(false)
	defer cleanup()

	return do.MustInvoke[*mcpserver.Service](di).Run()
}

func runTUI(_ *cobra.Command, _ []string) error {
	di, appCtx, cleanup := setup(true)
	defer cleanup()

	cfg := do.MustInvoke[*config.Config](di)
	ctrl := do.MustInvoke[*controller.Service](di)

	_, err := tui.NewProgram(tui.New(appCtx, ctrl, cfg.Client.ExportDir)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	return nil
}
