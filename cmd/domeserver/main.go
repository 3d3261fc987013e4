package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/idralyuk/GradienTea-sub001/internal/anim"
	"github.com/idralyuk/GradienTea-sub001/internal/color"
	"github.com/idralyuk/GradienTea-sub001/internal/config"
	"github.com/idralyuk/GradienTea-sub001/internal/dmx"
	"github.com/idralyuk/GradienTea-sub001/internal/dome"
	"github.com/idralyuk/GradienTea-sub001/internal/logging"
	"github.com/idralyuk/GradienTea-sub001/internal/server"
	"github.com/idralyuk/GradienTea-sub001/internal/show"
)

func main() {
	cfgPath := flag.String("config", "", "config file (JSON); DOME_* variables override it")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)
	logging.SetLogger(logger)

	if err := run(cfg); err != nil {
		logger.Error("domeserver stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	log := logging.Logger()

	if err := ensureHostKey(cfg.Server.HostKey); err != nil {
		return fmt.Errorf("host key: %w", err)
	}

	d, err := dome.New(cfg.Dome)
	if err != nil {
		return err
	}
	if !cfg.Dome.FitsPanelHeight() {
		log.Warn("panels exceed max height",
			"panel_height", cfg.Dome.PanelHeight(),
			"max_panel_height", cfg.Dome.MaxPanelHeight)
	}

	layout, err := d.Layout(cfg.Output.PixelsPerFace, cfg.Output.StartChannel)
	if err != nil {
		return err
	}
	comp, err := color.CompositorByName(cfg.Show.Compositor)
	if err != nil {
		return err
	}
	renderer, err := dmx.NewRenderer(layout.Pixels(), comp)
	if err != nil {
		return err
	}
	a, err := anim.ByName(cfg.Show.Animation, layout)
	if err != nil {
		return err
	}
	loop, err := show.New(a, renderer, cfg.Show.FrameRate, cfg.Show.Period())
	if err != nil {
		return err
	}
	log.Info("dome ready",
		"frequency", cfg.Dome.Frequency,
		"lighted_faces", len(layout.Faces),
		"pixels", len(renderer.Pixels()),
		"animation", cfg.Show.Animation,
		"frames_per_cycle", loop.FramesPerCycle())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sshServer := server.NewSSHServer(cfg.Server.Addr, cfg.Server.HostKey, loop, renderer.Pixels())

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		if err != nil {
			errOnce.Do(func() { firstErr = err })
		}
		cancel()
	}
	wg.Add(2)
	go func() {
		defer wg.Done()
		fail(loop.Run(ctx))
	}()
	go func() {
		defer wg.Done()
		fail(sshServer.Serve(ctx))
	}()
	log.Info("monitor with: ssh -t -p <port> localhost", "addr", cfg.Server.Addr)
	wg.Wait()
	return firstErr
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	logging.Logger().Info("generating new host key", "path", path)
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
