package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"callsheet/internal/config"
	"callsheet/internal/ipc"
)

// commandContext carries the lazily-loaded config and socket resolution
// shared by every subcommand. Config loads at most once per invocation.
type commandContext struct {
	socketFlag *string
	configFlag *string

	loadOnce  sync.Once
	config    *config.Config
	configErr error
}

func newCommandContext(socketFlag, configFlag *string) *commandContext {
	return &commandContext{socketFlag: socketFlag, configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.loadOnce.Do(func() {
		path := ""
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err == nil {
			err = cfg.EnsureDirectories()
		}
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// configValue returns the loaded config, or nil when loading failed. Callers
// that need the error use ensureConfig.
func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) socketPath() string {
	if c.socketFlag != nil {
		if flag := strings.TrimSpace(*c.socketFlag); flag != "" {
			return flag
		}
	}
	if cfg := c.configValue(); cfg != nil {
		return cfg.SocketPath()
	}
	return ""
}

// withClient dials the daemon socket, runs fn, and closes the connection.
func (c *commandContext) withClient(fn func(*ipc.Client) error) error {
	socket := c.socketPath()
	client, err := ipc.Dial(socket)
	if err != nil {
		return wrapDialError(err, socket)
	}
	defer client.Close()
	return fn(client)
}

func wrapDialError(err error, socket string) error {
	if errors.Is(err, syscall.ENOENT) || os.IsNotExist(err) {
		return fmt.Errorf("connect to daemon: socket %s not found; start the daemon with `callsheet start`", socket)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("connect to daemon: socket %s refused the connection; verify the daemon is running", socket)
	}
	return fmt.Errorf("connect to daemon: %w", err)
}

// shouldSkipConfig reports whether the command or any ancestor opted out of
// config loading via the skipConfigLoad annotation.
func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
