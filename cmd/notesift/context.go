package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"notesift/internal/config"
	"notesift/internal/logging"
	"notesift/internal/services/notesapi"
	"notesift/internal/session"
	"notesift/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) openStore() (*session.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return session.Open(cfg)
}

func (c *commandContext) newBackend() (*notesapi.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return notesapi.NewClient(
		cfg.Backend.BaseURL,
		notesapi.WithTimeout(time.Duration(cfg.Backend.TimeoutSeconds)*time.Second),
	), nil
}

// withSession opens the store, loads (or creates) the active session, hands
// it to fn, and persists the session afterwards when fn succeeds.
func (c *commandContext) withSession(ctx context.Context, create bool, fn func(*session.Store, *session.Session) error) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.Current(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		if !create {
			return fmt.Errorf("no active session; run 'notesift fetch' to start one")
		}
		sess, err = store.Create(ctx)
		if err != nil {
			return err
		}
	}

	if err := fn(store, sess); err != nil {
		return err
	}
	return store.Save(ctx, sess)
}

// withLockedSession additionally takes the cross-process lock for commands
// that mutate state.
func (c *commandContext) withLockedSession(ctx context.Context, create bool, fn func(*session.Store, *session.Session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock, err := session.AcquireLock(cfg.LockPath())
	if err != nil {
		return err
	}
	defer lock.Release()

	return c.withSession(ctx, create, fn)
}

// newController builds a workflow controller seeded from the session state.
func (c *commandContext) newController(sess *session.Session, opts ...workflow.Option) (*workflow.Controller, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	backend, err := c.newBackend()
	if err != nil {
		return nil, err
	}
	base := []workflow.Option{
		workflow.WithState(sess.State),
		workflow.WithLogger(c.ensureLogger()),
		workflow.WithWorkers(cfg.Workflow.Workers),
	}
	return workflow.New(backend, append(base, opts...)...), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
