package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/filedemand/filedemand"
	"github.com/filedemand/filedemand/internal/config"
	"github.com/filedemand/filedemand/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "fdemand",
	Short: "File demand registry CLI",
	Long:  "CLI for materializing and reading the files and folders declared in a filedemand catalog.",

	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/fdemand/config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "registry root directory (overrides the config file)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (overrides the config file)")
}

// loadConfig reads the config file named by --config, or the default one if
// it exists, and applies the flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		if candidate := filepath.Join(configDir(), "config.yaml"); fileExists(candidate) {
			path = candidate
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.Root = root
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	return cfg, nil
}

// session is an open registry together with the logger that serves it.
type session struct {
	reg *filedemand.Registry
	cfg *config.Config
	log *logrus.Logger
}

// openSession opens the registry described by the config and declares the
// catalog objects. Read-only commands pass flush=false so that closing the
// session leaves the disk untouched. The caller closes the session.
func openSession(cmd *cobra.Command, flush bool) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	s, err := newSession(cmd, cfg, logger, flush)
	if err != nil {
		_ = logging.Close(logger)
		return nil, err
	}
	return s, nil
}

func newSession(cmd *cobra.Command, cfg *config.Config, logger *logrus.Logger, flush bool) (*session, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, filedemand.WithLogger(logger))
	if !flush {
		opts = append(opts, filedemand.WithoutFlush())
	}

	reg, err := filedemand.Open(cfg.Root, opts...)
	if err != nil {
		return nil, err
	}

	objs, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	if err := reg.Add(objs...); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"action":  cmd.Name(),
		"objects": len(objs),
	}).Debug("catalog loaded")

	return &session{reg: reg, cfg: cfg, log: logger}, nil
}

// close flushes the registry, releases the log file and keeps the first error.
func (s *session) close(err *error) {
	if cerr := s.reg.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("flush: %w", cerr)
	}
	if cerr := logging.Close(s.log); cerr != nil && *err == nil {
		*err = fmt.Errorf("close log: %w", cerr)
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fdemand")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "fdemand")
	}
	return ".fdemand"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
