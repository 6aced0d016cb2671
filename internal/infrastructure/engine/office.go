package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"docgate/pkg/logger"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultWaitDelay = 2 * time.Second
	profileDirName   = ".engine-profile"
)

// Office drives a LibreOffice compatible binary in headless mode.
type Office struct {
	binary    string
	timeout   time.Duration
	waitDelay time.Duration
	extraArgs []string
}

func NewOffice(cfg Config) *Office {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	waitDelay := time.Duration(cfg.WaitDelay) * time.Millisecond
	if waitDelay <= 0 {
		waitDelay = defaultWaitDelay
	}

	return &Office{
		binary:    cfg.Binary,
		timeout:   timeout,
		waitDelay: waitDelay,
		extraArgs: cfg.ExtraArgs,
	}
}

// Convert renders inputPath to PDF inside outDir. The engine runs in its own
// process group which is killed when the timeout or ctx expires.
func (o *Office) Convert(ctx context.Context, inputPath, outDir string) error {
	runCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, o.binary, o.args(inputPath, outDir)...)
	cmd.Dir = outDir
	cmd.Env = append(os.Environ(), "HOME="+outDir)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = o.waitDelay
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		return killProcessGroup(cmd)
	}

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err == nil {
		logger.Debug("conversion engine finished", "input", filepath.Base(inputPath),
			"elapsed_ms", elapsed.Milliseconds())

		return nil
	}

	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %w", ErrEngineCanceled, ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		logger.Error("conversion engine timed out", "timeout", o.timeout.String(),
			"stderr", strings.TrimSpace(stderr.String()))

		return fmt.Errorf("%w after %s", ErrEngineTimeout, o.timeout)
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrEngineUnavailable, err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Error("conversion engine exited with failure", "code", exitErr.ExitCode(),
			"input", filepath.Base(inputPath), "stderr", strings.TrimSpace(stderr.String()))

		return &ExitError{
			Code:   exitErr.ExitCode(),
			Stderr: strings.TrimSpace(stderr.String()),
			Stdout: strings.TrimSpace(stdout.String()),
		}
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrEngineUnavailable, err)
	}

	return fmt.Errorf("%w: %w", ErrEngineFailed, err)
}

func (o *Office) args(inputPath, outDir string) []string {
	profile := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(outDir, profileDirName))}

	args := []string{
		"--headless",
		"--norestore",
		"--nologo",
		"--nolockcheck",
		"--nodefault",
		"-env:UserInstallation=" + profile.String(),
	}
	args = append(args, o.extraArgs...)

	return append(args, "--convert-to", "pdf", "--outdir", outDir, inputPath)
}

// Available reports whether the engine binary can be resolved.
func (o *Office) Available() error {
	if _, err := exec.LookPath(o.binary); err != nil {
		return fmt.Errorf("%w: %w", ErrEngineUnavailable, err)
	}

	return nil
}
