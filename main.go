// Command tutorial-camera renders a cube through a camera moved with the
// keyboard (W/A/S/D/Q/E, keypad +/- to roll, Home to reset, Escape to quit)
// and turned with the mouse.
package main

//go:generate ./shaders/compile.sh

import (
	"fmt"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/ibd1279/vks"
	"github.com/ibd1279/vks-examples/tutorial-camera/vkobj"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	runtime.LockOSThread()
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// Main function.
func main() {
	cfg, err := ParseConfig(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	vkobj.SetLogger(log.Named("vkobj"))

	// closer runs its cleanups on its own goroutine, so only the signal
	// handoff is bound there. Teardown happens in run, on the main thread.
	if err := run(cfg, log); err != nil {
		log.Error("tutorial-camera failed", zap.Error(err))
		_ = log.Sync()
		closer.Exit(1)
	}
	_ = log.Sync()
	closer.Close()
}

func run(cfg Config, log *zap.Logger) error {
	done := make(chan struct{})
	defer close(done)

	vks.Init().OrPanic()
	defer vks.Destroy()

	var version uint32
	if result := vks.EnumerateInstanceVersion(&version); result.IsSuccess() {
		log.Info("vulkan",
			zap.String("api", fmt.Sprint(vks.ApiVersion(version))),
			zap.String("header", fmt.Sprint(vks.VK_HEADER_VERSION_COMPLETE)))
	}

	app := NewCameraApplication(cfg, log)
	defer app.Close()
	closer.Bind(app.interruptHandler(done))

	if err := app.Setup(); err != nil {
		if errors.Is(err, errStopped) {
			return nil
		}
		return err
	}

	for {
		running, err := app.Render()
		if err != nil {
			return err
		}
		if !running {
			return nil
		}
	}
}
