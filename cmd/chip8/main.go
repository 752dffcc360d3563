package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/tommi/go-chip8/chip8"
	"github.com/tommi/go-chip8/chip8/backend"
	"github.com/tommi/go-chip8/chip8/backend/headless"
	"github.com/tommi/go-chip8/chip8/backend/terminal"
	"github.com/tommi/go-chip8/chip8/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 virtual machine"
	app.Usage = "chip8 [options] <program file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the program file",
		},
		cli.IntFlag{
			Name:  "clock",
			Usage: "Instruction clock rate in Hz",
			Value: chip8.DefaultClockRate,
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a graphical interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("error running emulator", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no program path provided")
		}
	}

	machine, err := chip8.NewWithFile(romPath)
	if err != nil {
		return err
	}
	machine.SetClockRate(c.Int("clock"))

	var (
		b       backend.Backend
		limiter timing.Limiter
	)

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames with a positive value")
		}

		snapshots, err := headless.CreateSnapshotConfig(
			c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
		if err != nil {
			return err
		}

		b = headless.New(frames, snapshots)
		limiter = timing.NewNoOpLimiter()
	} else {
		b = terminal.New()
		limiter = timing.NewTickerLimiter()
	}

	config := backend.Config{
		Title:       filepath.Base(romPath),
		SoundActive: machine.SoundActive,
	}
	if err := b.Init(config); err != nil {
		return err
	}

	return runLoop(machine, b, limiter)
}

// runLoop drives the machine one frame at a time, feeding backend
// input events back into the keypad between frames.
func runLoop(machine *chip8.Machine, b backend.Backend, limiter timing.Limiter) error {
	defer b.Cleanup()

	for {
		if err := machine.RunUntilFrame(); err != nil {
			return err
		}

		events, err := b.Update(machine.GetCurrentFrame())
		if err != nil {
			return err
		}

		for _, evt := range events {
			switch evt.Type {
			case backend.KeyPress:
				machine.HandleKey(evt.Key, true)
			case backend.KeyRelease:
				machine.HandleKey(evt.Key, false)
			case backend.Quit:
				return nil
			}
		}

		limiter.WaitForNextFrame()
	}
}
