package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli"

	"github.com/df07/go-mesh-pathtracer/pkg/config"
	"github.com/df07/go-mesh-pathtracer/pkg/integrator"
	"github.com/df07/go-mesh-pathtracer/pkg/loaders"
	"github.com/df07/go-mesh-pathtracer/pkg/log"
	"github.com/df07/go-mesh-pathtracer/pkg/output"
	"github.com/df07/go-mesh-pathtracer/pkg/renderer"
)

var logger = log.New("pathtracer")

// errUsage marks argument errors that are reported together with the usage text
var errUsage = errors.New("usage error")

// renderArgs holds the positional arguments of the render command
type renderArgs struct {
	Input   string
	Output  string
	Threads int
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		if !errors.Is(err, errUsage) {
			logger.Error(err)
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// -v is taken by verbosity
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render a binary triangle-mesh scene with Monte-Carlo path tracing"
	app.ArgsUsage = "INPUT_FILE OUTPUT_FILE [NUM_THREADS]"
	app.Version = "0.1.0"
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "JSON render configuration; flags override its values",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "image width (overrides config)",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "image height (overrides config)",
		},
		cli.IntFlag{
			Name:  "spp",
			Usage: "samples per pixel (overrides config)",
		},
		cli.Uint64Flag{
			Name:  "seed",
			Usage: "base random seed (overrides config)",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Action = renderScene
	return app
}

// parseArgs validates the positional arguments. NUM_THREADS defaults to 1.
func parseArgs(args cli.Args) (renderArgs, error) {
	if len(args) < 2 || len(args) > 3 {
		return renderArgs{}, fmt.Errorf("%w: expected 2 or 3 arguments, got %d", errUsage, len(args))
	}

	parsed := renderArgs{Input: args.Get(0), Output: args.Get(1), Threads: 1}
	if len(args) == 3 {
		threads, err := strconv.Atoi(args.Get(2))
		if err != nil || threads < 1 {
			return renderArgs{}, fmt.Errorf("%w: NUM_THREADS must be a positive integer, got %q", errUsage, args.Get(2))
		}
		parsed.Threads = threads
	}
	return parsed, nil
}

// loadConfig reads the optional config file and applies flag overrides
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if ctx.IsSet("width") {
		cfg.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		cfg.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Uint64("seed")
	}
	return cfg, cfg.Validate()
}

func setupLogging(ctx *cli.Context) {
	if ctx.Bool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.Bool("vv") {
		log.SetLevel(log.Debug)
	}
}

func renderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	args, err := parseArgs(ctx.Args())
	if err != nil {
		fmt.Fprintf(ctx.App.ErrWriter, "%v\n\n", err)
		cli.HelpPrinter(ctx.App.ErrWriter, cli.AppHelpTemplate, ctx.App)
		return err
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	sc, err := loaders.LoadScene(args.Input)
	if err != nil {
		return err
	}

	camera := renderer.NewCamera(cfg.CameraConfig(), cfg.Width, cfg.Height)
	pt := integrator.NewPathTracingIntegrator(cfg.IntegratorConfig())
	r, err := renderer.NewRenderer(sc, camera, pt, cfg.RendererConfig(args.Threads))
	if err != nil {
		return err
	}

	img, stats, err := r.Render()
	if err != nil {
		return err
	}
	if log.IsEnabled(log.Notice) {
		logger.Noticef("render statistics\n%s", stats.Table())
	}

	if err := output.WriteImage(args.Output, img.ToRGBA()); err != nil {
		return err
	}
	logger.Noticef("wrote %s", args.Output)
	return nil
}
