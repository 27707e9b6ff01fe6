// Command scenegen writes built-in scenes in the binary scene format.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
	"github.com/df07/go-mesh-pathtracer/pkg/loaders"
	"github.com/df07/go-mesh-pathtracer/pkg/log"
	"github.com/df07/go-mesh-pathtracer/pkg/material"
	"github.com/df07/go-mesh-pathtracer/pkg/scene"
)

var logger = log.New("scenegen")

// builtinScenes maps scene names to their mesh constructors
var builtinScenes = map[string]func() *scene.Mesh{
	"cornell": scene.NewCornellMesh,
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "scenegen"
	app.Usage = "write a built-in scene as a binary scene file"
	app.ArgsUsage = "OUTPUT_FILE"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "scene",
			Value: "cornell",
			Usage: "built-in scene to write",
		},
		cli.StringFlag{
			Name:  "ply",
			Usage: "place a binary PLY mesh inside an empty Cornell box instead",
		},
		cli.Float64Flag{
			Name:  "albedo",
			Value: 0.3,
			Usage: "grey albedo of the PLY mesh; channels must sum to at most 1",
		},
	}
	app.Action = writeScene
	return app
}

func writeScene(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("missing output file argument")
	}

	var mesh *scene.Mesh
	if path := ctx.String("ply"); path != "" {
		var err error
		if mesh, err = plyScene(path, float32(ctx.Float64("albedo"))); err != nil {
			return err
		}
	} else {
		build, ok := builtinScenes[ctx.String("scene")]
		if !ok {
			return fmt.Errorf("unknown scene %q", ctx.String("scene"))
		}
		mesh = build()
	}

	if err := loaders.SaveMesh(ctx.Args().First(), mesh); err != nil {
		return err
	}
	logger.Noticef("wrote %s: %d vertices, %d bsdfs, %d faces",
		ctx.Args().First(), len(mesh.Vertices), len(mesh.BSDFs), len(mesh.Faces))
	return nil
}

// plyScene fits a PLY mesh into the middle of an empty Cornell box
func plyScene(path string, albedo float32) (*scene.Mesh, error) {
	ply, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, err
	}
	diffuse, err := material.NewDiffuse(core.NewColour(albedo, albedo, albedo))
	if err != nil {
		return nil, err
	}

	ply.Fit(core.NewPoint3(-0.6, -1, -0.6), core.NewPoint3(0.6, 0.4, 0.6))
	mesh := scene.NewCornellShell()
	mesh.AddMesh(ply.Vertices, ply.Triangles, mesh.AddBSDF(diffuse))
	return mesh, nil
}
