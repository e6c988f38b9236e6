package cmd

import (
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// ScenesFlags are the flags of the scenes command
var ScenesFlags = []cli.Flag{
	cli.StringFlag{Name: "dir", Value: "scenes", Usage: "directory of JSON scene descriptions"},
}

// ListScenes prints the built-in scenes and the scene files found in --dir.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	response, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	writeSceneTable(os.Stdout, response)
	return nil
}

func writeSceneTable(w io.Writer, response scene.ScenesResponse) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Group", "ID", "Name", "Description"})
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			table.Append([]string{group.Name, info.ID, info.Name, info.Description})
		}
	}
	table.Render()
}
