// Command recipes talks to a running RecipeShare API from the terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"recipeshare_backend/client"
	"recipeshare_backend/models"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var errMissingID = errors.New("recipe id is required")

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "recipes",
		Usage:  "List, search and edit recipes on a RecipeShare server",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Value:   client.DefaultBaseURL,
				Usage:   "base URL of the recipe API",
				Sources: cli.EnvVars("RECIPES_API_URL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Print every recipe",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					recipes, err := apiClient(cmd).ListRecipes(ctx)
					if err != nil {
						return err
					}
					return printJSON(cmd, recipes)
				},
			},
			{
				Name:      "get",
				Usage:     "Print one recipe",
				ArgsUsage: "ID",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.Args().First()
					if id == "" {
						return errMissingID
					}
					recipe, err := apiClient(cmd).GetRecipe(ctx, id)
					if err != nil {
						return err
					}
					return printJSON(cmd, recipe)
				},
			},
			{
				Name:      "search",
				Usage:     "Find recipes by title, author or ingredient",
				ArgsUsage: "QUERY",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					recipes, err := apiClient(cmd).SearchRecipes(ctx, cmd.Args().First())
					if err != nil {
						return err
					}
					return printJSON(cmd, recipes)
				},
			},
			{
				Name:  "create",
				Usage: "Add a recipe",
				Flags: recipeFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					in := models.NewRecipe{
						Title:        cmd.String("title"),
						Image:        cmd.String("image"),
						CookTime:     cmd.String("cook-time"),
						Servings:     int(cmd.Int("servings")),
						Difficulty:   cmd.String("difficulty"),
						Author:       cmd.String("author"),
						Ingredients:  cmd.StringSlice("ingredient"),
						Instructions: cmd.StringSlice("step"),
					}
					recipe, err := apiClient(cmd).CreateRecipe(ctx, in)
					if err != nil {
						return err
					}
					return printJSON(cmd, recipe)
				},
			},
			{
				Name:      "update",
				Usage:     "Change fields of a recipe; empty values are ignored by the server",
				ArgsUsage: "ID",
				Flags:     recipeFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.Args().First()
					if id == "" {
						return errMissingID
					}
					recipe, err := apiClient(cmd).UpdateRecipe(ctx, id, patchFromFlags(cmd))
					if err != nil {
						return err
					}
					return printJSON(cmd, recipe)
				},
			},
			{
				Name:      "delete",
				Usage:     "Remove a recipe",
				ArgsUsage: "ID",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.Args().First()
					if id == "" {
						return errMissingID
					}
					recipe, err := apiClient(cmd).DeleteRecipe(ctx, id)
					if err != nil {
						return err
					}
					return printJSON(cmd, recipe)
				},
			},
		},
	}
}

func recipeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title"},
		&cli.StringFlag{Name: "image", Usage: "image URL"},
		&cli.StringFlag{Name: "cook-time", Usage: "free text, e.g. \"30 mins\""},
		&cli.IntFlag{Name: "servings"},
		&cli.StringFlag{Name: "difficulty"},
		&cli.StringFlag{Name: "author"},
		&cli.StringSliceFlag{Name: "ingredient", Usage: "repeat once per ingredient, in order"},
		&cli.StringSliceFlag{Name: "step", Usage: "repeat once per instruction, in order"},
	}
}

// patchFromFlags only includes flags given on the command line.
func patchFromFlags(cmd *cli.Command) models.RecipePatch {
	var p models.RecipePatch
	if cmd.IsSet("title") {
		p.Title = models.String(cmd.String("title"))
	}
	if cmd.IsSet("image") {
		p.Image = models.String(cmd.String("image"))
	}
	if cmd.IsSet("cook-time") {
		p.CookTime = models.String(cmd.String("cook-time"))
	}
	if cmd.IsSet("servings") {
		p.Servings = models.Int(int(cmd.Int("servings")))
	}
	if cmd.IsSet("difficulty") {
		p.Difficulty = models.String(cmd.String("difficulty"))
	}
	if cmd.IsSet("author") {
		p.Author = models.String(cmd.String("author"))
	}
	if cmd.IsSet("ingredient") {
		p.Ingredients = models.Strings(cmd.StringSlice("ingredient")...)
	}
	if cmd.IsSet("step") {
		p.Instructions = models.Strings(cmd.StringSlice("step")...)
	}
	return p
}

func apiClient(cmd *cli.Command) *client.Client {
	return client.New(cmd.String("server"))
}

func printJSON(cmd *cli.Command, v any) error {
	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
