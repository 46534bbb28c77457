package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/RmnRj/glossa/internal"
	"github.com/RmnRj/glossa/internal/mcpserver"
	pkgconfig "github.com/RmnRj/glossa/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err == nil {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func compile(ctx context.Context, cmd *cli.Command) error {
	doc := cmd.Args().First()
	if doc == "" {
		return fmt.Errorf("usage: glossa compile <document> [--topic name]")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, db, _, err := internal.BuildService(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	topic := cmd.String("topic")
	var path string
	if topic != "" {
		path, _, err = svc.CompileTopic(ctx, doc, topic)
	} else {
		path, _, err = svc.Compile(ctx, doc)
	}
	if err != nil {
		return fmt.Errorf("compile %s: %w", doc, err)
	}
	fmt.Println(path)
	return nil
}

func preview(ctx context.Context, cmd *cli.Command) error {
	doc := cmd.Args().First()
	if doc == "" {
		return fmt.Errorf("usage: glossa preview <document>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, db, _, err := internal.BuildService(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	_, data, err := svc.Compile(ctx, doc)
	if err != nil {
		return fmt.Errorf("compile %s: %w", doc, err)
	}
	rendered, err := glamour.Render(string(data), "dark")
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	fmt.Print(rendered)
	return nil
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, db, _, err := internal.BuildService(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return mcpserver.New(svc).ServeStdio()
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "glossa",
		Usage:  "Personal PDF annotation tool with highlights, topical notes, search, and compiled notes documents",
		Action: serve,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server (default)",
				Action: serve,
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:      "compile",
				Usage:     "Compile a document's annotations into a Markdown notes file",
				ArgsUsage: "<document>",
				Action:    compile,
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:  "topic",
						Usage: "Compile a single topic instead of the full document",
					},
				},
			},
			{
				Name:      "preview",
				Usage:     "Compile and render a document's notes in the terminal",
				ArgsUsage: "<document>",
				Action:    preview,
				Flags:     []cli.Flag{configFlag},
			},
			{
				Name:   "mcp",
				Usage:  "Start the MCP server on stdin/stdout",
				Action: mcp,
				Flags:  []cli.Flag{configFlag},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
