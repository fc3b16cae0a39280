// Copyright 2025 Clefworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/clefworks/scorebase"
	"github.com/clefworks/scorebase/ai"
	"github.com/clefworks/scorebase/assistant"
	"github.com/clefworks/scorebase/core"
	"github.com/clefworks/scorebase/ingest"
	"github.com/clefworks/scorebase/search"
)

func main() {
	app := &cli.App{
		Name:  "scorebase",
		Usage: "Music score library with local search and cloud fallback",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "Path to the library database directory",
				Required: true,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Look a piece up, escalating to the cloud on a local miss",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(cloudFlags(),
					&cli.StringFlag{
						Name:  "composer",
						Usage: "Restrict matches to this composer",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Restrict matches to this title",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
					&cli.Float64Flag{
						Name:  "confidence-floor",
						Usage: "Minimum local score that avoids cloud escalation",
						Value: 0.5,
					},
					&cli.DurationFlag{
						Name:  "cloud-timeout",
						Usage: "Deadline for the cloud search stage",
						Value: 10 * time.Second,
					},
				),
			},
			{
				Name:      "import",
				Usage:     "Bulk-import score document files from a directory",
				ArgsUsage: "<dir>",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size",
						Value: 4,
					},
				},
			},
			{
				Name:      "upload",
				Usage:     "Convert a sheet image and add it to the library",
				ArgsUsage: "<file>",
				Action:    uploadCommand,
				Flags: append(converterFlags(),
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Title of the piece",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "composer",
						Usage: "Composer of the piece",
					},
					&cli.StringFlag{
						Name:  "documents-dir",
						Usage: "Directory for persisted score documents",
						Value: ".",
					},
				),
			},
			{
				Name:   "list",
				Usage:  "List the library contents",
				Action: listCommand,
			},
			{
				Name:   "chat",
				Usage:  "Interactive session: search, upload, and list by typing requests",
				Action: chatCommand,
				Flags:  append(cloudFlags(), converterFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cloudFlags are the datastore credentials shared by cloud-reaching commands.
func cloudFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "search-endpoint",
			Usage:   "Cloud datastore API base URL",
			EnvVars: []string{"SCOREBASE_SEARCH_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Cloud datastore API key",
			EnvVars: []string{"SCOREBASE_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "project",
			Usage:   "Cloud project identifier",
			EnvVars: []string{"SCOREBASE_PROJECT"},
		},
		&cli.StringFlag{
			Name:    "location",
			Usage:   "Cloud datastore location",
			Value:   "global",
			EnvVars: []string{"SCOREBASE_LOCATION"},
		},
		&cli.StringFlag{
			Name:    "datastore",
			Usage:   "Cloud datastore identifier",
			EnvVars: []string{"SCOREBASE_DATASTORE"},
		},
	}
}

// converterFlags configure the sheet conversion service.
func converterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "converter-host",
			Usage:   "OpenAI-compatible multimodal service URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"SCOREBASE_CONVERTER_HOST"},
		},
		&cli.StringFlag{
			Name:    "converter-model",
			Usage:   "Multimodal model identifier",
			Value:   "qwen2.5vl:7b",
			EnvVars: []string{"SCOREBASE_CONVERTER_MODEL"},
		},
	}
}

// aiConfigFromFlags assembles the remote service configuration.
func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithSearchEndpoint(c.String("search-endpoint")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithProject(c.String("project")),
		ai.WithLocation(c.String("location")),
		ai.WithDataStore(c.String("datastore")),
		ai.WithConverterHost(c.String("converter-host")),
		ai.WithConverterModel(c.String("converter-model")),
	)
}

func searchCommand(c *cli.Context) error {
	queryText := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	query := core.SearchQuery{
		Text:     queryText,
		Composer: c.String("composer"),
		Title:    c.String("title"),
	}
	if err := core.ValidateQuery(query); err != nil {
		return err
	}

	config := aiConfigFromFlags(c)
	if err := config.Validate(); err != nil {
		return fmt.Errorf("cloud configuration: %w", err)
	}

	library, err := scorebase.Open(c.String("db"), scorebase.WithAIConfig(config))
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer library.Close()

	orchestrator, err := library.NewOrchestrator(search.WithConfig(search.OrchestratorConfig{
		ConfidenceFloor: float32(c.Float64("confidence-floor")),
		CloudTimeout:    c.Duration("cloud-timeout"),
	}))
	if err != nil {
		return err
	}

	decision, err := orchestrator.Resolve(context.Background(), query, c.Int("limit"))
	if err != nil {
		return err
	}

	printDecision(decision)
	return nil
}

func importCommand(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		return fmt.Errorf("import directory is required")
	}

	library, err := scorebase.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer library.Close()

	importer, err := library.NewImporter(
		ingest.WithPoolSize(c.Int("workers")),
		ingest.WithProgressOutput(os.Stderr),
	)
	if err != nil {
		return err
	}
	defer importer.Release()

	report, err := importer.Run(context.Background(), dir)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d, skipped %d duplicates, %d failed (%d resumed)\n",
		report.Imported, report.Skipped, report.Failed, report.Resumed)
	return nil
}

func uploadCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("sheet file is required")
	}

	library, err := scorebase.Open(c.String("db"),
		scorebase.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer library.Close()

	uploader, err := library.NewUploader(
		ingest.WithDocumentsDir(c.String("documents-dir")))
	if err != nil {
		return err
	}

	item, err := uploader.Upload(context.Background(), path, c.String("title"), c.String("composer"))
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Printf("Added %q (%s), %d measures, document at %s\n",
		item.Title, item.Composer, item.MeasureCount, item.Path)
	return nil
}

func listCommand(c *cli.Context) error {
	library, err := scorebase.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer library.Close()

	items, err := library.LibraryRepository().List(context.Background())
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Println("Library is empty.")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%-12d %-40s %-20s %s\n", item.Id, item.Title, item.Composer, item.Provenance)
	}
	fmt.Printf("%d items\n", len(items))
	return nil
}

func chatCommand(c *cli.Context) error {
	config := aiConfigFromFlags(c)

	var opts []scorebase.LibraryOption
	if err := config.Validate(); err == nil {
		opts = append(opts, scorebase.WithAIConfig(config))
	} else {
		fmt.Fprintln(os.Stderr, "Cloud services not configured; running local-only.")
	}

	library, err := scorebase.Open(c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer library.Close()

	dispatcher, err := newChatDispatcher(library)
	if err != nil {
		return err
	}

	fmt.Println("Type a piece name to search, a file path to upload, 'list', or 'help'. Ctrl-D exits.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		if err := dispatcher.Dispatch(context.Background(), scanner.Text()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return scanner.Err()
}

// newChatDispatcher wires the interactive handlers over the library.
func newChatDispatcher(library *scorebase.Library) (*assistant.Dispatcher, error) {
	return assistant.NewDispatcher(assistant.Handlers{
		Search: func(ctx context.Context, request assistant.Request) error {
			orchestrator, err := library.NewOrchestrator()
			if err != nil {
				// Local-only session: answer from the index alone.
				results, searchErr := library.Index().Search(ctx, request.Query, 10)
				if searchErr != nil {
					return searchErr
				}
				printCandidates(results)
				return nil
			}

			decision, err := orchestrator.Resolve(ctx, request.Query, 10)
			if err != nil {
				return err
			}
			printDecision(decision)
			return nil
		},
		Upload: func(ctx context.Context, request assistant.Request) error {
			if request.Path == "" {
				fmt.Println("Name the file to upload, e.g. 'upload scans/nocturne.png'.")
				return nil
			}
			uploader, err := library.NewUploader()
			if err != nil {
				return err
			}
			item, err := uploader.Upload(ctx, request.Path, titleFromPath(request.Path), "")
			if err != nil {
				return err
			}
			fmt.Printf("Added %q, %d measures.\n", item.Title, item.MeasureCount)
			return nil
		},
		List: func(ctx context.Context, request assistant.Request) error {
			items, err := library.LibraryRepository().List(ctx)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Printf("  %s — %s\n", item.Title, item.Composer)
			}
			fmt.Printf("%d items.\n", len(items))
			return nil
		},
		Help: func(ctx context.Context, request assistant.Request) error {
			fmt.Println("Commands: <piece name> to search, 'upload <file>' to add a sheet, 'list', 'help'.")
			return nil
		},
	}), nil
}

func printDecision(decision *search.Decision) {
	switch decision.Outcome {
	case search.OutcomeFound:
		fmt.Println("Found in your library:")
		printCandidates(decision.Results)
	case search.OutcomeEscalated:
		fmt.Println("Found via cloud search:")
		printCandidates(decision.Results)
	case search.OutcomeSuggestUpload:
		fmt.Printf("No results (%s). If you have the sheet, upload it to add the piece to your library.\n",
			decision.Reason)
	}
}

func printCandidates(candidates []*core.Candidate) {
	for _, candidate := range candidates {
		fmt.Printf("  %.2f  %-40s %-20s [%s]\n",
			candidate.Score, candidate.Item.Title, candidate.Item.Composer, candidate.Source)
	}
}

// titleFromPath derives a fallback title from the file name.
func titleFromPath(path string) string {
	base := path
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return strings.TrimSpace(strings.ReplaceAll(base, "_", " "))
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
