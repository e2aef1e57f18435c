// Command seoreport runs the SEO analysis pipeline from the command line:
// full reports in JSON or Markdown, registry metadata lookups and domain
// audits, without standing up the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/akrin/seo-analyzer/report"
	"github.com/akrin/seo-analyzer/seranking"
	"github.com/akrin/seo-analyzer/siteconfig"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := &cli.App{
		Name:  "seoreport",
		Usage: "generate SEO analysis reports for the AKRIN website",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "site",
				Usage: "site registry YAML file (default: built-in AKRIN registry)",
			},
		},
		Commands: []*cli.Command{
			reportCommand(),
			metadataCommand(),
			auditCommand(),
			trackingCommand(),
			competitorsCommand(),
			statusCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadSite(c *cli.Context) (*siteconfig.SiteConfig, error) {
	path := c.String("site")
	if path == "" {
		return siteconfig.Default(), nil
	}
	return siteconfig.Load(path)
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "generate a full SEO report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "json",
				Usage: "output format: json or markdown",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "write the report to a file instead of stdout",
			},
			&cli.StringFlag{
				Name:  "posts",
				Usage: "blog posts YAML file",
			},
			&cli.BoolFlag{
				Name:  "domain-analysis",
				Usage: "include live domain analysis",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadSite(c)
			if err != nil {
				return err
			}

			var posts []report.BlogPost
			if path := c.String("posts"); path != "" {
				posts, err = report.LoadBlogPosts(path)
				if err != nil {
					return err
				}
			}

			generator := report.NewGenerator(cfg, seranking.NewFromEnv(), nil)
			result := generator.Generate(context.Background(), posts, report.Options{
				IncludeDomainAnalysis: c.Bool("domain-analysis"),
			})

			var output string
			switch c.String("format") {
			case "markdown", "md":
				output = report.ExportMarkdown(result)
			case "json":
				output, err = report.ExportJSON(result)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q", c.String("format"))
			}

			return write(c.String("output"), output)
		},
	}
}

func metadataCommand() *cli.Command {
	return &cli.Command{
		Name:      "metadata",
		Usage:     "print generated metadata for a registry path",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "yaml",
				Usage: "output format: yaml or json",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadSite(c)
			if err != nil {
				return err
			}

			path := c.Args().First()
			if path == "" {
				path = "/"
			}

			payload := map[string]interface{}{
				"metadata":    cfg.GenerateMetadata(path, "", "", nil),
				"performance": cfg.AnalyzePagePerformance(path),
			}

			var data []byte
			if c.String("format") == "json" {
				data, err = json.MarshalIndent(payload, "", "  ")
			} else {
				data, err = yaml.Marshal(payload)
			}
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func auditCommand() *cli.Command {
	return &cli.Command{
		Name:      "audit",
		Usage:     "run a domain-level SEO audit",
		ArgsUsage: "<domain>",
		Action: func(c *cli.Context) error {
			domain := c.Args().First()
			if domain == "" {
				domain = "akrin.jp"
			}

			client := seranking.NewFromEnv()
			result := client.GenerateSEOReport(context.Background(), domain)

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func trackingCommand() *cli.Command {
	return &cli.Command{
		Name:      "tracking",
		Usage:     "list tracked keyword positions, optionally registering new keywords first",
		ArgsUsage: "<domain>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "add",
				Usage: "keyword to register for tracking (repeatable)",
			},
			&cli.StringFlag{
				Name:  "source",
				Value: "jp",
				Usage: "search engine source",
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: 50,
				Usage: "maximum tracked keywords to list",
			},
		},
		Action: func(c *cli.Context) error {
			domain := c.Args().First()
			if domain == "" {
				domain = "akrin.jp"
			}

			client := seranking.NewFromEnv()
			ctx := context.Background()

			if keywords := c.StringSlice("add"); len(keywords) > 0 {
				result := client.AddKeywordTracking(ctx, domain, keywords, c.String("source"))
				if !result.Success {
					log.Printf("Tracking registration returned no confirmation for %s", domain)
				}
			}

			tracked := client.GetKeywordTracking(ctx, domain, c.Int("limit"))
			data, err := json.MarshalIndent(tracked, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func competitorsCommand() *cli.Command {
	return &cli.Command{
		Name:      "competitors",
		Usage:     "profile competitor domains against the site",
		ArgsUsage: "<competitor> [competitor...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "domain",
				Value: "akrin.jp",
				Usage: "the site's own domain",
			},
			&cli.StringFlag{
				Name:  "source",
				Value: "jp",
				Usage: "search engine source",
			},
		},
		Action: func(c *cli.Context) error {
			competitors := c.Args().Slice()
			if len(competitors) == 0 {
				return fmt.Errorf("at least one competitor domain is required")
			}

			client := seranking.NewFromEnv()
			profiles := client.GetCompetitorAnalysis(context.Background(), c.String("domain"), competitors, c.String("source"))

			data, err := json.MarshalIndent(profiles, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "check the external API subscription",
		Action: func(c *cli.Context) error {
			status := seranking.NewFromEnv().TestConnection(context.Background())
			if status == nil {
				fmt.Println("External SEO API not reachable or not configured")
				return nil
			}
			data, err := json.MarshalIndent(status, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func write(path, content string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Printf("Report written to %s", path)
	return nil
}
