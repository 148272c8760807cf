// Command loadctl runs the load optimizer from the command line and issues API tokens.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/load-optimizer/config"
	"github.com/guttosm/load-optimizer/internal/domain/dto"
	"github.com/guttosm/load-optimizer/internal/logger"
	"github.com/guttosm/load-optimizer/internal/service"
)

var errValidation = errors.New("validation failed")

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:   "loadctl",
		Usage:  "Plan truck loads and issue API tokens",
		Reader: stdin,
		Writer: stdout,
		Before: func(*cli.Context) error {
			_ = godotenv.Load()
			logger.Init(os.Getenv("LOG_LEVEL"), true)
			return nil
		},
		Commands: []*cli.Command{
			optimizeCmd,
			validateCmd,
			tokenCmd,
		},
	}
}

var inputFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Required: true,
		Usage:    "request file (.json, .yaml or .yml); - reads JSON from stdin",
	},
	&cli.StringFlag{
		Name:  "format",
		Usage: "force the input format (json or yaml)",
	},
	&cli.IntFlag{
		Name:  "max-orders",
		Value: service.DefaultMaxOrders,
		Usage: "largest order list accepted",
	},
}

var optimizeCmd = &cli.Command{
	Name:    "optimize",
	Usage:   "Compute the optimal load plan for a request file",
	Aliases: []string{"o"},
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "indent the JSON output",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: 5 * time.Second,
			Usage: "search deadline",
		},
	}, inputFlags...),
	Action: func(ctx *cli.Context) error {
		req, err := readRequest(ctx)
		if err != nil {
			return err
		}

		maxOrders := ctx.Int("max-orders")
		loadReq, err := req.ToLoadRequest(maxOrders)
		if err != nil {
			return validationFailed(ctx.App.Writer, err)
		}

		optimizer := service.NewLoadOptimizerService(
			service.WithMaxOrders(maxOrders),
			service.WithTimeout(ctx.Duration("timeout")),
		)
		plan, err := optimizer.Optimize(ctx.Context, loadReq)
		if err != nil {
			return fmt.Errorf("optimize: %w", err)
		}
		return writeJSON(ctx.App.Writer, plan, ctx.Bool("pretty"))
	},
}

var validateCmd = &cli.Command{
	Name:    "validate",
	Usage:   "Check a request file without optimizing it",
	Aliases: []string{"v"},
	Flags:   inputFlags,
	Action: func(ctx *cli.Context) error {
		req, err := readRequest(ctx)
		if err != nil {
			return err
		}
		if err := req.Validate(ctx.Int("max-orders")); err != nil {
			return validationFailed(ctx.App.Writer, err)
		}
		fmt.Fprintf(ctx.App.Writer, "ok: truck %s, %d orders\n", req.Truck.ID, len(req.Orders))
		return nil
	},
}

var tokenCmd = &cli.Command{
	Name:  "token",
	Usage: "Issue a bearer token signed with JWT_SECRET_KEY",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "subject",
			Aliases:  []string{"s"},
			Required: true,
			Usage:    "token subject, e.g. the calling system",
		},
		&cli.StringSliceFlag{
			Name:  "scope",
			Value: cli.NewStringSlice("loads:optimize"),
			Usage: "granted scope; repeat for more (loads:optimize, logs:read)",
		},
		&cli.DurationFlag{
			Name:  "ttl",
			Usage: "token lifetime (defaults to JWT_TOKEN_TTL)",
		},
	},
	Action: func(ctx *cli.Context) error {
		tokenCfg := service.NewTokenConfigFromAuthConfig(config.Load().Auth)
		if ttl := ctx.Duration("ttl"); ttl > 0 {
			tokenCfg.TTL = ttl
		}

		token, err := service.NewTokenService(tokenCfg).IssueToken(ctx.String("subject"), ctx.StringSlice("scope"))
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		return writeJSON(ctx.App.Writer, token, true)
	},
}

func readRequest(ctx *cli.Context) (*dto.OptimizeRequest, error) {
	path := ctx.String("input")

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(ctx.App.Reader)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var req dto.OptimizeRequest
	switch format := inputFormat(path, ctx.String("format")); format {
	case "yaml":
		err = yaml.Unmarshal(data, &req)
	case "json":
		err = json.Unmarshal(data, &req)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &req, nil
}

func inputFormat(path, forced string) string {
	if forced != "" {
		return strings.ToLower(forced)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func validationFailed(w io.Writer, err error) error {
	var verrs dto.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	details := verrs.Details()
	for _, field := range verrs.Fields() {
		fmt.Fprintf(w, "%s: %s\n", field, details[field])
	}
	return fmt.Errorf("%w: %d field(s)", errValidation, len(details))
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
