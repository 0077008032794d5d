package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"go-turnip-automation/internal/browser"
	"go-turnip-automation/internal/config"
	"go-turnip-automation/internal/filter"
	"go-turnip-automation/internal/pipeline"
	"go-turnip-automation/internal/queue"
	"go-turnip-automation/internal/ranking"
	"go-turnip-automation/internal/reporter"
	"go-turnip-automation/internal/scraper/turnip"
	"go-turnip-automation/utils"
)

type cliFlags struct {
	configPath   string
	minQueue     int
	maxQueue     int
	minPrice     int
	maxPrice     int
	excludeFruit string
	hemisphere   string
	skip         int
	rank         string
	name         string
	noJoin       bool
	show         int
}

var rootCmd = newRootCmd(&cliFlags{})

// newRootCmd builds the command and binds its flags to f.
func newRootCmd(f *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "turnip --name <display name> [filters]",
		Short:        "Finds the best turnip.exchange island and joins its queue.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, *f)
			if err != nil {
				return err
			}
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			opts.BaseURL = cfg.BaseURL
			opts.WaitTimeout = cfg.WaitTimeout
			return run(cmd.Context(), cfg, opts, f.show)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", config.DefaultPath, "YAML config file.")
	fs.IntVar(&f.minQueue, "min-queue", 0, "Minimum number of visitors already waiting.")
	fs.IntVar(&f.maxQueue, "max-queue", 0, "Maximum number of visitors already waiting.")
	fs.IntVar(&f.minPrice, "min-price", 0, "Minimum turnip price in bells.")
	fs.IntVar(&f.maxPrice, "max-price", 0, "Maximum turnip price in bells.")
	fs.StringVar(&f.excludeFruit, "exclude-fruit", "", "Skip islands with this native fruit (peach, apple, pear, cherry, orange).")
	fs.StringVar(&f.hemisphere, "hemisphere", "", "Only islands in this hemisphere (north or south).")
	fs.IntVar(&f.skip, "skip", 0, "Skip the N best islands.")
	fs.StringVar(&f.rank, "rank", ranking.ByPrice.Name, "Ranking: "+strings.Join(ranking.StrategyNames(), " or ")+".")
	fs.StringVar(&f.name, "name", "", "Display name to queue under.")
	fs.BoolVar(&f.noJoin, "no-join", false, "Only list islands, do not join a queue.")
	fs.IntVar(&f.show, "show", 10, "Rows to print, 0 for all.")
	cmd.MarkFlagRequired("name")
	return cmd
}

// buildOptions validates every flag before anything touches the network.
// Only flags the user set become filter options.
func buildOptions(cmd *cobra.Command, f cliFlags) (pipeline.Options, error) {
	changed := cmd.Flags().Changed

	var opts []filter.Option
	if changed("min-queue") {
		opts = append(opts, filter.MinQueueLength(f.minQueue))
	}
	if changed("max-queue") {
		opts = append(opts, filter.MaxQueueLength(f.maxQueue))
	}
	if changed("min-price") {
		opts = append(opts, filter.MinPrice(f.minPrice))
	}
	if changed("max-price") {
		opts = append(opts, filter.MaxPrice(f.maxPrice))
	}
	if changed("exclude-fruit") {
		opts = append(opts, filter.ExcludeFruit(f.excludeFruit))
	}
	if changed("hemisphere") {
		opts = append(opts, filter.OnlyHemisphere(f.hemisphere))
	}

	criteria, err := filter.New(opts...)
	if err != nil {
		return pipeline.Options{}, err
	}
	strategy, err := ranking.ParseStrategy(f.rank)
	if err != nil {
		return pipeline.Options{}, err
	}
	if f.skip < 0 {
		return pipeline.Options{}, fmt.Errorf("%w: --skip must not be negative", ranking.ErrInvalidParameter)
	}
	if strings.TrimSpace(f.name) == "" {
		return pipeline.Options{}, queue.ErrEmptyIdentity
	}

	return pipeline.Options{
		Criteria:    criteria,
		Strategy:    strategy,
		Skip:        f.skip,
		DisplayName: f.name,
		NoJoin:      f.noJoin,
	}, nil
}

func run(parent context.Context, cfg *config.Config, opts pipeline.Options, show int) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporters := reporter.Multi{reporter.NewTableReporter(os.Stdout, show)}
	if cfg.TelegramEnabled() {
		tg, err := reporter.NewTelegramReporter(cfg)
		if err != nil {
			log.Printf("⚠️ Telegram disabled: %v", err)
		} else {
			reporters = append(reporters, tg)
			log.Println("🤖 Telegram reporter initialized.")
		}
	}

	pm, err := browser.NewPlaywright(ctx, browser.Options{
		Engine:    cfg.Browser,
		Headless:  cfg.Headless,
		SlowMo:    float64(cfg.SlowMoMs),
		UserAgent: cfg.UserAgent,
	})
	if err != nil {
		return err
	}
	defer pm.Close()

	shots := utils.NewScreenShotDebugger(cfg.ScreenshotDir)
	pacing := browser.Pacing{MinMs: cfg.PaceMinMs, MaxMs: cfg.PaceMaxMs}
	open := func() (browser.Session, error) {
		return pm.NewSession(pacing, shots)
	}

	p := pipeline.New(open, turnip.NewScraper(cfg.BaseURL, cfg.WaitTimeout), reporters)
	res, err := p.Run(ctx, opts)
	if handOver(res, cfg.Headless) {
		if err != nil {
			log.Printf("❌ %v", err)
		}
		log.Println("🖐️ Browser left open for you. Press Ctrl+C to close it.")
		<-ctx.Done()
	}
	if err != nil {
		return err
	}
	log.Println("🏁 Execution finished.")
	return nil
}

// handOver reports whether the join page should stay up for the user.
// Any finished join counts, successful or not; headless runs have nobody to hand over to.
func handOver(res *pipeline.Result, headless bool) bool {
	if res == nil || headless {
		return false
	}
	return res.Join.Terminal()
}
