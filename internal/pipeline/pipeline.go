package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-turnip-automation/internal/browser"
	"go-turnip-automation/internal/filter"
	"go-turnip-automation/internal/models"
	"go-turnip-automation/internal/queue"
	"go-turnip-automation/internal/ranking"
	"go-turnip-automation/internal/reporter"
	"go-turnip-automation/internal/scraper"
	"go-turnip-automation/internal/scraper/turnip"
)

// SessionOpener hands out a fresh, independent browser session per call.
type SessionOpener func() (browser.Session, error)

// Options is everything a run needs, validated before the browser starts.
type Options struct {
	Criteria    filter.Criteria
	Strategy    ranking.Strategy
	Skip        int
	DisplayName string
	NoJoin      bool

	BaseURL     string
	WaitTimeout time.Duration
}

type Result struct {
	Scraped  int
	Ranked   []models.Listing
	Selected *models.Listing
	Join     queue.State
}

type Pipeline struct {
	open     SessionOpener
	scraper  scraper.Scraper
	reporter reporter.Reporter
}

func New(open SessionOpener, s scraper.Scraper, r reporter.Reporter) *Pipeline {
	return &Pipeline{open: open, scraper: s, reporter: r}
}

// Run scrapes, filters, ranks and, unless disabled, joins the best island.
// An empty shortlist is reported and is not an error.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Skip < 0 {
		return nil, fmt.Errorf("%w: skip must not be negative, got %d", ranking.ErrInvalidParameter, opts.Skip)
	}

	scrapeSession, err := p.open()
	if err != nil {
		return nil, fmt.Errorf("open scrape session: %w", err)
	}
	log.Printf("▶️ Starting scraper: %s", p.scraper.Name())
	listings, err := p.scraper.Scrape(ctx, scrapeSession)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", p.scraper.Name(), err)
	}

	filtered := filter.Apply(opts.Criteria, listings)
	ranked, err := ranking.Rank(filtered, opts.Skip, opts.Strategy)
	if err != nil {
		return nil, err
	}
	log.Printf("📊 Ranked %d/%d islands by %s (skip %d)", len(ranked), len(listings), opts.Strategy.Name, opts.Skip)

	res := &Result{Scraped: len(listings), Ranked: ranked, Join: queue.StateIdle}
	p.report(p.reporter.ReportListings(len(listings), ranked))

	if len(ranked) == 0 {
		log.Println("ℹ️ Nothing to join.")
		return res, nil
	}
	best := ranked[0]
	res.Selected = &best
	log.Printf("🏆 Best island: %s", best)

	if opts.NoJoin {
		log.Println("⏭️ Join disabled, stopping here.")
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	joinSession, err := p.open()
	if err != nil {
		return res, fmt.Errorf("open join session: %w", err)
	}
	join := queue.NewJoinSession(joinSession, DetailSelectors(), opts.WaitTimeout)
	joinErr := join.Run(turnip.IslandURL(opts.BaseURL, best.Code), opts.DisplayName)
	res.Join = join.State()
	p.report(p.reporter.ReportJoin(best, joinErr))

	if joinErr != nil {
		return res, fmt.Errorf("join %s: %w", best.Code, joinErr)
	}
	return res, nil
}

func (p *Pipeline) report(err error) {
	if err != nil {
		log.Printf("⚠️ Failed to report: %v", err)
	}
}

// DetailSelectors are the island page controls used by the join flow.
func DetailSelectors() queue.Selectors {
	return queue.Selectors{
		PageMarker:    turnip.SelDetailMarker,
		NoticeButton:  turnip.SelNoticeButton,
		JoinButton:    turnip.SelJoinButton,
		IdentityField: turnip.SelIdentityField,
		ConfirmButton: turnip.SelConfirmButton,
	}
}
