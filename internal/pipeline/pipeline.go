package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"stockwatch/internal/alert"
	"stockwatch/internal/analyzer"
	"stockwatch/internal/config"
	"stockwatch/internal/fetcher"
	"stockwatch/internal/model"
	"stockwatch/internal/notifier"
	"stockwatch/internal/recorder"
	"stockwatch/internal/store"
)

// Renderer is the optional presentation hook invoked after a
// successful cycle. Render failures never fail the cycle.
type Renderer interface {
	Render(label string, series model.Series, analysis model.Analysis) error
}

// Pipeline runs the fetch, merge, persist, analyze, evaluate, notify
// sequence for one configured series. A mutex serializes runs so
// concurrent scheduled and manual triggers never race on the series
// file; rescheduling never cancels an in-flight run, it only affects
// future triggers.
type Pipeline struct {
	mu sync.Mutex

	Source   fetcher.Source
	Notifier notifier.Notifier
	Recorder recorder.Recorder

	renderer Renderer
	cfg      *config.Config
	store *store.CSVStore
	label string
}

// New wires a pipeline for the given confirmed configuration.
func New(cfg *config.Config, src fetcher.Source, n notifier.Notifier, rec recorder.Recorder) *Pipeline {
	return &Pipeline{
		Source:   src,
		Notifier: n,
		Recorder: rec,
		cfg:      cfg,
		store:    store.NewCSVStore(cfg.DataFile),
	}
}

// Reconfigure swaps in a newly confirmed configuration. It waits for
// any in-flight run to finish, so a run never observes mixed settings.
func (p *Pipeline) Reconfigure(cfg *config.Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
	p.store = store.NewCSVStore(cfg.DataFile)
}

// SetRenderer installs the presentation hook.
func (p *Pipeline) SetRenderer(r Renderer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderer = r
}

// Label returns the most recently fetched company name.
func (p *Pipeline) Label() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.label
}

// Backfill seeds an absent or empty series file from historical
// closes, sized to cover the largest configured period. An existing
// non-empty file is left untouched.
func (p *Pipeline) Backfill(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.store.Empty() {
		log.Println("[INFO] existing series file found, skipping historical backfill")
		return nil
	}

	// Roughly ten trading days per page.
	pages := p.cfg.MaxPeriod()/10 + 2
	series, err := p.Source.FetchHistorical(ctx, p.cfg.Symbol, pages)
	if err != nil && len(series) == 0 {
		return fmt.Errorf("historical backfill: %w", err)
	}
	if len(series) == 0 {
		return fmt.Errorf("historical backfill: no data returned for %s", p.cfg.Symbol)
	}
	if err != nil {
		log.Printf("[WARN] historical backfill partial (%d samples): %v", len(series), err)
	}

	if err := p.store.Save(series); err != nil {
		return fmt.Errorf("persist backfill: %w", err)
	}
	log.Printf("[INFO] historical backfill complete: %d samples saved to %s", len(series), p.cfg.DataFile)
	return nil
}

// Run executes one update cycle. A fetch failure aborts the cycle
// before any write; a persistence failure aborts before analysis. The
// next scheduled trigger is the de facto retry.
func (p *Pipeline) Run(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	runID := uuid.NewString()[:8]
	log.Printf("[INFO] update cycle %s: fetching %s", runID, p.cfg.Symbol)

	price, label, err := p.Source.FetchCurrent(ctx, p.cfg.Symbol)
	if err != nil {
		log.Printf("[ERROR] update cycle %s: fetch: %v", runID, err)
		return fmt.Errorf("fetch current price: %w", err)
	}
	p.label = label

	series, err := p.store.Load()
	if err != nil {
		log.Printf("[ERROR] update cycle %s: load series: %v", runID, err)
		return fmt.Errorf("load series: %w", err)
	}

	sample := model.Sample{Time: nowFunc(), Price: price}
	merged, action := analyzer.Merge(series, sample)

	if err := p.store.Save(merged); err != nil {
		log.Printf("[ERROR] update cycle %s: persist: %v", runID, err)
		return fmt.Errorf("persist series: %w", err)
	}

	analysis := analyzer.Analyze(merged, p.cfg.AnalysisPeriods())
	alerts := alert.Evaluate(analysis, p.cfg.Alerts, price)

	if len(alerts) > 0 {
		title := fmt.Sprintf("Stock price alert - %s (%s)", label, p.cfg.Symbol)
		messages := make([]string, len(alerts))
		for i, a := range alerts {
			messages[i] = a.Message
		}
		if err := p.Notifier.Notify(ctx, title, strings.Join(messages, "\n\n")); err != nil {
			log.Printf("[ERROR] update cycle %s: notify: %v", runID, err)
		}
	}

	if err := p.Recorder.RecordCycle(&recorder.CycleRecord{
		RunID:       runID,
		Symbol:      p.cfg.Symbol,
		Label:       label,
		Price:       price,
		SeriesLen:   len(merged),
		MergeAction: string(action),
		AlertCount:  len(alerts),
	}); err != nil {
		log.Printf("[ERROR] update cycle %s: record cycle: %v", runID, err)
	}
	for _, a := range alerts {
		if err := p.Recorder.RecordAlert(&recorder.AlertRecord{RunID: runID, Alert: a}); err != nil {
			log.Printf("[ERROR] update cycle %s: record alert: %v", runID, err)
		}
	}

	if p.renderer != nil {
		if err := p.renderer.Render(label, merged, analysis); err != nil {
			log.Printf("[WARN] update cycle %s: render: %v", runID, err)
		}
	}

	log.Printf("[INFO] update cycle %s done: price=%d action=%s alerts=%d series=%d",
		runID, price, action, len(alerts), len(merged))
	return nil
}
