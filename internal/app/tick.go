package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scorewatch/scorewatch/internal/adapters/mq/queue"
	"github.com/scorewatch/scorewatch/internal/domain/diff"
	"github.com/scorewatch/scorewatch/internal/domain/model"
	"github.com/scorewatch/scorewatch/pkg/logger"
	"github.com/scorewatch/scorewatch/pkg/metrics"
)

// runLoop drives the poll cadence. Each tick returns the wait until the
// next one; the wait is interruptible by the wake signal and by
// shutdown. Only Stop ends the loop, so the in-flight tick always
// completes and its notifications reach the queue before the drain.
func (s *Service) runLoop(ctx context.Context) {
	defer close(s.loopDone)

	for {
		interval := s.tick(ctx)
		metrics.UpdatePollInterval(interval.Seconds())

		timer := time.NewTimer(interval)
		select {
		case <-s.stopCh:
			timer.Stop()
			return
		case <-s.wake:
			timer.Stop()
			s.logger.Debug(ctx, "woken by subscription, polling early")
		case <-timer.C:
		}
	}
}

// tick runs one fetch -> promote -> diff -> swap cycle and returns the wait
// until the next tick. A fetch or extract failure skips the cycle
// without touching the stored snapshot, so the failed observation can
// never masquerade as "all matches ended".
func (s *Service) tick(ctx context.Context) time.Duration {
	doc, err := s.fetcher.Fetch(ctx)
	if err != nil {
		metrics.RecordTick("fetch_error")
		s.logger.Warn(ctx, "feed fetch failed, skipping tick", logger.Error(err))
		return s.retryInterval
	}

	events, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		metrics.RecordTick("extract_error")
		s.logger.Warn(ctx, "feed extract failed, skipping tick", logger.Error(err))
		return s.retryInterval
	}

	s.process(ctx, events)
	metrics.RecordTick("ok")
	metrics.UpdateLiveEvents(len(events))

	return s.nextInterval(ctx, events)
}

// process promotes pending subscribers for newly observed events, diffs
// the new observation against the previous one, batches the resulting
// notices per recipient, and finally installs the new snapshot.
func (s *Service) process(ctx context.Context, events []model.EventSnapshot) {
	previous := s.snapshots.Current()

	// Promotion acknowledgements go out as their own message, separate
	// from whatever score or outcome notices the same tick produces.
	started := map[string][]string{}
	for _, e := range events {
		if !s.registry.HasPending(ctx, e.EventID) {
			continue
		}
		promoted, err := s.registry.Promote(ctx, e.EventID)
		if err != nil {
			s.logger.Error(ctx, "promotion failed",
				logger.Int("eventID", e.EventID), logger.Error(err))
			continue
		}
		text := diff.StartedText(e)
		for _, sub := range promoted {
			started[sub.RecipientID] = append(started[sub.RecipientID], text)
		}
	}

	report := diff.Compute(previous, events)

	notices := map[string][]string{}
	for _, c := range report.ScoreChanged {
		s.fanOut(ctx, notices, c.New.EventID, diff.ScoreText(c.New))
	}
	for _, d := range report.Decided {
		s.fanOut(ctx, notices, d.Event.EventID, diff.DecidedText(d))
	}
	for _, e := range report.Disappeared {
		s.fanOut(ctx, notices, e.EventID, diff.FinalText(e))
		if err := s.registry.DropEvent(ctx, e.EventID); err != nil {
			s.logger.Error(ctx, "registry cleanup failed",
				logger.Int("eventID", e.EventID), logger.Error(err))
		}
	}

	s.enqueueBatches(ctx, started)
	s.enqueueBatches(ctx, notices)

	if _, err := s.snapshots.Swap(events); err != nil {
		s.logger.Error(ctx, "snapshot persist failed", logger.Error(err))
	}
}

// fanOut appends one notice text to every live subscriber of the event.
func (s *Service) fanOut(ctx context.Context, batches map[string][]string, eventID int, text string) {
	for _, sub := range s.registry.ListRecipients(ctx, eventID, model.SectionLive) {
		batches[sub.RecipientID] = append(batches[sub.RecipientID], text)
	}
}

// enqueueBatches joins each recipient's accumulated notices into one
// outbound message. A full queue drops the batch with a log line rather
// than stalling the poll loop.
func (s *Service) enqueueBatches(ctx context.Context, batches map[string][]string) {
	for recipientID, texts := range batches {
		m := queue.Message{
			ID:          uuid.NewString(),
			RecipientID: recipientID,
			Text:        strings.Join(texts, "\n\n"),
		}
		if !s.outbound.Enqueue(ctx, m) {
			s.logger.Warn(ctx, "outbound queue full, dropping batch",
				logger.String("deliveryID", m.ID),
				logger.String("recipient", recipientID),
				logger.Int("notices", len(texts)),
			)
		}
	}
}

// nextInterval picks the polling cadence: the short active interval
// while someone is actually watching a live match, otherwise a long
// sleep aligned to the next idle boundary. The wake signal cuts the
// long sleep short when a subscription arrives.
func (s *Service) nextInterval(ctx context.Context, events []model.EventSnapshot) time.Duration {
	if len(events) > 0 {
		ids := make([]int, len(events))
		for i, e := range events {
			ids[i] = e.EventID
		}
		if s.registry.LiveRecipientCount(ctx, ids) > 0 {
			return s.activeInterval
		}
	}
	return untilNextBoundary(time.Now(), s.idleAlign)
}

// untilNextBoundary returns the wait until the next multiple of align.
// A sliver shorter than a second rolls over to the following boundary.
func untilNextBoundary(now time.Time, align time.Duration) time.Duration {
	d := now.Truncate(align).Add(align).Sub(now)
	if d < time.Second {
		d += align
	}
	return d
}
