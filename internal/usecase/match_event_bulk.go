package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
	"go.opentelemetry.io/otel/attribute"
)

const (
	bulkEventStatusRecorded  = "recorded"
	bulkEventStatusDuplicate = "duplicate"
	bulkEventStatusFailed    = "failed"

	defaultBulkEventMaxWorkers = 4
)

type BulkEventInput struct {
	MatchID string
	Event   matchevent.Event
}

type BulkEventResult struct {
	Index   int    `json:"index"`
	MatchID string `json:"match_id"`
	EventID string `json:"event_id,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type BulkRecordResult struct {
	MatchCount     int               `json:"match_count"`
	EventCount     int               `json:"event_count"`
	RecordedCount  int               `json:"recorded_count"`
	DuplicateCount int               `json:"duplicate_count"`
	FailedCount    int               `json:"failed_count"`
	WorkerCount    int               `json:"worker_count"`
	Items          []BulkEventResult `json:"items"`
}

type bulkEventTask struct {
	index int
	event matchevent.Event
}

// RecordEvents imports a batch of events. Matches are processed in
// parallel; events of one match are applied in input order so they never
// race each other on the same ledger.
func (s *MatchEventService) RecordEvents(ctx context.Context, inputs []BulkEventInput) (BulkRecordResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchEventService.RecordEvents",
		attribute.Int("club_lineup.event_count", len(inputs)))
	defer span.End()

	byMatch := make(map[string][]bulkEventTask)
	matchOrder := make([]string, 0)
	for idx, input := range inputs {
		matchID := strings.TrimSpace(input.MatchID)
		if _, ok := byMatch[matchID]; !ok {
			matchOrder = append(matchOrder, matchID)
		}
		byMatch[matchID] = append(byMatch[matchID], bulkEventTask{index: idx, event: input.Event})
	}

	workerCount := normalizeBulkWorkerCount(s.cfg.BulkMaxWorkers, len(matchOrder))
	result := BulkRecordResult{
		MatchCount:  len(matchOrder),
		EventCount:  len(inputs),
		WorkerCount: workerCount,
		Items:       make([]BulkEventResult, 0, len(inputs)),
	}
	if len(inputs) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BulkRecordResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan BulkEventResult, len(inputs))
	var recordedCount atomic.Int32
	var duplicateCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, matchID := range matchOrder {
		tasks := byMatch[matchID]
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			for _, task := range tasks {
				row := BulkEventResult{Index: task.index, MatchID: matchID}
				recorded, err := s.RecordEvent(ctx, matchID, task.event)
				switch {
				case err != nil:
					row.Status = bulkEventStatusFailed
					row.Message = err.Error()
					failedCount.Add(1)
				case recorded.Duplicate:
					row.Status = bulkEventStatusDuplicate
					row.EventID = recorded.Event.ID
					duplicateCount.Add(1)
				default:
					row.Status = bulkEventStatusRecorded
					row.EventID = recorded.Event.ID
					recordedCount.Add(1)
				}
				results <- row
			}
		}); err != nil {
			workers.Done()
			return BulkRecordResult{}, fmt.Errorf("submit match to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Items = append(result.Items, row)
	}
	sort.Slice(result.Items, func(i, j int) bool {
		return result.Items[i].Index < result.Items[j].Index
	})

	result.RecordedCount = int(recordedCount.Load())
	result.DuplicateCount = int(duplicateCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "bulk match events processed",
		"match_count", result.MatchCount,
		"event_count", result.EventCount,
		"recorded_count", result.RecordedCount,
		"duplicate_count", result.DuplicateCount,
		"failed_count", result.FailedCount,
	)
	return result, nil
}

func normalizeBulkWorkerCount(value int, matchCount int) int {
	if matchCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = defaultBulkEventMaxWorkers
	}
	if value > matchCount {
		value = matchCount
	}
	return value
}
