package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/emojipick/pkg/emoji"
)

// ReportItem captures an emoji last used inside the report window.
type ReportItem struct {
	Entry    emoji.Entry
	Count    int
	LastUsed time.Time
}

// ReportSection groups used emojis by category.
type ReportSection struct {
	Category emoji.Category
	Entries  []ReportItem
}

// ReportResult encapsulates a usage report for a time window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
}

// Report returns emojis last used between the provided bounds, grouped by
// category in picker order. Within a section the most used come first.
// Entries whose group is not a browsable category are left out of both the
// sections and Total.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	usage, err := s.History(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	grouped := make(map[string][]ReportItem)
	for _, u := range usage {
		used := time.UnixMilli(u.LastUsage)
		if used.Before(since) || used.After(until) {
			continue
		}
		grouped[u.Entry.Group] = append(grouped[u.Entry.Group], ReportItem{
			Entry:    u.Entry,
			Count:    u.Count,
			LastUsed: used,
		})
	}

	result := ReportResult{Since: since, Until: until}
	if len(grouped) == 0 {
		return result, nil
	}

	for _, cat := range s.categories() {
		items, ok := grouped[cat.ID]
		if !ok {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Count != items[j].Count {
				return items[i].Count > items[j].Count
			}
			return items[i].Entry.Order < items[j].Entry.Order
		})
		result.Sections = append(result.Sections, ReportSection{
			Category: cat,
			Entries:  items,
		})
		result.Total += len(items)
	}
	return result, nil
}
