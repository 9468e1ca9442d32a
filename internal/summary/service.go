package summary

import (
	"context"
	"time"

	v1 "github.com/tapstand/pours/internal/api/v1"
	"github.com/tapstand/pours/internal/core/storage"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	store storage.SummaryStore
}

func NewService(store storage.SummaryStore) *Service {
	if store == nil {
		panic("summary: store must not be nil")
	}
	return &Service{store: store}
}

// Summarize computes the windowed read model for one device over
// [from, to], both bounds inclusive on StartedAt. An empty window is a
// valid summary of zeros, not an error; from == to is a valid zero-width
// window.
//
// The two groupings are independent reductions over the same filtered
// rows and run concurrently on separate pooled connections. Cancelling
// ctx cancels both; the first failure cancels the sibling query.
func (s *Service) Summarize(ctx context.Context, deviceID string, from, to time.Time) (*v1.DeviceSummary, error) {
	g, ctx := errgroup.WithContext(ctx)

	var byProduct, byLocation []storage.GroupTotal
	g.Go(func() error {
		var err error
		byProduct, err = s.store.VolumeByProduct(ctx, deviceID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		byLocation, err = s.store.VolumeByLocation(ctx, deviceID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Both groupings reduce the same rows, so their grand totals are
	// identical; the product side is summed for the summary header.
	var totalVolumeMl, totalPours int64
	for _, p := range byProduct {
		totalVolumeMl += p.TotalVolumeMl
		totalPours += p.TotalPours
	}

	result := &v1.DeviceSummary{
		TotalVolumeMl: totalVolumeMl,
		TotalPours:    totalPours,
		ByProduct:     make([]v1.ProductVolume, 0, len(byProduct)),
		ByLocation:    make([]v1.LocationVolume, 0, len(byLocation)),
	}
	for _, p := range byProduct {
		result.ByProduct = append(result.ByProduct, v1.ProductVolume{
			ProductID:     p.Key,
			TotalVolumeMl: p.TotalVolumeMl,
			TotalPours:    p.TotalPours,
		})
	}
	for _, l := range byLocation {
		result.ByLocation = append(result.ByLocation, v1.LocationVolume{
			LocationID:    l.Key,
			TotalVolumeMl: l.TotalVolumeMl,
			TotalPours:    l.TotalPours,
		})
	}

	if len(byProduct) > 0 {
		result.TopProduct = byProduct[0].Key
	}
	if len(byLocation) > 0 {
		result.TopLocation = byLocation[0].Key
	}

	return result, nil
}
