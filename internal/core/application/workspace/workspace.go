// Package workspace keeps the operator's view of the transfer list: the
// current page, the dashboard statistics and a selection used for batch
// operations. Refreshes are sequenced so a slow response never overwrites a
// newer one.
package workspace

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"transferflow/internal/core/application/usecases/commands"
	"transferflow/internal/core/application/usecases/queries"
	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/services"
	"transferflow/internal/pkg/sequence"
)

type (
	TransferLister interface {
		Handle(ctx context.Context, query queries.GetTransfersQuery) (services.PagedResult, error)
	}

	StatisticsFetcher interface {
		Handle(ctx context.Context, query queries.GetStatisticsQuery) (services.Statistics, error)
	}

	BatchApplier interface {
		Handle(ctx context.Context, cmd commands.BatchApplyCommand) (commands.BatchOutcome, error)
	}
)

// View is the data last committed by Refresh.
type View struct {
	Page       services.PagedResult
	Statistics services.Statistics
	LoadedAt   time.Time
}

type Workspace struct {
	lister  TransferLister
	stats   StatisticsFetcher
	batch   BatchApplier
	logger  *slog.Logger
	pageSeq sequence.Sequencer
	statSeq sequence.Sequencer

	mu         sync.RWMutex
	filter     services.Filter
	sort       services.Sort
	pagination services.Pagination
	view       View
	selection  []kernel.UUID
}

func New(lister TransferLister, stats StatisticsFetcher, batch BatchApplier, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Workspace{
		lister:     lister,
		stats:      stats,
		batch:      batch,
		logger:     logger.With("component", "workspace"),
		pagination: services.Pagination{}.Normalize(),
	}
}

// SetQuery changes what the next Refresh loads.
func (w *Workspace) SetQuery(filter services.Filter, sort services.Sort, pagination services.Pagination) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filter = filter
	w.sort = sort
	w.pagination = pagination.Normalize()
}

// View returns the last committed page and statistics.
func (w *Workspace) View() View {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.view
}

// Refresh reloads the page and the statistics. It reports false when a newer
// Refresh started meanwhile; the stale result is then dropped.
func (w *Workspace) Refresh(ctx context.Context) (bool, error) {
	pageApplied, err := w.refreshPage(ctx)
	if err != nil {
		return false, err
	}
	statsApplied, err := w.RefreshStatistics(ctx)
	if err != nil {
		return false, err
	}
	return pageApplied && statsApplied, nil
}

func (w *Workspace) refreshPage(ctx context.Context) (bool, error) {
	token := w.pageSeq.Next()

	w.mu.RLock()
	query := queries.NewGetTransfersQuery(w.filter, w.sort, w.pagination)
	w.mu.RUnlock()

	page, err := w.lister.Handle(ctx, query)
	if err != nil {
		return false, err
	}

	applied := w.pageSeq.Commit(token, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.view.Page = page
		w.view.LoadedAt = time.Now()
	})
	if !applied {
		w.logger.DebugContext(ctx, "superseded page response dropped", "token", uint64(token))
	}
	return applied, nil
}

// RefreshStatistics reloads only the statistics, with the same staleness guard as Refresh.
func (w *Workspace) RefreshStatistics(ctx context.Context) (bool, error) {
	token := w.statSeq.Next()

	stats, err := w.stats.Handle(ctx, queries.NewGetStatisticsQuery(time.Time{}))
	if err != nil {
		return false, err
	}

	applied := w.statSeq.Commit(token, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.view.Statistics = stats
	})
	if !applied {
		w.logger.DebugContext(ctx, "superseded statistics response dropped", "token", uint64(token))
	}
	return applied, nil
}

// Select adds ids to the selection, ignoring ones already selected.
func (w *Workspace) Select(ids ...kernel.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range ids {
		if !slices.Contains(w.selection, id) {
			w.selection = append(w.selection, id)
		}
	}
}

// SelectPage selects every order on the current page.
func (w *Workspace) SelectPage() {
	w.mu.RLock()
	ids := make([]kernel.UUID, 0, len(w.view.Page.Items))
	for _, o := range w.view.Page.Items {
		ids = append(ids, o.ID())
	}
	w.mu.RUnlock()
	w.Select(ids...)
}

func (w *Workspace) Deselect(ids ...kernel.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection = slices.DeleteFunc(w.selection, func(id kernel.UUID) bool {
		return slices.Contains(ids, id)
	})
}

func (w *Workspace) ClearSelection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection = nil
}

// Selection returns the selected ids in selection order.
func (w *Workspace) Selection() []kernel.UUID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.selection)
}

// ApplyToSelection runs op on the selected orders. Once the batch has run the
// selection is cleared, whatever the per-item results, and the view is reloaded.
// A command that cannot be built leaves the selection in place.
func (w *Workspace) ApplyToSelection(
	ctx context.Context,
	op commands.BatchOperation,
	actor kernel.Actor,
	remarks string,
) (commands.BatchOutcome, error) {
	cmd, err := commands.NewBatchApplyCommand(op, w.Selection(), actor, remarks)
	if err != nil {
		return commands.BatchOutcome{}, err
	}

	outcome, batchErr := w.batch.Handle(ctx, cmd)
	w.ClearSelection()

	if batchErr != nil {
		return outcome, batchErr
	}

	if _, err = w.Refresh(ctx); err != nil {
		w.logger.WarnContext(ctx, "refresh after batch failed", "operation", op.String(), "error", err)
	}
	return outcome, nil
}
