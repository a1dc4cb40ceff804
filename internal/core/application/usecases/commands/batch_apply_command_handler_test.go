package commands_test

import (
	"context"
	"errors"
	"testing"

	"transferflow/internal/core/application/usecases/commands"
	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewBatchApplyCommand(t *testing.T) {
	a, b := kernel.NewUUID(), kernel.NewUUID()

	t.Run("should drop duplicate ids and keep request order", func(t *testing.T) {
		cmd, err := commands.NewBatchApplyCommand(commands.BatchApprove, []kernel.UUID{b, a, b, a}, mustActor(t, "m"), "")
		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{b, a}, cmd.IDs())
	})

	t.Run("should require a reason for reject", func(t *testing.T) {
		_, err := commands.NewBatchApplyCommand(commands.BatchReject, []kernel.UUID{a}, mustActor(t, "m"), " ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reject reason")
	})

	t.Run("should reject empty ids and unknown operations", func(t *testing.T) {
		_, err := commands.NewBatchApplyCommand(commands.UnknownBatchOperation, nil, mustActor(t, "m"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch operation")
		assert.Contains(t, err.Error(), "ids")
	})
}

func TestParseBatchOperation(t *testing.T) {
	for _, op := range commands.AllBatchOperations() {
		parsed, err := commands.ParseBatchOperation(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
	}
	_, err := commands.ParseBatchOperation("archive")
	require.Error(t, err)
}

func TestBatchApplyCommandHandler_ApproveSkipsMissing(t *testing.T) {
	first := advance(t, draftOrder(t), transfer.Submit)
	second := advance(t, draftOrder(t), transfer.Submit)
	missing := kernel.NewUUID()

	repo := new(MockTransferRepository)
	repo.On("Get", mock.Anything, first.ID()).Return(first, nil)
	repo.On("Get", mock.Anything, second.ID()).Return(second, nil)
	repo.On("Get", mock.Anything, missing).Return(nil, errs.NewObjectNotFoundError("transfer", missing))
	var stored []*transfer.Order
	repo.On("Update", mock.Anything, mock.AnythingOfType("*transfer.Order")).
		Run(func(args mock.Arguments) { stored = append(stored, args.Get(1).(*transfer.Order)) }).
		Return(nil)
	uow, factory := happyUoW(repo)

	cmd, err := commands.NewBatchApplyCommand(commands.BatchApprove,
		[]kernel.UUID{first.ID(), second.ID(), missing}, mustActor(t, "manager"), "")
	require.NoError(t, err)

	outcome, err := commands.NewBatchApplyCommandHandler(factory, nil, nil).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, 3, outcome.Attempted)
	assert.Equal(t, 2, outcome.Applied)
	require.Len(t, outcome.Results, 3)
	assert.True(t, outcome.Results[0].Success)
	assert.True(t, outcome.Results[1].Success)
	assert.False(t, outcome.Results[2].Success)
	assert.Equal(t, errs.KindNotFound, outcome.Results[2].ErrorKind)
	assert.Len(t, outcome.Failed(), 1)

	require.Len(t, stored, 2)
	for _, o := range stored {
		assert.Equal(t, transfer.Approved, o.Status())
	}
	factory.AssertNumberOfCalls(t, "Create", 3)
	uow.AssertNumberOfCalls(t, "Commit", 2)
}

func TestBatchApplyCommandHandler_ContinuesAfterConflict(t *testing.T) {
	draft := draftOrder(t)
	pending := advance(t, draftOrder(t), transfer.Submit)

	repo := new(MockTransferRepository)
	repo.On("Get", mock.Anything, draft.ID()).Return(draft, nil)
	repo.On("Get", mock.Anything, pending.ID()).Return(pending, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	_, factory := happyUoW(repo)

	cmd, err := commands.NewBatchApplyCommand(commands.BatchReject,
		[]kernel.UUID{draft.ID(), pending.ID()}, mustActor(t, "manager"), "budget")
	require.NoError(t, err)

	outcome, err := commands.NewBatchApplyCommandHandler(factory, nil, nil).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Applied)
	assert.Equal(t, errs.KindStateConflict, outcome.Results[0].ErrorKind)
	assert.Contains(t, outcome.Results[0].Error, "cannot reject")
	assert.True(t, outcome.Results[1].Success)
}

func TestBatchApplyCommandHandler_Delete(t *testing.T) {
	a, b := kernel.NewUUID(), kernel.NewUUID()

	repo := new(MockTransferRepository)
	repo.On("Delete", mock.Anything, a).Return(nil).Once()
	repo.On("Delete", mock.Anything, b).Return(errs.NewTransportError("delete", errors.New("injected failure"))).Once()
	_, factory := happyUoW(repo)

	cmd, err := commands.NewBatchApplyCommand(commands.BatchDelete, []kernel.UUID{a, b}, mustActor(t, "admin"), "")
	require.NoError(t, err)

	outcome, err := commands.NewBatchApplyCommandHandler(factory, nil, nil).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Attempted)
	assert.Equal(t, 1, outcome.Applied)
	assert.Equal(t, errs.KindTransport, outcome.Results[1].ErrorKind)
	repo.AssertExpectations(t)
}

func TestBatchApplyCommandHandler_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	cmd, err := commands.NewBatchApplyCommand(commands.BatchCancel, []kernel.UUID{kernel.NewUUID()}, mustActor(t, "m"), "")
	require.NoError(t, err)
	factory := new(MockTransferUoWFactory)

	outcome, err := commands.NewBatchApplyCommandHandler(factory, nil, nil).Handle(ctx, cmd)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, outcome.Attempted)
	factory.AssertNotCalled(t, "Create")
}
