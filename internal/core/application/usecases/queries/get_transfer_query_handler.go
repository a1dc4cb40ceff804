package queries

import (
	"context"

	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/core/ports"
)

type GetTransferQueryHandler struct {
	reader ports.TransferReader
}

func NewGetTransferQueryHandler(reader ports.TransferReader) GetTransferQueryHandler {
	return GetTransferQueryHandler{reader: reader}
}

// Handle returns ObjectNotFoundError for an unknown id.
func (h GetTransferQueryHandler) Handle(ctx context.Context, query GetTransferQuery) (*transfer.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.Get(ctx, query.ID())
}
