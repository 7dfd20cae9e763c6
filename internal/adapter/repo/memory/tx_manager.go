package memory

import "context"

// TxManager is a pass-through: the in-memory stores have no transaction
// boundary to enforce.
type TxManager struct{}

func NewTxManager() TxManager {
	return TxManager{}
}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
