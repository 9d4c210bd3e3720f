package repository

import "context"

// TxManager выполняет fn в одной транзакции. Репозитории, вызванные с ctx из fn,
// работают внутри неё.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
