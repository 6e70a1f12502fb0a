package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	MenuItems() MenuItemRepository
	CartLines() CartLineRepository
	Orders() OrderRepository
	OrderLines() OrderLineRepository
	AuditLogs() AuditLogRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fn がエラーを返したら全てロールバックする。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
