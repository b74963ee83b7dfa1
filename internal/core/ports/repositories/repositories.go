package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager       TransactionManager
	StockRepo       StockReader
	SaleRepo        SaleReader
	CashSessionRepo CashSessionReader
	DeliveryRepo    DeliveryReader
	ActivityRepo    ActivityReader
	ProductRepo     ProductReader
}
