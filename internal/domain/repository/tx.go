package repository

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos struct {
	Materials MaterialRepository
	Stock     TechnicianStockRepository
	Movements InventoryMovementRepository
	Controls  MaterialControlRepository
	Requests  MaterialRequestRepository
	Patterns  ConsumptionPatternRepository
	Audit     AuditLogRepository
}
