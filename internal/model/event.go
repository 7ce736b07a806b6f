package model

// StockEvent actions
const (
	ActionReceived   = "stock_received"
	ActionRegistered = "product_registered"
	ActionSold       = "stock_sold"
)

// StockEvent is pushed to live displays whenever on-hand quantity changes.
type StockEvent struct {
	Type        string `json:"type"`
	Action      string `json:"action"`
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
	Message     string `json:"message"`
}

// NewStockEvent fills in the envelope type shared by all stock events.
func NewStockEvent(action string, p Product, oldQty int, message string) StockEvent {
	return StockEvent{
		Type:        "stock_update",
		Action:      action,
		Barcode:     p.Barcode,
		Name:        p.Name,
		OldQuantity: oldQty,
		NewQuantity: p.Quantity,
		Message:     message,
	}
}
