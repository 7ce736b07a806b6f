package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"
	"go-pos-ledger/pkg/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductLookup resolves a barcode against the live catalog.
type ProductLookup interface {
	FindByBarcode(barcode string) (*model.Product, error)
}

// StockChange is a quantity to take off one product.
type StockChange struct {
	Barcode  string
	Quantity int
}

// RegisterProductRequest is the registration form for a barcode the catalog does not know yet.
type RegisterProductRequest struct {
	Barcode   string          `json:"barcode" validate:"required,max=64"`
	Name      string          `json:"name" validate:"required,max=255"`
	Category  string          `json:"category" validate:"max=100"`
	CostPrice decimal.Decimal `json:"cost_price" validate:"min=0"`
	SalePrice decimal.Decimal `json:"sale_price" validate:"min=0"`
}

type InventoryService interface {
	ProductLookup
	Receive(barcode string) (*model.Product, error)
	RegisterProduct(req *RegisterProductRequest) (*model.Product, error)
	Decrement(barcode string, quantity int) (*model.Product, error)
	DecrementAll(changes []StockChange) error
	GetAllProducts() ([]model.Product, error)
	SearchProducts(query string) ([]model.Product, error)
}

type inventoryService struct {
	catalog repository.CatalogStore
	events  EventPublisher
	log     *zap.Logger
	now     Clock
}

func NewInventoryService(catalog repository.CatalogStore, events EventPublisher, log *zap.Logger, now Clock) InventoryService {
	if events == nil {
		events = nopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &inventoryService{
		catalog: catalog,
		events:  events,
		log:     log,
		now:     now,
	}
}

// indexByBarcode returns the first row with barcode, or -1. Blank barcodes never match.
func indexByBarcode(products []model.Product, barcode string) int {
	if barcode == "" {
		return -1
	}
	for i := range products {
		if products[i].Barcode == barcode {
			return i
		}
	}
	return -1
}

func (s *inventoryService) load() ([]model.Product, error) {
	products, err := s.catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return products, nil
}

func (s *inventoryService) save(products []model.Product) error {
	if err := s.catalog.SaveAll(products); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func (s *inventoryService) FindByBarcode(barcode string) (*model.Product, error) {
	products, err := s.load()
	if err != nil {
		return nil, err
	}
	i := indexByBarcode(products, strings.TrimSpace(barcode))
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, barcode)
	}
	p := products[i]
	return &p, nil
}

func (s *inventoryService) Receive(barcode string) (*model.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, invalidInput("barcode is required")
	}

	products, err := s.load()
	if err != nil {
		return nil, err
	}
	i := indexByBarcode(products, barcode)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBarcode, barcode)
	}

	oldQty := products[i].Quantity
	products[i].Quantity++
	if err := s.save(products); err != nil {
		return nil, err
	}

	p := products[i]
	s.log.Info("stock received",
		zap.String("barcode", p.Barcode),
		zap.String("name", p.Name),
		zap.Int("quantity", p.Quantity),
	)
	s.events.Publish(model.NewStockEvent(model.ActionReceived, p, oldQty,
		fmt.Sprintf("received 1 x '%s', on hand %d", p.Name, p.Quantity)))
	return &p, nil
}

func (s *inventoryService) RegisterProduct(req *RegisterProductRequest) (*model.Product, error) {
	req.Barcode = strings.TrimSpace(req.Barcode)
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, invalidInput("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	products, err := s.load()
	if err != nil {
		return nil, err
	}
	if indexByBarcode(products, req.Barcode) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateBarcode, req.Barcode)
	}

	registeredAt := s.now().Truncate(time.Second)
	product := model.Product{
		Barcode:      req.Barcode,
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     1,
		CostPrice:    req.CostPrice,
		SalePrice:    req.SalePrice,
		SearchKey:    SearchKey(req.Name),
		RegisteredAt: &registeredAt,
	}
	products = append(products, product)
	if err := s.save(products); err != nil {
		return nil, err
	}

	s.log.Info("product registered",
		zap.String("barcode", product.Barcode),
		zap.String("name", product.Name),
		zap.String("search_key", product.SearchKey),
	)
	s.events.Publish(model.NewStockEvent(model.ActionRegistered, product, 0,
		fmt.Sprintf("registered '%s'", product.Name)))
	return &product, nil
}

func (s *inventoryService) Decrement(barcode string, quantity int) (*model.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if err := s.DecrementAll([]StockChange{{Barcode: barcode, Quantity: quantity}}); err != nil {
		return nil, err
	}
	return s.FindByBarcode(barcode)
}

// DecrementAll validates every change against on-hand stock first, then applies
// them with a single catalog rewrite. Nothing is written if any change fails.
func (s *inventoryService) DecrementAll(changes []StockChange) error {
	if len(changes) == 0 {
		return nil
	}

	products, err := s.load()
	if err != nil {
		return err
	}

	requested := make(map[int]int, len(changes))
	for _, c := range changes {
		if c.Quantity < 1 {
			return fmt.Errorf("%w: %d for %s", ErrInvalidQuantity, c.Quantity, c.Barcode)
		}
		i := indexByBarcode(products, c.Barcode)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrProductNotFound, c.Barcode)
		}
		requested[i] += c.Quantity
		if requested[i] > products[i].Quantity {
			return &InsufficientStockError{Barcode: c.Barcode, Available: products[i].Quantity, Requested: requested[i]}
		}
	}

	oldQty := make(map[int]int, len(requested))
	for i, qty := range requested {
		oldQty[i] = products[i].Quantity
		products[i].Quantity -= qty
	}
	if err := s.save(products); err != nil {
		return err
	}

	published := make(map[int]bool, len(requested))
	for _, c := range changes {
		i := indexByBarcode(products, c.Barcode)
		if published[i] {
			continue
		}
		published[i] = true

		p := products[i]
		s.log.Info("stock decremented",
			zap.String("barcode", p.Barcode),
			zap.Int("sold", requested[i]),
			zap.Int("quantity", p.Quantity),
		)
		s.events.Publish(model.NewStockEvent(model.ActionSold, p, oldQty[i],
			fmt.Sprintf("sold %d x '%s', on hand %d", requested[i], p.Name, p.Quantity)))
	}
	return nil
}

// GetAllProducts returns the stock overview, largest on-hand quantity first.
func (s *inventoryService) GetAllProducts() ([]model.Product, error) {
	products, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Quantity > products[j].Quantity
	})
	return products, nil
}

// SearchProducts matches an exact barcode, a search-key prefix or a name substring.
func (s *inventoryService) SearchProducts(query string) ([]model.Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	products, err := s.load()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return products, nil
	}

	matches := []model.Product{}
	for _, p := range products {
		if p.Barcode == query ||
			(p.SearchKey != "" && strings.HasPrefix(p.SearchKey, query)) ||
			strings.Contains(strings.ToLower(p.Name), query) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}
