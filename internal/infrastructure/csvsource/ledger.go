package csvsource

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-inventory/internal/application/inventory"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// Ledger traslados y movimientos de una corrida offline. No se persisten.
type Ledger struct {
	mu        sync.RWMutex
	transfers map[string]*entity.MaterialTransfer
	movements []*entity.InventoryMovement
}

// NewLedger ledger vacío.
func NewLedger() *Ledger {
	return &Ledger{transfers: map[string]*entity.MaterialTransfer{}}
}

// Transfers puerto de traslados.
func (l *Ledger) Transfers() repository.TransferRepository { return transferRepo{l} }

// Movements puerto del kardex.
func (l *Ledger) Movements() repository.InventoryMovementRepository { return movementRepo{l} }

type transferRepo struct{ l *Ledger }

func (r transferRepo) Create(_ context.Context, t *entity.MaterialTransfer) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if _, ok := r.l.transfers[t.ID]; ok {
		return fmt.Errorf("%w: traslado %s ya existe", domain.ErrConflict, t.Code)
	}
	c := *t
	r.l.transfers[t.ID] = &c
	return nil
}

func (r transferRepo) GetByID(_ context.Context, id string) (*entity.MaterialTransfer, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	t, ok := r.l.transfers[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (r transferRepo) GetForUpdate(ctx context.Context, id string) (*entity.MaterialTransfer, error) {
	return r.GetByID(ctx, id)
}

func (r transferRepo) Update(_ context.Context, t *entity.MaterialTransfer) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if _, ok := r.l.transfers[t.ID]; !ok {
		return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, t.ID)
	}
	c := *t
	r.l.transfers[t.ID] = &c
	return nil
}

func (r transferRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.MaterialTransfer, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	var out []*entity.MaterialTransfer
	for _, t := range r.l.transfers {
		if status == "" || t.Status == status {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Code > out[j].Code
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type movementRepo struct{ l *Ledger }

func (r movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	c := *m
	r.l.movements = append(r.l.movements, &c)
	return nil
}

func (r movementRepo) ListByTransaction(_ context.Context, transactionID string) ([]*entity.InventoryMovement, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	var out []*entity.InventoryMovement
	for _, m := range r.l.movements {
		if m.TransactionID == transactionID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

// TxRunner serializa las transacciones sobre el dataset y el ledger; si fn falla
// restaura stock, precios, traslados y movimientos al estado previo.
type TxRunner struct {
	mu     sync.Mutex
	ds     *Dataset
	ledger *Ledger
}

// NewTxRunner construye el runner en memoria.
func NewTxRunner(ds *Dataset, ledger *Ledger) *TxRunner {
	return &TxRunner{ds: ds, ledger: ledger}
}

// Run ejecuta fn con los repos en memoria.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.InventoryMovementRepository,
	transferRepo repository.TransferRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	restore := r.checkpoint()
	if err := fn(r.ds.Stock(), r.ledger.Movements(), r.ledger.Transfers(), r.ds.Materials()); err != nil {
		restore()
		return err
	}
	return nil
}

func (r *TxRunner) checkpoint() func() {
	r.ds.mu.RLock()
	stock := make(map[repository.DemandKey]entity.StockSnapshot, len(r.ds.stock))
	for k, s := range r.ds.stock {
		stock[k] = *s
	}
	prices := make(map[string]decimal.Decimal, len(r.ds.materials))
	for id, m := range r.ds.materials {
		prices[id] = m.UnitPrice
	}
	r.ds.mu.RUnlock()

	r.ledger.mu.RLock()
	transfers := make(map[string]entity.MaterialTransfer, len(r.ledger.transfers))
	for id, t := range r.ledger.transfers {
		transfers[id] = *t
	}
	movements := len(r.ledger.movements)
	r.ledger.mu.RUnlock()

	return func() {
		r.ds.mu.Lock()
		r.ds.stock = make(map[repository.DemandKey]*entity.StockSnapshot, len(stock))
		for k, s := range stock {
			s := s
			r.ds.stock[k] = &s
		}
		for id, p := range prices {
			r.ds.materials[id].UnitPrice = p
		}
		r.ds.mu.Unlock()

		r.ledger.mu.Lock()
		r.ledger.transfers = make(map[string]*entity.MaterialTransfer, len(transfers))
		for id, t := range transfers {
			t := t
			r.ledger.transfers[id] = &t
		}
		r.ledger.movements = r.ledger.movements[:movements]
		r.ledger.mu.Unlock()
	}
}
