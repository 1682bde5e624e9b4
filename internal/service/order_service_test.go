package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
	"github.com/kleberrossi/procman/internal/testutil"
)

func newOrderService(t *testing.T) (*OrderService, *repository.Repositories, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewOrderService(repos.Order, repos.Packaging, repos.Sequence, repos.AuditLog, nil, nil)
	return svc, repos, db
}

func seedOrder(t *testing.T, svc *OrderService, db *gorm.DB) *entity.Order {
	t.Helper()
	client := testutil.SeedClient(t, db, "Cliente Teste Ltda")
	order, err := svc.Create(context.Background(), nil, &CreateOrderRequest{ClienteID: client.ID})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}
	return order
}

func TestOrderCreateAssignsSequentialNumbers(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()
	client := testutil.SeedClient(t, db, "Cliente A")

	first, err := svc.Create(ctx, nil, &CreateOrderRequest{ClienteID: client.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(ctx, nil, &CreateOrderRequest{ClienteID: client.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !strings.HasPrefix(first.NumeroPedido, "PED-") {
		t.Fatalf("unexpected numero: %q", first.NumeroPedido)
	}
	if first.NumeroPedido == second.NumeroPedido {
		t.Fatalf("numbers must be distinct: %q", first.NumeroPedido)
	}
	if first.Status != entity.OrderStatusDraft {
		t.Fatalf("new order must start as RASCUNHO, got %q", first.Status)
	}

	logs, err := svc.Logs(ctx, first.ID)
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Acao != entity.AuditCreated {
		t.Fatalf("expected single CREATED log, got %+v", logs)
	}
}

func TestOrderStatusMachine(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()
	order := seedOrder(t, svc, db)

	if _, err := svc.ChangeStatus(ctx, order.ID, nil, entity.OrderStatusCompleted); err != ErrInvalidTransition {
		t.Fatalf("RASCUNHO->CONCLUIDO must fail, got %v", err)
	}

	order2, err := svc.ChangeStatus(ctx, order.ID, nil, entity.OrderStatusApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if order2.Status != entity.OrderStatusApproved {
		t.Fatalf("status = %q", order2.Status)
	}

	if _, err := svc.ChangeStatus(ctx, order.ID, nil, entity.OrderStatusDraft); err != ErrInvalidTransition {
		t.Fatalf("APROVADO->RASCUNHO must fail, got %v", err)
	}

	order3, err := svc.ChangeStatus(ctx, order.ID, nil, entity.OrderStatusPlanned)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if order3.Status != entity.OrderStatusPlanned {
		t.Fatalf("status = %q", order3.Status)
	}

	logs, _ := svc.Logs(ctx, order.ID)
	var changes int
	for _, l := range logs {
		if l.Acao == entity.AuditStatusChanged {
			changes++
		}
	}
	if changes != 2 {
		t.Fatalf("expected 2 STATUS_CHANGED entries, got %d", changes)
	}
}

func TestOrderItemsLockedAfterApproval(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()
	order := seedOrder(t, svc, db)
	spec := testutil.SeedPackaging(t, db, "EMB-LOCK", nil)

	item, err := svc.AddItem(ctx, order.ID, nil, &AddItemRequest{
		EmbalagemCode: spec.EmbalagemCode,
		Qtd:           1000,
	})
	if err != nil {
		t.Fatalf("AddItem in draft: %v", err)
	}

	if _, err := svc.ChangeStatus(ctx, order.ID, nil, entity.OrderStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := svc.AddItem(ctx, order.ID, nil, &AddItemRequest{
		EmbalagemCode: spec.EmbalagemCode,
		Qtd:           500,
	}); err != ErrOrderLocked {
		t.Fatalf("AddItem after approval must fail with ErrOrderLocked, got %v", err)
	}
	if err := svc.DeleteItem(ctx, order.ID, item.ID, nil); err != ErrOrderLocked {
		t.Fatalf("DeleteItem after approval must fail with ErrOrderLocked, got %v", err)
	}

	// fora de rascunho só anda o acompanhamento de impressão
	if _, err := svc.UpdateItem(ctx, order.ID, item.ID, nil, map[string]interface{}{
		"qtd": 2000,
	}); err == nil {
		t.Fatalf("qtd patch after approval must be rejected")
	}
	updated, err := svc.UpdateItem(ctx, order.ID, item.ID, nil, map[string]interface{}{
		"status_impressao": entity.ItemPrintDone,
	})
	if err != nil {
		t.Fatalf("status_impressao patch after approval: %v", err)
	}
	if updated.StatusImpressao != entity.ItemPrintDone {
		t.Fatalf("status_impressao = %q", updated.StatusImpressao)
	}
}

func TestOrderRecalcTotals(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()
	order := seedOrder(t, svc, db)
	spec := testutil.SeedPackaging(t, db, "EMB-TOT", nil)

	preco1 := 0.02
	if _, err := svc.AddItem(ctx, order.ID, nil, &AddItemRequest{
		EmbalagemCode: spec.EmbalagemCode,
		Qtd:           1000,
		PrecoUnit:     &preco1,
	}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	preco2 := 0.01
	item2, err := svc.AddItem(ctx, order.ID, nil, &AddItemRequest{
		EmbalagemCode: spec.EmbalagemCode,
		Qtd:           1000,
		PrecoUnit:     &preco2,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	got, err := svc.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PrecoTotal == nil || *got.PrecoTotal != 30.0 {
		t.Fatalf("total with two items = %v, want 30.00", got.PrecoTotal)
	}

	if err := svc.DeleteItem(ctx, order.ID, item2.ID, nil); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	got, _ = svc.Get(ctx, order.ID)
	if got.PrecoTotal == nil || *got.PrecoTotal != 20.0 {
		t.Fatalf("total after delete = %v, want 20.00", got.PrecoTotal)
	}
}

func TestOrderBaseFallbackTotal(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()
	client := testutil.SeedClient(t, db, "Cliente Base")

	base := 0.02
	qtd := 1500.0
	order, err := svc.Create(ctx, nil, &CreateOrderRequest{
		ClienteID:           client.ID,
		PrecoBase:           &base,
		QuantidadePlanejada: &qtd,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PrecoTotal == nil || *got.PrecoTotal != 30.0 {
		t.Fatalf("fallback total = %v, want 30.00", got.PrecoTotal)
	}

	novaBase := 0.008
	if _, err := svc.Update(ctx, order.ID, nil, map[string]interface{}{
		"preco_base": novaBase,
	}); err != nil {
		t.Fatalf("Update preco_base: %v", err)
	}
	got, _ = svc.Get(ctx, order.ID)
	if got.PrecoTotal == nil || *got.PrecoTotal != 12.0 {
		t.Fatalf("recalculated total = %v, want 12.00", got.PrecoTotal)
	}

	logs, _ := svc.Logs(ctx, order.ID)
	var sawRecalc bool
	for _, l := range logs {
		if l.Acao == entity.AuditRecalcTotal {
			sawRecalc = true
		}
	}
	if !sawRecalc {
		t.Fatalf("expected RECALC_TOTAL log after preco_base change")
	}
}

func TestOrderItemSnapshotFrozen(t *testing.T) {
	svc, repos, db := newOrderService(t)
	ctx := context.Background()
	order := seedOrder(t, svc, db)
	spec := testutil.SeedPackaging(t, db, "EMB-SNAP", nil)

	item, err := svc.AddItem(ctx, order.ID, nil, &AddItemRequest{
		EmbalagemCode: spec.EmbalagemCode,
		Qtd:           100,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.SnapshotMaterial != "PEBD" {
		t.Fatalf("snapshot material = %q", item.SnapshotMaterial)
	}

	// alterar o cadastro mestre não mexe no snapshot do item
	if err := db.Model(&entity.PackagingSpec{}).Where("id = ?", spec.ID).
		Update("material", "PP").Error; err != nil {
		t.Fatalf("update master: %v", err)
	}
	items, err := repos.Order.ListItems(ctx, order.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].SnapshotMaterial != "PEBD" {
		t.Fatalf("snapshot must stay frozen, got %+v", items)
	}

	if _, err := svc.UpdateItem(ctx, order.ID, item.ID, nil, map[string]interface{}{
		"snapshot_material": "PET",
	}); err == nil {
		t.Fatalf("snapshot fields must be immutable")
	}
}

func TestOrderMetrics(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()
	order := seedOrder(t, svc, db)
	spec := testutil.SeedPackaging(t, db, "EMB-MET", nil)

	preco := 0.05
	peso := 0.004
	if _, err := svc.AddItem(ctx, order.ID, nil, &AddItemRequest{
		EmbalagemCode:   spec.EmbalagemCode,
		Qtd:             1000,
		PrecoUnit:       &preco,
		PesoUnitKg:      &peso,
		StatusImpressao: entity.ItemPrintDone,
	}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, order.ID, nil, &AddItemRequest{
		EmbalagemCode: spec.EmbalagemCode,
		Qtd:           500,
	}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	m, err := svc.Metrics(ctx, order.ID)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if m.TotalItens != 2 {
		t.Fatalf("TotalItens = %d", m.TotalItens)
	}
	if m.ValorTotalCalc != 50.0 {
		t.Fatalf("ValorTotalCalc = %v, want 50.00", m.ValorTotalCalc)
	}
	if m.TotalQtdUN != 1500 {
		t.Fatalf("TotalQtdUN = %v", m.TotalQtdUN)
	}
	if m.TotalQtdKg != 4.0 {
		t.Fatalf("TotalQtdKg = %v, want 4.0", m.TotalQtdKg)
	}
	if m.PercentualItensImpressos != 50.0 {
		t.Fatalf("PercentualItensImpressos = %v, want 50", m.PercentualItensImpressos)
	}
}

func TestOrderLogsOrderedByID(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()
	order := seedOrder(t, svc, db)
	spec := testutil.SeedPackaging(t, db, "EMB-LOG", nil)

	if _, err := svc.AddItem(ctx, order.ID, nil, &AddItemRequest{
		EmbalagemCode: spec.EmbalagemCode,
		Qtd:           10,
	}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, order.ID, nil, entity.OrderStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}

	logs, err := svc.Logs(ctx, order.ID)
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	for i := 1; i < len(logs); i++ {
		if logs[i-1].ID >= logs[i].ID {
			t.Fatalf("logs must come back in id order: %d before %d", logs[i-1].ID, logs[i].ID)
		}
	}
	if logs[0].Acao != entity.AuditCreated {
		t.Fatalf("first log must be CREATED, got %q", logs[0].Acao)
	}
}

func TestOrderNumbersDistinctUnderConcurrentCreates(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()
	client := testutil.SeedClient(t, db, "Cliente Concorrente")

	const n = 8
	numbers := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order, err := svc.Create(ctx, nil, &CreateOrderRequest{ClienteID: client.ID})
			if err != nil {
				errs[i] = err
				return
			}
			numbers[i] = order.NumeroPedido
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("concurrent Create %d: %v", i, errs[i])
		}
		if seen[numbers[i]] {
			t.Fatalf("duplicate numero %q", numbers[i])
		}
		seen[numbers[i]] = true
	}
	for i := 0; i < n; i++ {
		want := fmt.Sprintf("PED-%06d", i)
		if !seen[want] {
			t.Fatalf("missing %s in allocated numbers", want)
		}
	}
}
