package service

import (
	"context"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
	"github.com/kleberrossi/procman/internal/testutil"
)

// pipelineEnv monta pedido aprovado com um item impresso, pronto para
// impressão, produção, QC e expedição.
type pipelineEnv struct {
	db       *gorm.DB
	repos    *repository.Repositories
	orders   *OrderService
	printing *PrintingService
	prod     *ProductionService
	qc       *QCService
	shipping *ShipmentService
	order    *entity.Order
}

func newPipelineEnv(t *testing.T) *pipelineEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	env := &pipelineEnv{
		db:       db,
		repos:    repos,
		orders:   NewOrderService(repos.Order, repos.Packaging, repos.Sequence, repos.AuditLog, nil, nil),
		printing: NewPrintingService(repos.Printing, repos.Order, repos.Sequence, repos.AuditLog),
		prod:     NewProductionService(repos.Production, repos.Order, repos.Printing, repos.Sequence, repos.AuditLog),
		qc:       NewQCService(repos.QC, repos.Order, repos.AuditLog),
		shipping: NewShipmentService(repos.Shipment, repos.Order, repos.AuditLog),
	}

	ctx := context.Background()
	client := testutil.SeedClient(t, db, "Cliente Linha")
	esp := 60
	larg := 300
	alt := 400
	spec := &entity.PackagingSpec{
		EmbalagemCode: "EMB-PIPE",
		Material:      "PEBD",
		EspessuraUm:   &esp,
		LarguraMm:     &larg,
		AlturaMm:      &alt,
		Impresso:      true,
	}
	if err := db.Create(spec).Error; err != nil {
		t.Fatalf("seed printed spec: %v", err)
	}

	order, err := env.orders.Create(ctx, nil, &CreateOrderRequest{ClienteID: client.ID})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := env.orders.AddItem(ctx, order.ID, nil, &AddItemRequest{
		EmbalagemCode: spec.EmbalagemCode,
		Qtd:           1000,
	}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := env.orders.ChangeStatus(ctx, order.ID, nil, entity.OrderStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	env.order = order
	return env
}

func TestPrintingOrderGating(t *testing.T) {
	env := newPipelineEnv(t)
	ctx := context.Background()

	// pedido em rascunho não abre OI
	client := testutil.SeedClient(t, env.db, "Outro Cliente")
	draft, err := env.orders.Create(ctx, nil, &CreateOrderRequest{ClienteID: client.ID})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if _, err := env.printing.Create(ctx, draft.ID, nil, &CreatePrintingOrderRequest{}); err != ErrOrderNotApproved {
		t.Fatalf("OI on draft must fail, got %v", err)
	}

	oi, err := env.printing.Create(ctx, env.order.ID, nil, &CreatePrintingOrderRequest{})
	if err != nil {
		t.Fatalf("create OI: %v", err)
	}
	if !strings.HasPrefix(oi.Numero, "OI-") {
		t.Fatalf("numero = %q", oi.Numero)
	}
	if oi.Status != entity.PrintOrderOpen {
		t.Fatalf("status = %q", oi.Status)
	}

	logs, _ := env.orders.Logs(ctx, env.order.ID)
	var sawOI bool
	for _, l := range logs {
		if l.Acao == entity.AuditOICreated {
			sawOI = true
		}
	}
	if !sawOI {
		t.Fatalf("expected OI_CREATED log")
	}
}

func TestRollReceiptAndStockBalance(t *testing.T) {
	env := newPipelineEnv(t)
	ctx := context.Background()

	oi, err := env.printing.Create(ctx, env.order.ID, nil, &CreatePrintingOrderRequest{})
	if err != nil {
		t.Fatalf("create OI: %v", err)
	}

	bruto := 52.0
	tubo := 1.5
	emb := 0.5
	roll, err := env.printing.ReceiveRoll(ctx, oi.ID, &ReceiveRollRequest{
		PesoBrutoKg:     &bruto,
		TaraTuboKg:      &tubo,
		TaraEmbalagemKg: &emb,
	})
	if err != nil {
		t.Fatalf("ReceiveRoll: %v", err)
	}
	if roll.QC2Status == nil || *roll.QC2Status != entity.QC2Pending {
		t.Fatalf("new roll QC status = %v", roll.QC2Status)
	}

	saldo, err := env.printing.RollBalance(ctx, roll.ID)
	if err != nil {
		t.Fatalf("RollBalance: %v", err)
	}
	if saldo != 50.0 {
		t.Fatalf("saldo = %v, want 50.0 (bruto - taras)", saldo)
	}

	moves, err := env.printing.ListMoves(ctx, roll.ID)
	if err != nil {
		t.Fatalf("ListMoves: %v", err)
	}
	if len(moves) != 1 || moves[0].Tipo != entity.RollMoveIn {
		t.Fatalf("expected single ENTRADA move, got %+v", moves)
	}

	// consumo na produção lança SAIDA
	op, err := env.prod.Create(ctx, env.order.ID, nil, &CreateProductionOrderRequest{})
	if err != nil {
		t.Fatalf("create OP: %v", err)
	}
	consumo := 20.0
	if _, err := env.prod.AddReading(ctx, op.ID, &AddReadingRequest{
		BobinaImpressaID: &roll.ID,
		PesoConsumidoKg:  &consumo,
	}); err != nil {
		t.Fatalf("AddReading: %v", err)
	}

	saldo, _ = env.printing.RollBalance(ctx, roll.ID)
	if saldo != 30.0 {
		t.Fatalf("saldo after consumption = %v, want 30.0", saldo)
	}
}

func TestCutSealEligibility(t *testing.T) {
	env := newPipelineEnv(t)
	ctx := context.Background()

	oi, err := env.printing.Create(ctx, env.order.ID, nil, &CreatePrintingOrderRequest{})
	if err != nil {
		t.Fatalf("create OI: %v", err)
	}

	bruto := 40.0
	roll, err := env.printing.ReceiveRoll(ctx, oi.ID, &ReceiveRollRequest{PesoBrutoKg: &bruto})
	if err != nil {
		t.Fatalf("ReceiveRoll: %v", err)
	}

	// QC2 pendente não abastece corte & solda
	ok, rolls, err := env.printing.CutSealEligibility(ctx, oi.ID, 10)
	if err != nil {
		t.Fatalf("CutSealEligibility: %v", err)
	}
	if ok {
		t.Fatalf("pending roll must not be eligible")
	}
	if len(rolls) != 1 || rolls[0].SaldoKg != 40.0 {
		t.Fatalf("rolls = %+v", rolls)
	}

	if _, err := env.printing.SetRollQC(ctx, roll.ID, entity.QC2Approved, nil, nil); err != nil {
		t.Fatalf("SetRollQC: %v", err)
	}

	ok, _, err = env.printing.CutSealEligibility(ctx, oi.ID, 10)
	if err != nil {
		t.Fatalf("CutSealEligibility: %v", err)
	}
	if !ok {
		t.Fatalf("approved roll with saldo 40 must be eligible for peso_min 10")
	}

	// peso mínimo acima do saldo barra
	ok, _, err = env.printing.CutSealEligibility(ctx, oi.ID, 100)
	if err != nil {
		t.Fatalf("CutSealEligibility: %v", err)
	}
	if ok {
		t.Fatalf("saldo below peso_min must not be eligible")
	}
}

func TestFirstProductionOrderAdvancesOrder(t *testing.T) {
	env := newPipelineEnv(t)
	ctx := context.Background()

	op, err := env.prod.Create(ctx, env.order.ID, nil, &CreateProductionOrderRequest{})
	if err != nil {
		t.Fatalf("create OP: %v", err)
	}
	if !strings.HasPrefix(op.Numero, "OP-") {
		t.Fatalf("numero = %q", op.Numero)
	}

	order, err := env.orders.Get(ctx, env.order.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if order.Status != entity.OrderStatusInProgress {
		t.Fatalf("first OP must advance order to EM_EXECUCAO, got %q", order.Status)
	}

	logs, _ := env.orders.Logs(ctx, env.order.ID)
	var auto bool
	for _, l := range logs {
		if l.Acao == entity.AuditStatusChanged {
			if v, ok := l.Detalhe["auto"].(bool); ok && v {
				auto = true
			}
		}
	}
	if !auto {
		t.Fatalf("expected auto-flagged STATUS_CHANGED log")
	}

	// segunda OP não gera nova transição
	if _, err := env.prod.Create(ctx, env.order.ID, nil, &CreateProductionOrderRequest{}); err != nil {
		t.Fatalf("second OP: %v", err)
	}
	order, _ = env.orders.Get(ctx, env.order.ID)
	if order.Status != entity.OrderStatusInProgress {
		t.Fatalf("status after second OP = %q", order.Status)
	}
}

func TestQCInspectionsForOrder(t *testing.T) {
	env := newPipelineEnv(t)
	ctx := context.Background()

	if _, err := env.qc.AddForOrder(ctx, env.order.ID, nil, &AddInspectionRequest{
		Resultado: "aprovado",
	}); err != nil {
		t.Fatalf("AddForOrder: %v", err)
	}
	if _, err := env.qc.AddForOrder(ctx, env.order.ID, nil, &AddInspectionRequest{
		Tipo:      entity.QCTypePrinted,
		Resultado: entity.QCResultRejected,
	}); err != nil {
		t.Fatalf("AddForOrder: %v", err)
	}
	if _, err := env.qc.AddForOrder(ctx, env.order.ID, nil, &AddInspectionRequest{
		Resultado: "talvez",
	}); err == nil {
		t.Fatalf("unknown resultado must fail")
	}

	insps, err := env.qc.ListForOrder(ctx, env.order.ID)
	if err != nil {
		t.Fatalf("ListForOrder: %v", err)
	}
	if len(insps) != 2 {
		t.Fatalf("inspections = %d, want 2", len(insps))
	}
	if insps[0].Tipo != entity.QCTypeFinished {
		t.Fatalf("default tipo = %q, want QC3", insps[0].Tipo)
	}
	if insps[0].Resultado != entity.QCResultApproved {
		t.Fatalf("resultado must be upcased, got %q", insps[0].Resultado)
	}
}

func TestShipmentLifecycle(t *testing.T) {
	env := newPipelineEnv(t)
	ctx := context.Background()

	modal := entity.ModalCarrier

	// modal fora do enum não passa
	bad := "ferroviario"
	if _, err := env.shipping.Create(ctx, env.order.ID, nil, &CreateShipmentRequest{Modal: &bad}); err == nil {
		t.Fatalf("invalid modal must fail")
	}

	// rascunho não expede
	client := testutil.SeedClient(t, env.db, "Cliente Rascunho")
	draft, err := env.orders.Create(ctx, nil, &CreateOrderRequest{ClienteID: client.ID})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if _, err := env.shipping.Create(ctx, draft.ID, nil, &CreateShipmentRequest{Modal: &modal}); err != ErrOrderNotApproved {
		t.Fatalf("shipment on draft must fail, got %v", err)
	}

	shp, err := env.shipping.Create(ctx, env.order.ID, nil, &CreateShipmentRequest{
		Modal:    &modal,
		Romaneio: map[string]interface{}{"volumes": 12},
	})
	if err != nil {
		t.Fatalf("create shipment: %v", err)
	}
	if shp.Status != entity.ShipmentPending {
		t.Fatalf("new shipment status = %q", shp.Status)
	}

	released, err := env.shipping.Release(ctx, shp.ID)
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if released.Status != entity.ShipmentReleased {
		t.Fatalf("released status = %q", released.Status)
	}

	// liberar duas vezes não passa
	if _, err := env.shipping.Release(ctx, shp.ID); err == nil {
		t.Fatalf("double release must fail")
	}
}

func TestWorkOrderStatusVocabulary(t *testing.T) {
	env := newPipelineEnv(t)
	ctx := context.Background()

	oi, err := env.printing.Create(ctx, env.order.ID, nil, &CreatePrintingOrderRequest{})
	if err != nil {
		t.Fatalf("create OI: %v", err)
	}
	if entity.PrintOrderInProgress != "EM_EXECUCAO" {
		t.Fatalf("OI in-progress status = %q, want EM_EXECUCAO", entity.PrintOrderInProgress)
	}
	if _, err := env.printing.SetStatus(ctx, oi.ID, "EM_EXECUCAO"); err != nil {
		t.Fatalf("OI EM_EXECUCAO: %v", err)
	}
	if _, err := env.printing.SetStatus(ctx, oi.ID, "EM_PROCESSO"); err == nil {
		t.Fatalf("unknown OI status must be rejected")
	}

	op, err := env.prod.Create(ctx, env.order.ID, nil, &CreateProductionOrderRequest{})
	if err != nil {
		t.Fatalf("create OP: %v", err)
	}
	for _, status := range []string{"EM_EXECUCAO", "EM_INSPECAO", "CONCLUIDA"} {
		if _, err := env.prod.SetStatus(ctx, op.ID, status); err != nil {
			t.Fatalf("OP %s: %v", status, err)
		}
	}
	if _, err := env.prod.SetStatus(ctx, op.ID, "EM_PROCESSO"); err == nil {
		t.Fatalf("unknown OP status must be rejected")
	}
}
