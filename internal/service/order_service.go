package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
)

// defaultTransitions é a política padrão do ciclo de vida do pedido.
// CONCLUIDO e CANCELADO são terminais.
var defaultTransitions = map[string][]string{
	entity.OrderStatusDraft:      {entity.OrderStatusApproved, entity.OrderStatusCancelled},
	entity.OrderStatusApproved:   {entity.OrderStatusPlanned, entity.OrderStatusInProgress, entity.OrderStatusCancelled},
	entity.OrderStatusPlanned:    {entity.OrderStatusInProgress, entity.OrderStatusCancelled},
	entity.OrderStatusInProgress: {entity.OrderStatusCompleted, entity.OrderStatusCancelled},
	entity.OrderStatusCompleted:  {},
	entity.OrderStatusCancelled:  {},
}

const metricsCacheTTL = 30 * time.Second

// OrderService implementa o ciclo de vida do pedido: criação com número
// sequencial, itens com snapshot técnico, máquina de status e auditoria.
type OrderService struct {
	orderRepo *repository.OrderRepository
	pkgRepo   *repository.PackagingRepository
	seqRepo   *repository.SequenceRepository
	auditRepo *repository.AuditLogRepository
	rdb       *redis.Client

	transitions map[string][]string
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	pkgRepo *repository.PackagingRepository,
	seqRepo *repository.SequenceRepository,
	auditRepo *repository.AuditLogRepository,
	rdb *redis.Client,
	transitions map[string][]string,
) *OrderService {
	if len(transitions) == 0 {
		transitions = defaultTransitions
	}
	return &OrderService{
		orderRepo:   orderRepo,
		pkgRepo:     pkgRepo,
		seqRepo:     seqRepo,
		auditRepo:   auditRepo,
		rdb:         rdb,
		transitions: transitions,
	}
}

// CreateOrderRequest cria um pedido em RASCUNHO.
type CreateOrderRequest struct {
	ClienteID           uint     `json:"cliente_id" binding:"required"`
	DataPrevista        *string  `json:"data_prevista"`
	QuantidadeTipo      string   `json:"quantidade_tipo"`
	PrecoTotal          *float64 `json:"preco_total"`
	PrecoBase           *float64 `json:"preco_base"`
	QuantidadePlanejada *float64 `json:"quantidade_planejada"`
	MargemTolerPercent  float64  `json:"margem_toler_percent"`
	NCM                 *string  `json:"ncm"`
	EmbalagemCode       *string  `json:"embalagem_code"`
	RepresentanteID     *uint    `json:"representante_id"`
	RepresentanteNome   *string  `json:"representante_nome"`
	RegimeVenda         *string  `json:"regime_venda"`
	ComissaoPercent     *float64 `json:"comissao_percent"`
	CondicoesComerciais *string  `json:"condicoes_comerciais"`
}

// Create abre o pedido com número PED-%06d tirado do numerador, já com a
// entrada CREATED na auditoria. Tudo na mesma transação.
func (s *OrderService) Create(ctx context.Context, userID *uint, req *CreateOrderRequest) (*entity.Order, error) {
	if req.ClienteID == 0 {
		return nil, invalidField("cliente_id", "obrigatório")
	}
	qtdTipo := req.QuantidadeTipo
	if qtdTipo == "" {
		qtdTipo = entity.QtyUnitPieces
	}
	if qtdTipo != entity.QtyUnitPieces && qtdTipo != entity.QtyUnitKilos {
		return nil, invalidField("quantidade_tipo", "deve ser UN ou KG")
	}
	if req.NCM != nil && *req.NCM != "" && !validNCM(*req.NCM) {
		return nil, invalidField("ncm", "deve ter 8 dígitos")
	}

	// preco_total ausente deriva de preco_base * quantidade_planejada
	precoTotal := req.PrecoTotal
	if precoTotal == nil && req.PrecoBase != nil && req.QuantidadePlanejada != nil {
		v := *req.PrecoBase * *req.QuantidadePlanejada
		precoTotal = &v
	}

	var order *entity.Order
	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		n, err := s.seqRepo.NextNumber(ctx, tx, entity.SeqOrder)
		if err != nil {
			return fmt.Errorf("next order number: %w", err)
		}
		clienteID := req.ClienteID
		order = &entity.Order{
			ClienteID:           &clienteID,
			NumeroPedido:        fmt.Sprintf("PED-%06d", n),
			DataEmissao:         time.Now().Format("2006-01-02"),
			DataPrevista:        req.DataPrevista,
			QuantidadeTipo:      qtdTipo,
			Status:              entity.OrderStatusDraft,
			PrecoTotal:          precoTotal,
			PrecoBase:           req.PrecoBase,
			QuantidadePlanejada: req.QuantidadePlanejada,
			MargemTolerPercent:  req.MargemTolerPercent,
			NCM:                 req.NCM,
			EmbalagemCode:       req.EmbalagemCode,
			RepresentanteID:     req.RepresentanteID,
			RepresentanteNome:   req.RepresentanteNome,
			RegimeVenda:         req.RegimeVenda,
			ComissaoPercent:     req.ComissaoPercent,
			CondicoesComerciais: req.CondicoesComerciais,
		}
		if err := s.orderRepo.CreateTx(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return s.appendLog(ctx, tx, order.ID, userID, entity.AuditCreated,
			entity.JSONB{"numero": order.NumeroPedido})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*entity.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context, filters map[string]interface{}) ([]entity.Order, error) {
	return s.orderRepo.List(ctx, filters)
}

func (s *OrderService) Logs(ctx context.Context, pedidoID uint) ([]entity.AuditLog, error) {
	if _, err := s.orderRepo.FindByID(ctx, pedidoID); err != nil {
		return nil, err
	}
	return s.auditRepo.ListByOrder(ctx, pedidoID)
}

// orderUpdatableFields são os campos comerciais editáveis em RASCUNHO.
var orderUpdatableFields = map[string]bool{
	"cliente_id": true, "data_prevista": true, "regime_venda": true,
	"comissao_percent": true, "representante_nome": true,
	"quantidade_planejada": true, "condicoes_comerciais": true,
	"embalagem_code": true, "preco_base": true, "preco_total": true,
	"quantidade_tipo": true, "ncm": true, "margem_toler_percent": true,
}

// Update altera campos comerciais do pedido. Só RASCUNHO aceita; o diff
// campo a campo vai para a auditoria como UPDATED.
func (s *OrderService) Update(ctx context.Context, id uint, userID *uint, fields map[string]interface{}) (*entity.Order, error) {
	clean := map[string]interface{}{}
	for k, v := range fields {
		if orderUpdatableFields[k] {
			clean[k] = v
		}
	}
	if len(clean) == 0 {
		return nil, invalidField("body", "nenhum campo permitido para atualização")
	}
	if ncm, ok := clean["ncm"].(string); ok && ncm != "" && !validNCM(ncm) {
		return nil, invalidField("ncm", "deve ter 8 dígitos")
	}

	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		old, err := s.orderRepo.FindByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if old.Status != entity.OrderStatusDraft {
			return ErrOrderLocked
		}

		items, err := s.orderRepo.ListItemsTx(ctx, tx, id)
		if err != nil {
			return err
		}
		// sem itens, preco_base sozinho replica no total
		if _, hasBase := clean["preco_base"]; hasBase && len(items) == 0 {
			if _, hasTotal := clean["preco_total"]; !hasTotal {
				clean["preco_total"] = clean["preco_base"]
			}
		}

		if err := s.orderRepo.UpdateColumnsTx(ctx, tx, id, clean); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		updated, err := s.orderRepo.FindByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}
		changed := diffOrders(old, updated, clean)
		if len(changed) > 0 {
			if err := s.appendLog(ctx, tx, id, userID, entity.AuditUpdated,
				entity.JSONB{"fields": changed}); err != nil {
				return err
			}
		}

		// campos base mudaram e não há itens: total acompanha
		if len(items) == 0 && touchesBase(changed) {
			oldTotal := old.PrecoTotal
			newTotal, err := s.recalcTotal(ctx, tx, id)
			if err != nil {
				return err
			}
			if changedTotal(oldTotal, newTotal) {
				if err := s.appendLog(ctx, tx, id, userID, entity.AuditRecalcTotal,
					entity.JSONB{"de": floatOrNil(oldTotal), "para": floatOrNil(newTotal), "motivo": "patch campos base sem itens"}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateMetrics(ctx, id)
	return s.orderRepo.FindByID(ctx, id)
}

// AddItemRequest adiciona uma linha ao pedido.
type AddItemRequest struct {
	EmbalagemCode      string   `json:"embalagem_code" binding:"required"`
	Rev                *string  `json:"rev"`
	Descricao          string   `json:"descricao"`
	Qtd                float64  `json:"qtd"`
	QtdTipo            string   `json:"qtd_tipo"`
	PrecoUnit          *float64 `json:"preco_unit"`
	PrecoKg            *float64 `json:"preco_kg"`
	PesoUnitKg         *float64 `json:"peso_unit_kg"`
	MargemTolerPercent *float64 `json:"margem_toler_percent"`
	AnelExtrusao       *string  `json:"anel_extrusao"`
	StatusImpressao    string   `json:"status_impressao"`
}

// AddItem insere o item com snapshot técnico da embalagem congelado no
// momento da inserção, loga ITEM_ADDED e recalcula o total. Pedido fora
// de RASCUNHO rejeita com ErrOrderLocked.
func (s *OrderService) AddItem(ctx context.Context, pedidoID uint, userID *uint, req *AddItemRequest) (*entity.OrderItem, error) {
	if req.EmbalagemCode == "" {
		return nil, invalidField("embalagem_code", "obrigatório")
	}
	spec, err := s.pkgRepo.FindByCodeRev(ctx, req.EmbalagemCode, req.Rev)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, invalidField("embalagem_code", "embalagem não encontrada para snapshot")
		}
		return nil, err
	}

	var item *entity.OrderItem
	err = s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDTx(ctx, tx, pedidoID)
		if err != nil {
			return err
		}
		if order.Status != entity.OrderStatusDraft {
			return ErrOrderLocked
		}

		descricao := req.Descricao
		if descricao == "" {
			descricao = spec.EmbalagemCode
		}
		qtdTipo := req.QtdTipo
		if qtdTipo == "" {
			qtdTipo = entity.QtyUnitPieces
		}
		statusImpressao := req.StatusImpressao
		if statusImpressao == "" {
			statusImpressao = entity.ItemPrintDraft
		}

		item = &entity.OrderItem{
			PedidoID:           pedidoID,
			EmbalagemCode:      spec.EmbalagemCode,
			Rev:                spec.Rev,
			Descricao:          descricao,
			Qtd:                req.Qtd,
			QtdTipo:            qtdTipo,
			PrecoUnit:          req.PrecoUnit,
			PrecoKg:            req.PrecoKg,
			PesoUnitKg:         req.PesoUnitKg,
			MargemTolerPercent: req.MargemTolerPercent,

			SnapshotMaterial:    spec.Material,
			SnapshotEspessuraUm: spec.EspessuraUm,
			SnapshotLarguraMm:   spec.LarguraMm,
			SnapshotAlturaMm:    spec.AlturaMm,
			SnapshotSanfonaMm:   spec.SanfonaMm,
			SnapshotAbaMm:       spec.AbaMm,
			SnapshotFitaTipo:    spec.FitaTipo,
			SnapshotImpresso:    spec.Impresso,

			AnelExtrusao:    req.AnelExtrusao,
			StatusImpressao: statusImpressao,
		}
		if err := s.orderRepo.CreateItemTx(ctx, tx, item); err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		if err := s.appendLog(ctx, tx, pedidoID, userID, entity.AuditItemAdded,
			entity.JSONB{"item_id": item.ID, "embalagem_code": item.EmbalagemCode}); err != nil {
			return err
		}
		return s.recalcAndLog(ctx, tx, pedidoID, userID, order.PrecoTotal)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateMetrics(ctx, pedidoID)
	return item, nil
}

// itemDraftFields só podem mudar enquanto o pedido está em RASCUNHO.
var itemDraftFields = map[string]bool{
	"descricao": true, "qtd": true, "qtd_tipo": true, "preco_unit": true,
	"preco_kg": true, "peso_unit_kg": true, "margem_toler_percent": true,
}

// itemAlwaysFields seguem editáveis após aprovação (execução de chão de
// fábrica), até o pedido fechar.
var itemAlwaysFields = map[string]bool{
	"status_impressao": true, "anel_extrusao": true,
}

// UpdateItem aplica o subconjunto de campos permitido pelo status do
// pedido. snapshot_* nunca muda. Diff vai como ITEM_UPDATED.
func (s *OrderService) UpdateItem(ctx context.Context, pedidoID, itemID uint, userID *uint, fields map[string]interface{}) (*entity.OrderItem, error) {
	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDTx(ctx, tx, pedidoID)
		if err != nil {
			return err
		}
		if order.Status == entity.OrderStatusCompleted || order.Status == entity.OrderStatusCancelled {
			return ErrOrderLocked
		}

		var item entity.OrderItem
		if err := tx.WithContext(ctx).First(&item, "id = ? AND pedido_id = ?", itemID, pedidoID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return repository.ErrNotFound
			}
			return err
		}

		clean := map[string]interface{}{}
		for k, v := range fields {
			if itemAlwaysFields[k] {
				clean[k] = v
				continue
			}
			if order.Status == entity.OrderStatusDraft && itemDraftFields[k] {
				clean[k] = v
			}
		}
		if len(clean) == 0 {
			return invalidField("body", "nenhum campo permitido para atualização")
		}

		if err := tx.WithContext(ctx).Model(&entity.OrderItem{}).
			Where("id = ?", itemID).Updates(clean).Error; err != nil {
			return fmt.Errorf("update item: %w", err)
		}

		var updated entity.OrderItem
		if err := tx.WithContext(ctx).First(&updated, "id = ?", itemID).Error; err != nil {
			return err
		}
		diffs := diffItems(&item, &updated, clean)
		if len(diffs) > 0 {
			if err := s.appendLog(ctx, tx, pedidoID, userID, entity.AuditItemUpdated,
				entity.JSONB{"item_id": itemID, "changes": diffs}); err != nil {
				return err
			}
		}
		return s.recalcAndLog(ctx, tx, pedidoID, userID, order.PrecoTotal)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateMetrics(ctx, pedidoID)
	return s.orderRepo.FindItemByID(ctx, itemID)
}

// DeleteItem remove a linha. Só em RASCUNHO.
func (s *OrderService) DeleteItem(ctx context.Context, pedidoID, itemID uint, userID *uint) error {
	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDTx(ctx, tx, pedidoID)
		if err != nil {
			return err
		}
		if order.Status != entity.OrderStatusDraft {
			return ErrOrderLocked
		}
		var item entity.OrderItem
		if err := tx.WithContext(ctx).First(&item, "id = ? AND pedido_id = ?", itemID, pedidoID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return repository.ErrNotFound
			}
			return err
		}
		if err := s.orderRepo.DeleteItemTx(ctx, tx, itemID); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if err := s.appendLog(ctx, tx, pedidoID, userID, entity.AuditItemDeleted,
			entity.JSONB{"item_id": itemID}); err != nil {
			return err
		}
		return s.recalcAndLog(ctx, tx, pedidoID, userID, order.PrecoTotal)
	})
	if err == nil {
		s.invalidateMetrics(ctx, pedidoID)
	}
	return err
}

// ChangeStatus move o pedido pela máquina de estados. Transições fora
// do mapa rejeitam com ErrInvalidTransition; a mudança e sua origem vão
// como STATUS_CHANGED.
func (s *OrderService) ChangeStatus(ctx context.Context, pedidoID uint, userID *uint, novo string) (*entity.Order, error) {
	if _, known := s.transitions[novo]; !known {
		return nil, invalidField("status", "status inválido")
	}
	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDTx(ctx, tx, pedidoID)
		if err != nil {
			return err
		}
		if !s.canTransition(order.Status, novo) {
			return ErrInvalidTransition
		}
		if err := s.orderRepo.UpdateColumnsTx(ctx, tx, pedidoID,
			map[string]interface{}{"status": novo}); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if err := s.appendLog(ctx, tx, pedidoID, userID, entity.AuditStatusChanged,
			entity.JSONB{"de": order.Status, "para": novo}); err != nil {
			return err
		}
		_, err = s.recalcTotal(ctx, tx, pedidoID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidateMetrics(ctx, pedidoID)
	return s.orderRepo.FindByID(ctx, pedidoID)
}

func (s *OrderService) canTransition(from, to string) bool {
	for _, t := range s.transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// OrderMetrics são os agregados derivados dos itens do pedido.
type OrderMetrics struct {
	PedidoID                  uint     `json:"pedido_id"`
	ValorTotalCalc            float64  `json:"valor_total_calc"`
	ValorTotalRegistrado      *float64 `json:"valor_total_registrado"`
	TotalItens                int      `json:"total_itens"`
	TotalQtdUN                float64  `json:"total_qtd_un"`
	TotalQtdKg                float64  `json:"total_qtd_kg"`
	PesoEstimadoTotalKg       float64  `json:"peso_estimado_total_kg"`
	UnidadesEstimadaDeKg      float64  `json:"unidades_estimada_de_kg"`
	PercentualItensImpressos  float64  `json:"percentual_itens_impressos"`
}

// Metrics calcula os agregados do pedido, com cache curto no Redis.
func (s *OrderService) Metrics(ctx context.Context, pedidoID uint) (*OrderMetrics, error) {
	cacheKey := fmt.Sprintf("pedido:metrics:%d", pedidoID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var m OrderMetrics
			if json.Unmarshal([]byte(cached), &m) == nil {
				return &m, nil
			}
		}
	}

	order, err := s.orderRepo.FindByID(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	items, err := s.orderRepo.ListItems(ctx, pedidoID)
	if err != nil {
		return nil, err
	}

	m := &OrderMetrics{
		PedidoID:             pedidoID,
		ValorTotalRegistrado: order.PrecoTotal,
		TotalItens:           len(items),
	}
	impressosConcluidos := 0
	for _, it := range items {
		precoUnit := 0.0
		if it.PrecoUnit != nil {
			precoUnit = *it.PrecoUnit
		}
		pesoUnit := 0.0
		if it.PesoUnitKg != nil {
			pesoUnit = *it.PesoUnitKg
		}
		m.ValorTotalCalc += it.Qtd * precoUnit
		if it.QtdTipo == entity.QtyUnitKilos {
			m.TotalQtdKg += it.Qtd
			if pesoUnit > 0 {
				m.UnidadesEstimadaDeKg += it.Qtd / pesoUnit
			}
		} else {
			m.TotalQtdUN += it.Qtd
			if pesoUnit > 0 {
				m.TotalQtdKg += it.Qtd * pesoUnit
			}
		}
		if it.StatusImpressao == entity.ItemPrintDone {
			impressosConcluidos++
		}
	}
	m.PesoEstimadoTotalKg = m.TotalQtdKg
	if m.TotalItens > 0 {
		m.PercentualItensImpressos = float64(impressosConcluidos) / float64(m.TotalItens) * 100
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(m); err == nil {
			s.rdb.Set(ctx, cacheKey, payload, metricsCacheTTL)
		}
	}
	return m, nil
}

func (s *OrderService) invalidateMetrics(ctx context.Context, pedidoID uint) {
	if s.rdb != nil {
		s.rdb.Del(ctx, fmt.Sprintf("pedido:metrics:%d", pedidoID))
	}
}

// recalcTotal reaplica a regra do total: soma(qtd*preco_unit) quando há
// itens, senão preco_base*quantidade_planejada quando ambos existem.
func (s *OrderService) recalcTotal(ctx context.Context, tx *gorm.DB, pedidoID uint) (*float64, error) {
	order, err := s.orderRepo.FindByIDTx(ctx, tx, pedidoID)
	if err != nil {
		return nil, err
	}
	items, err := s.orderRepo.ListItemsTx(ctx, tx, pedidoID)
	if err != nil {
		return nil, err
	}

	var newTotal *float64
	if len(items) > 0 {
		total := 0.0
		for _, it := range items {
			if it.PrecoUnit != nil {
				total += it.Qtd * *it.PrecoUnit
			}
		}
		newTotal = &total
	} else if order.PrecoBase != nil && order.QuantidadePlanejada != nil {
		total := *order.PrecoBase * *order.QuantidadePlanejada
		newTotal = &total
	}

	err = s.orderRepo.UpdateColumnsTx(ctx, tx, pedidoID,
		map[string]interface{}{"preco_total": newTotal})
	if err != nil {
		return nil, fmt.Errorf("recalc total: %w", err)
	}
	return newTotal, nil
}

func (s *OrderService) recalcAndLog(ctx context.Context, tx *gorm.DB, pedidoID uint, userID *uint, oldTotal *float64) error {
	newTotal, err := s.recalcTotal(ctx, tx, pedidoID)
	if err != nil {
		return err
	}
	if changedTotal(oldTotal, newTotal) {
		return s.appendLog(ctx, tx, pedidoID, userID, entity.AuditRecalcTotal,
			entity.JSONB{"de": floatOrNil(oldTotal), "para": floatOrNil(newTotal)})
	}
	return nil
}

func (s *OrderService) appendLog(ctx context.Context, tx *gorm.DB, pedidoID uint, userID *uint, acao string, detalhe entity.JSONB) error {
	return s.auditRepo.AppendTx(ctx, tx, &entity.AuditLog{
		PedidoID: pedidoID,
		UserID:   userID,
		Acao:     acao,
		Detalhe:  detalhe,
	})
}

func changedTotal(old, new *float64) bool {
	if old == nil && new == nil {
		return false
	}
	if old == nil || new == nil {
		return true
	}
	return *old != *new
}

func floatOrNil(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func diffOrders(old, new *entity.Order, touched map[string]interface{}) map[string]interface{} {
	oldJSON := orderAsMap(old)
	newJSON := orderAsMap(new)
	changed := map[string]interface{}{}
	for k := range touched {
		ov, nv := oldJSON[k], newJSON[k]
		if fmt.Sprint(ov) != fmt.Sprint(nv) {
			changed[k] = map[string]interface{}{"old": ov, "new": nv}
		}
	}
	return changed
}

func diffItems(old, new *entity.OrderItem, touched map[string]interface{}) map[string]interface{} {
	oldJSON := asMap(old)
	newJSON := asMap(new)
	changed := map[string]interface{}{}
	for k := range touched {
		ov, nv := oldJSON[k], newJSON[k]
		if fmt.Sprint(ov) != fmt.Sprint(nv) {
			changed[k] = map[string]interface{}{"de": ov, "para": nv}
		}
	}
	return changed
}

func orderAsMap(o *entity.Order) map[string]interface{} {
	return asMap(o)
}

func asMap(v interface{}) map[string]interface{} {
	raw, _ := json.Marshal(v)
	out := map[string]interface{}{}
	json.Unmarshal(raw, &out)
	return out
}

func touchesBase(changed map[string]interface{}) bool {
	for _, k := range []string{"preco_base", "quantidade_planejada", "quantidade_tipo"} {
		if _, ok := changed[k]; ok {
			return true
		}
	}
	return false
}
