package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/config"
	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
	"github.com/kleberrossi/procman/internal/service"
	"github.com/kleberrossi/procman/internal/testutil"
)

func newAPI(t *testing.T) (*gin.Engine, *repository.Repositories) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	cfg := &config.Config{}
	cfg.JWT.Secret = testutil.JWTSecret
	cfg.JWT.Issuer = "procman"

	services := service.NewServices(repos, nil, cfg)
	handlers := NewHandlers(services, cfg)

	router := testutil.SetupRouter()
	RegisterRoutes(router, handlers, cfg)
	return router, repos
}

func TestRoutesRequireAuthentication(t *testing.T) {
	router, _ := newAPI(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/clientes", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list = %d, want 401", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"] != float64(40100) {
		t.Fatalf("code = %v, want 40100", resp["code"])
	}
}

func TestRoleGateOnWrites(t *testing.T) {
	router, _ := newAPI(t)
	reader := testutil.GenerateTestToken(2, "Leitor", "leitor@y.com", entity.RoleReader)

	// leitura pode consultar
	w := testutil.DoRequest(router, "GET", "/api/v1/clientes", nil, reader)
	if w.Code != http.StatusOK {
		t.Fatalf("reader list = %d, want 200", w.Code)
	}

	// mas não pode escrever
	w = testutil.DoRequest(router, "POST", "/api/v1/clientes", map[string]interface{}{
		"razao_social": "Bloqueada Ltda",
		"cnpj":         "11222333000181",
	}, reader)
	if w.Code != http.StatusForbidden {
		t.Fatalf("reader create = %d, want 403", w.Code)
	}
}

func TestClientCreateEnvelope(t *testing.T) {
	router, _ := newAPI(t)
	admin := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/clientes", map[string]interface{}{
		"razao_social": "Envelope Ltda",
		"cnpj":         "11222333000181",
	}, admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d, body %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"] != float64(0) {
		t.Fatalf("envelope code = %v, want 0", resp["code"])
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data missing: %v", resp)
	}
	if data["codigo_interno"] != "C00000" {
		t.Fatalf("codigo_interno = %v, want C00000", data["codigo_interno"])
	}

	// payload inválido volta 400 com código de negócio
	w = testutil.DoRequest(router, "POST", "/api/v1/clientes", map[string]interface{}{
		"razao_social": "Sem CNPJ",
	}, admin)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid create = %d, want 400", w.Code)
	}
}

func TestOrderFlowOverHTTP(t *testing.T) {
	router, repos := newAPI(t)
	pcp := testutil.GenerateTestToken(3, "Planejador", "pcp@y.com", entity.RolePCP)

	w := testutil.DoRequest(router, "POST", "/api/v1/clientes", map[string]interface{}{
		"razao_social": "Fluxo Ltda",
		"cnpj":         "11222333000181",
	}, pcp)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client = %d, body %s", w.Code, w.Body.String())
	}
	clientData := testutil.ParseResponse(w)["data"].(map[string]interface{})
	clienteID := uint(clientData["id"].(float64))

	w = testutil.DoRequest(router, "POST", "/api/v1/pedidos", map[string]interface{}{
		"cliente_id": clienteID,
	}, pcp)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order = %d, body %s", w.Code, w.Body.String())
	}
	orderData := testutil.ParseResponse(w)["data"].(map[string]interface{})
	orderID := uint(orderData["id"].(float64))
	if orderData["status"] != entity.OrderStatusDraft {
		t.Fatalf("new order status = %v", orderData["status"])
	}

	// transição inválida volta 40010
	w = testutil.DoRequest(router, "POST", fmt.Sprintf("/api/v1/pedidos/%d/status", orderID),
		map[string]interface{}{"status": entity.OrderStatusCompleted}, pcp)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid transition = %d, want 400", w.Code)
	}
	if resp := testutil.ParseResponse(w); resp["code"] != float64(40010) {
		t.Fatalf("invalid transition code = %v, want 40010", resp["code"])
	}

	w = testutil.DoRequest(router, "POST", fmt.Sprintf("/api/v1/pedidos/%d/status", orderID),
		map[string]interface{}{"status": entity.OrderStatusApproved}, pcp)
	if w.Code != http.StatusOK {
		t.Fatalf("approve = %d, body %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "GET", fmt.Sprintf("/api/v1/pedidos/%d/logs", orderID), nil, pcp)
	if w.Code != http.StatusOK {
		t.Fatalf("logs = %d", w.Code)
	}
	logsData := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if logsData["total"].(float64) < 2 {
		t.Fatalf("expected CREATED and STATUS_CHANGED logs, got %v", logsData["total"])
	}

	// confere a trilha direto no repositório
	logs, err := repos.AuditLog.ListByOrder(context.Background(), orderID)
	if err != nil {
		t.Fatalf("ListByOrder: %v", err)
	}
	if len(logs) == 0 || logs[0].Acao != entity.AuditCreated {
		t.Fatalf("first audit action missing or wrong: %+v", logs)
	}
}

func TestCalcEndpoints(t *testing.T) {
	router, _ := newAPI(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/calc/massa-unidade", map[string]interface{}{
		"material":     "PEBD",
		"espessura_um": 60,
		"largura_mm":   300,
		"altura_mm":    400,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("massa-unidade = %d, body %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	massa := data["massa_unid_kg"].(float64)
	// 0.3m x 0.4m, 60um, densidade 920
	want := 0.3 * 0.4 * (60.0 / 1_000_000.0) * 920.0
	if diff := massa - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("massa = %v, want %v", massa, want)
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/calc/unidades-minimas", map[string]interface{}{
		"qtd_solicitada": 1000,
		"toler_percent":  10,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("unidades-minimas = %d", w.Code)
	}
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["qtd_minima"].(float64) != 900 {
		t.Fatalf("qtd_minima = %v, want 900", data["qtd_minima"])
	}
}

func TestClientDeleteOverHTTP(t *testing.T) {
	router, _ := newAPI(t)
	admin := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/clientes", map[string]interface{}{
		"razao_social": "Vinculada Ltda",
		"cnpj":         "11222333000181",
	}, admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client = %d, body %s", w.Code, w.Body.String())
	}
	busyID := uint(testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(float64))

	w = testutil.DoRequest(router, "POST", "/api/v1/pedidos", map[string]interface{}{
		"cliente_id": busyID,
	}, admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order = %d, body %s", w.Code, w.Body.String())
	}

	// cliente com pedido não sai
	w = testutil.DoRequest(router, "DELETE", fmt.Sprintf("/api/v1/clientes/%d", busyID), nil, admin)
	if w.Code != http.StatusConflict {
		t.Fatalf("delete linked client = %d, want 409", w.Code)
	}
	if resp := testutil.ParseResponse(w); resp["code"] != float64(40920) {
		t.Fatalf("delete linked client code = %v, want 40920", resp["code"])
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/clientes", map[string]interface{}{
		"razao_social": "Livre Ltda",
		"cnpj":         "11222333000262",
	}, admin)
	freeID := uint(testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(float64))

	w = testutil.DoRequest(router, "DELETE", fmt.Sprintf("/api/v1/clientes/%d", freeID), nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("delete free client = %d, body %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(router, "GET", fmt.Sprintf("/api/v1/clientes/%d", freeID), nil, admin)
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted client get = %d, want 404", w.Code)
	}
}

func TestPartnerDuplicateCNPJOverHTTP(t *testing.T) {
	router, _ := newAPI(t)
	admin := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/parceiros", map[string]interface{}{
		"razao_social": "Original Ltda",
		"cnpj":         "22333444000155",
	}, admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("create partner = %d, body %s", w.Code, w.Body.String())
	}
	firstID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(float64)

	w = testutil.DoRequest(router, "POST", "/api/v1/parceiros", map[string]interface{}{
		"razao_social": "Repetida Ltda",
		"cnpj":         "22333444000155",
	}, admin)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate cnpj = %d, want 400", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"] != float64(40002) {
		t.Fatalf("duplicate cnpj code = %v, want 40002", resp["code"])
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok || data["parceiro_id"] != firstID {
		t.Fatalf("duplicate cnpj payload = %v, want parceiro_id %v", resp["data"], firstID)
	}
}
