package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
	"github.com/kleberrossi/procman/internal/testutil"
)

func newClientService(t *testing.T) (*ClientService, *repository.Repositories) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewClientService(repos.Client, repos.Sequence), repos
}

func TestClientCodesAreSequential(t *testing.T) {
	svc, _ := newClientService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, &CreateClientRequest{
		RazaoSocial: "Primeira Ltda",
		CNPJ:        "11222333000181",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(ctx, &CreateClientRequest{
		RazaoSocial: "Segunda Ltda",
		CNPJ:        "11222333000262",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if first.CodigoInterno == nil || *first.CodigoInterno != "C00000" {
		t.Fatalf("first code = %v, want C00000", first.CodigoInterno)
	}
	if second.CodigoInterno == nil || *second.CodigoInterno != "C00001" {
		t.Fatalf("second code = %v, want C00001", second.CodigoInterno)
	}
}

func TestClientCreateValidation(t *testing.T) {
	svc, _ := newClientService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateClientRequest
	}{
		{"missing razao", CreateClientRequest{CNPJ: "11222333000181"}},
		{"short cnpj", CreateClientRequest{RazaoSocial: "X", CNPJ: "123"}},
		{"bad uf", CreateClientRequest{RazaoSocial: "X", CNPJ: "11222333000181", Estado: "XX"}},
		{"bad cep", CreateClientRequest{RazaoSocial: "X", CNPJ: "11222333000181", CEP: "12"}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, &tc.req); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}

	// CNPJ formatado é normalizado para dígitos
	client, err := svc.Create(ctx, &CreateClientRequest{
		RazaoSocial: "Formatada Ltda",
		CNPJ:        "11.222.333/0001-81",
		CEP:         "01310-100",
		Estado:      "sp",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if client.CNPJ != "11222333000181" {
		t.Fatalf("cnpj = %q", client.CNPJ)
	}
	if client.CEP != "01310100" {
		t.Fatalf("cep = %q", client.CEP)
	}
	if client.Estado != "SP" {
		t.Fatalf("estado = %q", client.Estado)
	}
}

func TestClientBackfillCodes(t *testing.T) {
	svc, repos := newClientService(t)
	ctx := context.Background()

	// clientes anteriores à numeração entram sem código
	for i := 0; i < 3; i++ {
		c := &entity.Client{
			RazaoSocial: fmt.Sprintf("Antigo %d", i),
			CNPJ:        fmt.Sprintf("1122233300%04d", i),
		}
		if err := repos.Client.Create(ctx, c); err != nil {
			t.Fatalf("seed legacy client: %v", err)
		}
	}

	n, err := svc.BackfillCodes(ctx)
	if err != nil {
		t.Fatalf("BackfillCodes: %v", err)
	}
	if n != 3 {
		t.Fatalf("backfilled = %d, want 3", n)
	}

	clients, err := svc.List(ctx, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	seen := map[string]bool{}
	for _, c := range clients {
		if c.CodigoInterno == nil {
			t.Fatalf("client %d still without code", c.ID)
		}
		if seen[*c.CodigoInterno] {
			t.Fatalf("duplicate code %q", *c.CodigoInterno)
		}
		seen[*c.CodigoInterno] = true
	}
	// ids menores ganham códigos menores
	if !seen["C00000"] || !seen["C00001"] || !seen["C00002"] {
		t.Fatalf("unexpected code set: %v", seen)
	}
}

func TestClientDeleteBlockedByLinkedRows(t *testing.T) {
	svc, repos := newClientService(t)
	orders := NewOrderService(repos.Order, repos.Packaging, repos.Sequence, repos.AuditLog, nil, nil)
	ctx := context.Background()

	busy, err := svc.Create(ctx, &CreateClientRequest{
		RazaoSocial: "Com Pedido Ltda",
		CNPJ:        "11222333000181",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := orders.Create(ctx, nil, &CreateOrderRequest{ClienteID: busy.ID}); err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := svc.Delete(ctx, busy.ID); err != ErrInUse {
		t.Fatalf("delete with linked pedido = %v, want ErrInUse", err)
	}

	free, err := svc.Create(ctx, &CreateClientRequest{
		RazaoSocial: "Sem Vinculo Ltda",
		CNPJ:        "11222333000262",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, free.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, free.ID); err != repository.ErrNotFound {
		t.Fatalf("deleted client still found: %v", err)
	}
	if err := svc.Delete(ctx, free.ID); err != repository.ErrNotFound {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}

func TestClientCodesDistinctUnderConcurrentCreates(t *testing.T) {
	svc, _ := newClientService(t)
	ctx := context.Background()

	const n = 8
	codes := make([]*string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			client, err := svc.Create(ctx, &CreateClientRequest{
				RazaoSocial: fmt.Sprintf("Concorrente %d Ltda", i),
				CNPJ:        "11222333000181",
			})
			if err != nil {
				errs[i] = err
				return
			}
			codes[i] = client.CodigoInterno
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("concurrent Create %d: %v", i, errs[i])
		}
		if codes[i] == nil {
			t.Fatalf("concurrent Create %d came back without code", i)
		}
		if seen[*codes[i]] {
			t.Fatalf("duplicate code %q", *codes[i])
		}
		seen[*codes[i]] = true
	}
	// sequência sem buracos: C00000..C00007
	for i := 0; i < n; i++ {
		want := fmt.Sprintf("C%05d", i)
		if !seen[want] {
			t.Fatalf("missing %s in allocated codes", want)
		}
	}
}
