package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
	"github.com/kleberrossi/procman/internal/testutil"
)

func newEmployeeService(t *testing.T) (*EmployeeService, *PartnerService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewEmployeeService(repos.Employee, repos.Partner),
		NewPartnerService(repos.Partner, repos.Sequence)
}

func TestEmployeeContractPartnerRule(t *testing.T) {
	empSvc, partnerSvc := newEmployeeService(t)
	ctx := context.Background()

	// PJ sem parceiro não entra
	if _, err := empSvc.Create(ctx, &CreateEmployeeRequest{
		Nome:    "Terceirizado",
		Vinculo: entity.ContractPJ,
	}); err == nil {
		t.Fatalf("PJ without parceiro must fail")
	}

	partner, err := partnerSvc.Create(ctx, &CreatePartnerRequest{
		RazaoSocial: "Prestadora Ltda",
		CNPJ:        "22333444000155",
	})
	if err != nil {
		t.Fatalf("create partner: %v", err)
	}

	pj, err := empSvc.Create(ctx, &CreateEmployeeRequest{
		Nome:       "Terceirizado",
		Vinculo:    entity.ContractPJ,
		ParceiroID: &partner.ID,
	})
	if err != nil {
		t.Fatalf("PJ with parceiro: %v", err)
	}
	if pj.ParceiroID == nil || *pj.ParceiroID != partner.ID {
		t.Fatalf("parceiro must stick, got %v", pj.ParceiroID)
	}

	// CLT com parceiro não entra
	if _, err := empSvc.Create(ctx, &CreateEmployeeRequest{
		Nome:       "Registrado",
		Vinculo:    entity.ContractCLT,
		ParceiroID: &partner.ID,
	}); err == nil {
		t.Fatalf("CLT with parceiro must fail")
	}

	clt, err := empSvc.Create(ctx, &CreateEmployeeRequest{
		Nome:    "Registrado",
		Vinculo: entity.ContractCLT,
	})
	if err != nil {
		t.Fatalf("CLT: %v", err)
	}
	if clt.ParceiroID != nil {
		t.Fatalf("CLT must not carry parceiro")
	}
}

func TestPartnerCodesUsePrefix(t *testing.T) {
	_, partnerSvc := newEmployeeService(t)
	ctx := context.Background()

	first, err := partnerSvc.Create(ctx, &CreatePartnerRequest{
		RazaoSocial: "Parceiro Um",
		CNPJ:        "22333444000155",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := partnerSvc.Create(ctx, &CreatePartnerRequest{
		RazaoSocial: "Parceiro Dois",
		CNPJ:        "22333444000236",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.CodigoInterno == nil || *first.CodigoInterno != "P00000" {
		t.Fatalf("first code = %v, want P00000", first.CodigoInterno)
	}
	if second.CodigoInterno == nil || *second.CodigoInterno != "P00001" {
		t.Fatalf("second code = %v, want P00001", second.CodigoInterno)
	}
}

func TestJobRoles(t *testing.T) {
	empSvc, _ := newEmployeeService(t)
	ctx := context.Background()

	if _, err := empSvc.CreateRole(ctx, &JobRoleRequest{Nome: "Extrusor"}); err != nil {
		t.Fatalf("CreateRole: %v", err)
	}
	if _, err := empSvc.CreateRole(ctx, &JobRoleRequest{}); err == nil {
		t.Fatalf("role without nome must fail")
	}
	roles, err := empSvc.ListRoles(ctx, true)
	if err != nil {
		t.Fatalf("ListRoles: %v", err)
	}
	if len(roles) != 1 || roles[0].Nome != "Extrusor" {
		t.Fatalf("roles = %+v", roles)
	}
}

func TestPartnerDuplicateCNPJPointsToExisting(t *testing.T) {
	_, partnerSvc := newEmployeeService(t)
	ctx := context.Background()

	first, err := partnerSvc.Create(ctx, &CreatePartnerRequest{
		RazaoSocial: "Original Ltda",
		CNPJ:        "22333444000155",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = partnerSvc.Create(ctx, &CreatePartnerRequest{
		RazaoSocial: "Repetida Ltda",
		CNPJ:        "22.333.444/0001-55",
	})
	var dup *DuplicateCNPJError
	if !errors.As(err, &dup) {
		t.Fatalf("duplicate cnpj = %v, want DuplicateCNPJError", err)
	}
	if dup.ExistingID != first.ID {
		t.Fatalf("existing id = %d, want %d", dup.ExistingID, first.ID)
	}
}

func TestPartnerDeleteBlockedByEmployees(t *testing.T) {
	empSvc, partnerSvc := newEmployeeService(t)
	ctx := context.Background()

	partner, err := partnerSvc.Create(ctx, &CreatePartnerRequest{
		RazaoSocial: "Prestadora Ltda",
		CNPJ:        "22333444000155",
	})
	if err != nil {
		t.Fatalf("create partner: %v", err)
	}
	pj, err := empSvc.Create(ctx, &CreateEmployeeRequest{
		Nome:       "Terceirizado",
		Vinculo:    entity.ContractPJ,
		ParceiroID: &partner.ID,
	})
	if err != nil {
		t.Fatalf("create colaborador: %v", err)
	}

	if err := partnerSvc.Delete(ctx, partner.ID); err != ErrInUse {
		t.Fatalf("delete with colaborador = %v, want ErrInUse", err)
	}

	if err := empSvc.Delete(ctx, pj.ID); err != nil {
		t.Fatalf("delete colaborador: %v", err)
	}
	if err := partnerSvc.Delete(ctx, partner.ID); err != nil {
		t.Fatalf("delete partner: %v", err)
	}
	if err := empSvc.Delete(ctx, pj.ID); err != repository.ErrNotFound {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}
