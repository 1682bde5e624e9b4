package service

import (
	"context"
	"strings"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
)

var employeeSectors = map[string]bool{
	entity.SectorProduction:  true,
	entity.SectorPrinting:    true,
	entity.SectorQuality:     true,
	entity.SectorPCP:         true,
	entity.SectorLogistics:   true,
	entity.SectorMaintenance: true,
	entity.SectorOther:       true,
}

var contractKinds = map[string]bool{
	entity.ContractCLT:    true,
	entity.ContractPJ:     true,
	entity.ContractIntern: true,
}

var accessLevels = map[string]bool{
	entity.AccessNone:     true,
	entity.AccessRead:     true,
	entity.AccessOperator: true,
	entity.AccessPCP:      true,
	entity.AccessQuality:  true,
	entity.AccessAdmin:    true,
}

// EmployeeService mantém colaboradores e o catálogo de funções.
// Vínculo PJ exige parceiro; CLT e ESTAGIO não aceitam parceiro.
type EmployeeService struct {
	repo        *repository.EmployeeRepository
	partnerRepo *repository.PartnerRepository
}

func NewEmployeeService(repo *repository.EmployeeRepository, partnerRepo *repository.PartnerRepository) *EmployeeService {
	return &EmployeeService{repo: repo, partnerRepo: partnerRepo}
}

type CreateEmployeeRequest struct {
	Nome         string  `json:"nome" binding:"required"`
	CPF          *string `json:"cpf"`
	Email        string  `json:"email"`
	Telefone     string  `json:"telefone"`
	Cidade       string  `json:"cidade"`
	Estado       string  `json:"estado"`
	CEP          string  `json:"cep"`
	Cargo        string  `json:"cargo"`
	Setor        string  `json:"setor"`
	Vinculo      string  `json:"vinculo"`
	FuncaoID     *uint   `json:"funcao_id"`
	ParceiroID   *uint   `json:"parceiro_id"`
	FotoURL      string  `json:"foto_url"`
	DataAdmissao *string `json:"data_admissao"`
	PIS          string  `json:"pis"`
	CTPSNumero   string  `json:"ctps_numero"`
	CTPSSerie    string  `json:"ctps_serie"`
	Observacoes  string  `json:"observacoes"`
	AcessoNivel  string  `json:"acesso_nivel"`
}

func (s *EmployeeService) Create(ctx context.Context, req *CreateEmployeeRequest) (*entity.Employee, error) {
	if strings.TrimSpace(req.Nome) == "" {
		return nil, invalidField("nome", "obrigatório")
	}
	var cpf *string
	if req.CPF != nil && *req.CPF != "" {
		d := onlyDigits(*req.CPF)
		if !validCPF(d) {
			return nil, invalidField("cpf", "deve ter 11 dígitos")
		}
		cpf = &d
	}
	uf := strings.ToUpper(strings.TrimSpace(req.Estado))
	if uf != "" && !validUF(uf) {
		return nil, invalidField("estado", "UF inválida")
	}
	cep := onlyDigits(req.CEP)
	if req.CEP != "" && !validCEP(cep) {
		return nil, invalidField("cep", "deve ter 8 dígitos")
	}

	setor := req.Setor
	if setor == "" {
		setor = entity.SectorProduction
	}
	if !employeeSectors[setor] {
		return nil, invalidField("setor", "setor desconhecido")
	}
	vinculo := req.Vinculo
	if vinculo == "" {
		vinculo = entity.ContractCLT
	}
	if !contractKinds[vinculo] {
		return nil, invalidField("vinculo", "deve ser CLT, PJ ou ESTAGIO")
	}
	acesso := req.AcessoNivel
	if acesso == "" {
		acesso = entity.AccessNone
	}
	if !accessLevels[acesso] {
		return nil, invalidField("acesso_nivel", "nível desconhecido")
	}

	parceiroID, err := s.checkContractPartner(ctx, vinculo, req.ParceiroID)
	if err != nil {
		return nil, err
	}
	if req.FuncaoID != nil {
		if _, err := s.repo.FindRoleByID(ctx, *req.FuncaoID); err != nil {
			return nil, invalidField("funcao_id", "função não encontrada")
		}
	}

	e := &entity.Employee{
		Nome:         strings.TrimSpace(req.Nome),
		CPF:          cpf,
		Email:        req.Email,
		Telefone:     req.Telefone,
		Cidade:       req.Cidade,
		Estado:       uf,
		CEP:          cep,
		Cargo:        req.Cargo,
		Setor:        setor,
		Vinculo:      vinculo,
		FuncaoID:     req.FuncaoID,
		ParceiroID:   parceiroID,
		Ativo:        true,
		FotoURL:      req.FotoURL,
		DataAdmissao: req.DataAdmissao,
		PIS:          req.PIS,
		CTPSNumero:   req.CTPSNumero,
		CTPSSerie:    req.CTPSSerie,
		Observacoes:  req.Observacoes,
		AcessoNivel:  acesso,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return e, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uint) (*entity.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context, filters map[string]interface{}) ([]entity.Employee, error) {
	return s.repo.List(ctx, filters)
}

type UpdateEmployeeRequest struct {
	Nome         *string `json:"nome"`
	Email        *string `json:"email"`
	Telefone     *string `json:"telefone"`
	Cidade       *string `json:"cidade"`
	Estado       *string `json:"estado"`
	CEP          *string `json:"cep"`
	Cargo        *string `json:"cargo"`
	Setor        *string `json:"setor"`
	Vinculo      *string `json:"vinculo"`
	FuncaoID     *uint   `json:"funcao_id"`
	ParceiroID   *uint   `json:"parceiro_id"`
	Ativo        *bool   `json:"ativo"`
	FotoURL      *string `json:"foto_url"`
	DataAdmissao *string `json:"data_admissao"`
	PIS          *string `json:"pis"`
	CTPSNumero   *string `json:"ctps_numero"`
	CTPSSerie    *string `json:"ctps_serie"`
	Observacoes  *string `json:"observacoes"`
	AcessoNivel  *string `json:"acesso_nivel"`
}

func (s *EmployeeService) Update(ctx context.Context, id uint, req *UpdateEmployeeRequest) (*entity.Employee, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nome != nil {
		if strings.TrimSpace(*req.Nome) == "" {
			return nil, invalidField("nome", "obrigatório")
		}
		e.Nome = strings.TrimSpace(*req.Nome)
	}
	if req.Estado != nil {
		uf := strings.ToUpper(strings.TrimSpace(*req.Estado))
		if uf != "" && !validUF(uf) {
			return nil, invalidField("estado", "UF inválida")
		}
		e.Estado = uf
	}
	if req.CEP != nil {
		cep := onlyDigits(*req.CEP)
		if *req.CEP != "" && !validCEP(cep) {
			return nil, invalidField("cep", "deve ter 8 dígitos")
		}
		e.CEP = cep
	}
	if req.Setor != nil {
		if !employeeSectors[*req.Setor] {
			return nil, invalidField("setor", "setor desconhecido")
		}
		e.Setor = *req.Setor
	}
	if req.AcessoNivel != nil {
		if !accessLevels[*req.AcessoNivel] {
			return nil, invalidField("acesso_nivel", "nível desconhecido")
		}
		e.AcessoNivel = *req.AcessoNivel
	}
	if req.FuncaoID != nil {
		if _, err := s.repo.FindRoleByID(ctx, *req.FuncaoID); err != nil {
			return nil, invalidField("funcao_id", "função não encontrada")
		}
		e.FuncaoID = req.FuncaoID
	}

	vinculo := e.Vinculo
	if req.Vinculo != nil {
		if !contractKinds[*req.Vinculo] {
			return nil, invalidField("vinculo", "deve ser CLT, PJ ou ESTAGIO")
		}
		vinculo = *req.Vinculo
	}
	parceiroID := e.ParceiroID
	if req.ParceiroID != nil {
		parceiroID = req.ParceiroID
	}
	parceiroID, err = s.checkContractPartner(ctx, vinculo, parceiroID)
	if err != nil {
		return nil, err
	}
	e.Vinculo = vinculo
	e.ParceiroID = parceiroID

	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Telefone != nil {
		e.Telefone = *req.Telefone
	}
	if req.Cidade != nil {
		e.Cidade = *req.Cidade
	}
	if req.Cargo != nil {
		e.Cargo = *req.Cargo
	}
	if req.Ativo != nil {
		e.Ativo = *req.Ativo
	}
	if req.FotoURL != nil {
		e.FotoURL = *req.FotoURL
	}
	if req.DataAdmissao != nil {
		e.DataAdmissao = req.DataAdmissao
	}
	if req.PIS != nil {
		e.PIS = *req.PIS
	}
	if req.CTPSNumero != nil {
		e.CTPSNumero = *req.CTPSNumero
	}
	if req.CTPSSerie != nil {
		e.CTPSSerie = *req.CTPSSerie
	}
	if req.Observacoes != nil {
		e.Observacoes = *req.Observacoes
	}

	// Parceiro/Funcao pré-carregados podem estar defasados após o update
	e.Parceiro = nil
	e.Funcao = nil
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// checkContractPartner aplica a regra vínculo x parceiro.
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrInUse
		}
		return err
	}
	return nil
}

func (s *EmployeeService) checkContractPartner(ctx context.Context, vinculo string, parceiroID *uint) (*uint, error) {
	if vinculo == entity.ContractPJ {
		if parceiroID == nil || *parceiroID == 0 {
			return nil, invalidField("parceiro_id", "obrigatório para vínculo PJ")
		}
		if _, err := s.partnerRepo.FindByID(ctx, *parceiroID); err != nil {
			return nil, invalidField("parceiro_id", "parceiro não encontrado")
		}
		return parceiroID, nil
	}
	if parceiroID != nil && *parceiroID != 0 {
		return nil, invalidField("parceiro_id", "só permitido para vínculo PJ")
	}
	return nil, nil
}

// ========== Funções ==========

type JobRoleRequest struct {
	Nome      string `json:"nome" binding:"required"`
	Area      string `json:"area"`
	Nivel     string `json:"nivel"`
	Descricao string `json:"descricao"`
}

func (s *EmployeeService) CreateRole(ctx context.Context, req *JobRoleRequest) (*entity.JobRole, error) {
	if strings.TrimSpace(req.Nome) == "" {
		return nil, invalidField("nome", "obrigatório")
	}
	role := &entity.JobRole{
		Nome:      strings.TrimSpace(req.Nome),
		Area:      req.Area,
		Nivel:     req.Nivel,
		Descricao: req.Descricao,
		Ativo:     true,
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *EmployeeService) ListRoles(ctx context.Context, onlyActive bool) ([]entity.JobRole, error) {
	return s.repo.ListRoles(ctx, onlyActive)
}
