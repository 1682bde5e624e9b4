package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
)

var partnerTypes = map[string]bool{
	entity.PartnerSupplier: true,
	entity.PartnerService:  true,
	entity.PartnerCarrier:  true,
}

// PartnerService mantém fornecedores, prestadores e transportadoras,
// com códigos P00000..P99999 na mesma mecânica dos clientes.
type PartnerService struct {
	repo    *repository.PartnerRepository
	seqRepo *repository.SequenceRepository
}

func NewPartnerService(repo *repository.PartnerRepository, seqRepo *repository.SequenceRepository) *PartnerService {
	return &PartnerService{repo: repo, seqRepo: seqRepo}
}

type CreatePartnerRequest struct {
	RazaoSocial     string   `json:"razao_social" binding:"required"`
	CNPJ            string   `json:"cnpj" binding:"required"`
	Tipo            string   `json:"tipo"`
	Endereco        string   `json:"endereco"`
	Bairro          string   `json:"bairro"`
	Complemento     string   `json:"complemento"`
	CEP             *string  `json:"cep"`
	Estado          *string  `json:"estado"`
	Cidade          string   `json:"cidade"`
	Pais            string   `json:"pais"`
	ContatoNome     string   `json:"contato_nome"`
	ContatoEmail    string   `json:"contato_email"`
	ContatoTelefone string   `json:"contato_telefone"`
	Representante   string   `json:"representante"`
	Email           string   `json:"email"`
	Telefone        string   `json:"telefone"`
	Observacoes     string   `json:"observacoes"`
	Servicos        []string `json:"servicos"`
}

func (s *PartnerService) Create(ctx context.Context, req *CreatePartnerRequest) (*entity.Partner, error) {
	if strings.TrimSpace(req.RazaoSocial) == "" {
		return nil, invalidField("razao_social", "obrigatório")
	}
	cnpj := onlyDigits(req.CNPJ)
	if !validCNPJ(cnpj) {
		return nil, invalidField("cnpj", "deve ter 14 dígitos")
	}
	tipo := strings.TrimSpace(req.Tipo)
	if tipo == "" {
		tipo = entity.PartnerSupplier
	}
	if !partnerTypes[tipo] {
		return nil, invalidField("tipo", "deve ser fornecedor, servico ou transportadora")
	}
	var cep *string
	if req.CEP != nil && *req.CEP != "" {
		d := onlyDigits(*req.CEP)
		if !validCEP(d) {
			return nil, invalidField("cep", "deve ter 8 dígitos")
		}
		cep = &d
	}
	var uf *string
	if req.Estado != nil && *req.Estado != "" {
		u := strings.ToUpper(strings.TrimSpace(*req.Estado))
		if !validUF(u) {
			return nil, invalidField("estado", "UF inválida")
		}
		uf = &u
	}
	if existing, err := s.repo.FindByCNPJ(ctx, cnpj); err == nil && existing != nil {
		return nil, &DuplicateCNPJError{ExistingID: existing.ID}
	}

	pais := strings.TrimSpace(req.Pais)
	if pais == "" {
		pais = "Brasil"
	}
	servicos := entity.JSONBArray{}
	for _, sv := range req.Servicos {
		servicos = append(servicos, sv)
	}

	partner := &entity.Partner{
		RazaoSocial:     strings.TrimSpace(req.RazaoSocial),
		CNPJ:            cnpj,
		Tipo:            tipo,
		Endereco:        req.Endereco,
		Bairro:          req.Bairro,
		Complemento:     req.Complemento,
		CEP:             cep,
		Estado:          uf,
		Cidade:          req.Cidade,
		Pais:            pais,
		ContatoNome:     req.ContatoNome,
		ContatoEmail:    req.ContatoEmail,
		ContatoTelefone: req.ContatoTelefone,
		Representante:   req.Representante,
		Email:           req.Email,
		Telefone:        req.Telefone,
		Observacoes:     req.Observacoes,
		Servicos:        servicos,
		Ativo:           true,
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			code, err := s.seqRepo.NextEntityCode(ctx, tx, "parceiros", "codigo_interno", 'P')
			if err != nil {
				return fmt.Errorf("next partner code: %w", err)
			}
			partner.CodigoInterno = &code
			return s.repo.CreateTx(ctx, tx, partner)
		})
		if err == nil {
			return partner, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		partner.ID = 0
		lastErr = err
	}
	return nil, fmt.Errorf("allocate partner code: %w", lastErr)
}

func (s *PartnerService) Get(ctx context.Context, id uint) (*entity.Partner, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PartnerService) List(ctx context.Context, filters map[string]interface{}) ([]entity.Partner, error) {
	return s.repo.List(ctx, filters)
}

type UpdatePartnerRequest struct {
	RazaoSocial     *string   `json:"razao_social"`
	Tipo            *string   `json:"tipo"`
	Endereco        *string   `json:"endereco"`
	Bairro          *string   `json:"bairro"`
	Complemento     *string   `json:"complemento"`
	CEP             *string   `json:"cep"`
	Estado          *string   `json:"estado"`
	Cidade          *string   `json:"cidade"`
	Pais            *string   `json:"pais"`
	ContatoNome     *string   `json:"contato_nome"`
	ContatoEmail    *string   `json:"contato_email"`
	ContatoTelefone *string   `json:"contato_telefone"`
	Representante   *string   `json:"representante"`
	Email           *string   `json:"email"`
	Telefone        *string   `json:"telefone"`
	Observacoes     *string   `json:"observacoes"`
	Servicos        *[]string `json:"servicos"`
	Ativo           *bool     `json:"ativo"`
}

// Update preserva CNPJ e codigo_interno, as chaves estáveis do parceiro.
func (s *PartnerService) Update(ctx context.Context, id uint, req *UpdatePartnerRequest) (*entity.Partner, error) {
	partner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.RazaoSocial != nil {
		if strings.TrimSpace(*req.RazaoSocial) == "" {
			return nil, invalidField("razao_social", "obrigatório")
		}
		partner.RazaoSocial = strings.TrimSpace(*req.RazaoSocial)
	}
	if req.Tipo != nil {
		if !partnerTypes[*req.Tipo] {
			return nil, invalidField("tipo", "deve ser fornecedor, servico ou transportadora")
		}
		partner.Tipo = *req.Tipo
	}
	if req.CEP != nil {
		if *req.CEP == "" {
			partner.CEP = nil
		} else {
			d := onlyDigits(*req.CEP)
			if !validCEP(d) {
				return nil, invalidField("cep", "deve ter 8 dígitos")
			}
			partner.CEP = &d
		}
	}
	if req.Estado != nil {
		if *req.Estado == "" {
			partner.Estado = nil
		} else {
			u := strings.ToUpper(strings.TrimSpace(*req.Estado))
			if !validUF(u) {
				return nil, invalidField("estado", "UF inválida")
			}
			partner.Estado = &u
		}
	}
	if req.Endereco != nil {
		partner.Endereco = *req.Endereco
	}
	if req.Bairro != nil {
		partner.Bairro = *req.Bairro
	}
	if req.Complemento != nil {
		partner.Complemento = *req.Complemento
	}
	if req.Cidade != nil {
		partner.Cidade = *req.Cidade
	}
	if req.Pais != nil {
		partner.Pais = *req.Pais
	}
	if req.ContatoNome != nil {
		partner.ContatoNome = *req.ContatoNome
	}
	if req.ContatoEmail != nil {
		partner.ContatoEmail = *req.ContatoEmail
	}
	if req.ContatoTelefone != nil {
		partner.ContatoTelefone = *req.ContatoTelefone
	}
	if req.Representante != nil {
		partner.Representante = *req.Representante
	}
	if req.Email != nil {
		partner.Email = *req.Email
	}
	if req.Telefone != nil {
		partner.Telefone = *req.Telefone
	}
	if req.Observacoes != nil {
		partner.Observacoes = *req.Observacoes
	}
	if req.Servicos != nil {
		servicos := entity.JSONBArray{}
		for _, sv := range *req.Servicos {
			servicos = append(servicos, sv)
		}
		partner.Servicos = servicos
	}
	if req.Ativo != nil {
		partner.Ativo = *req.Ativo
	}

	if err := s.repo.Update(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// Delete remove o parceiro. Parceiro com colaborador vinculado não sai.
func (s *PartnerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.LinkedCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrInUse
		}
		return err
	}
	return nil
}

// BackfillCodes numera parceiros legados sem código, em ordem de id.
func (s *PartnerService) BackfillCodes(ctx context.Context) (int, error) {
	return s.seqRepo.BackfillEntityCodes(ctx, "parceiros", "codigo_interno", 'P')
}
