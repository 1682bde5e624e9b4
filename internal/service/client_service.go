package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
)

// ClientService cuida do cadastro de clientes e da emissão dos códigos
// C00000..C99999, derivados na mesma transação do INSERT.
type ClientService struct {
	repo    *repository.ClientRepository
	seqRepo *repository.SequenceRepository
}

func NewClientService(repo *repository.ClientRepository, seqRepo *repository.SequenceRepository) *ClientService {
	return &ClientService{repo: repo, seqRepo: seqRepo}
}

type CreateClientRequest struct {
	RazaoSocial     string  `json:"razao_social" binding:"required"`
	CNPJ            string  `json:"cnpj" binding:"required"`
	Endereco        string  `json:"endereco"`
	Bairro          string  `json:"bairro"`
	Complemento     string  `json:"complemento"`
	CEP             string  `json:"cep"`
	Estado          string  `json:"estado"`
	Cidade          string  `json:"cidade"`
	Pais            string  `json:"pais"`
	ContatoNome     string  `json:"contato_nome"`
	ContatoEmail    string  `json:"contato_email"`
	ContatoTelefone string  `json:"contato_telefone"`
	Representante   string  `json:"representante"`
	ComissaoPercent float64 `json:"comissao_percent"`
	NCMPadrao       *string `json:"ncm_padrao"`
	Observacoes     string  `json:"observacoes"`
}

func (s *ClientService) Create(ctx context.Context, req *CreateClientRequest) (*entity.Client, error) {
	if strings.TrimSpace(req.RazaoSocial) == "" {
		return nil, invalidField("razao_social", "obrigatório")
	}
	cnpj := onlyDigits(req.CNPJ)
	if !validCNPJ(cnpj) {
		return nil, invalidField("cnpj", "deve ter 14 dígitos")
	}
	cep := onlyDigits(req.CEP)
	if req.CEP != "" && !validCEP(cep) {
		return nil, invalidField("cep", "deve ter 8 dígitos")
	}
	uf := strings.ToUpper(strings.TrimSpace(req.Estado))
	if uf != "" && !validUF(uf) {
		return nil, invalidField("estado", "UF inválida")
	}
	if req.NCMPadrao != nil {
		ncm, err := normalizeNCM(req.NCMPadrao)
		if err != nil {
			return nil, err
		}
		req.NCMPadrao = ncm
	}

	pais := strings.TrimSpace(req.Pais)
	if pais == "" {
		pais = "Brasil"
	}

	client := &entity.Client{
		RazaoSocial:     strings.TrimSpace(req.RazaoSocial),
		CNPJ:            cnpj,
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
		ComissaoPercent: req.ComissaoPercent,
		NCMPadrao:       req.NCMPadrao,
		Observacoes:     req.Observacoes,
	}

	// Uma repetição cobre a corrida entre o SELECT MAX e o INSERT:
	// se outro processo levou o código, deriva de novo e tenta uma vez.
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			code, err := s.seqRepo.NextEntityCode(ctx, tx, "clientes", "codigo_interno", 'C')
			if err != nil {
				return fmt.Errorf("next client code: %w", err)
			}
			client.CodigoInterno = &code
			return s.repo.CreateTx(ctx, tx, client)
		})
		if err == nil {
			return client, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		client.ID = 0
		lastErr = err
	}
	return nil, fmt.Errorf("allocate client code: %w", lastErr)
}

func (s *ClientService) Get(ctx context.Context, id uint) (*entity.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context, filters map[string]interface{}) ([]entity.Client, error) {
	return s.repo.List(ctx, filters)
}

type UpdateClientRequest struct {
	RazaoSocial     *string  `json:"razao_social"`
	CNPJ            *string  `json:"cnpj"`
	Endereco        *string  `json:"endereco"`
	Bairro          *string  `json:"bairro"`
	Complemento     *string  `json:"complemento"`
	CEP             *string  `json:"cep"`
	Estado          *string  `json:"estado"`
	Cidade          *string  `json:"cidade"`
	Pais            *string  `json:"pais"`
	ContatoNome     *string  `json:"contato_nome"`
	ContatoEmail    *string  `json:"contato_email"`
	ContatoTelefone *string  `json:"contato_telefone"`
	Representante   *string  `json:"representante"`
	ComissaoPercent *float64 `json:"comissao_percent"`
	NCMPadrao       *string  `json:"ncm_padrao"`
	Observacoes     *string  `json:"observacoes"`
}

// Update nunca toca em codigo_interno: código emitido é permanente.
func (s *ClientService) Update(ctx context.Context, id uint, req *UpdateClientRequest) (*entity.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.RazaoSocial != nil {
		if strings.TrimSpace(*req.RazaoSocial) == "" {
			return nil, invalidField("razao_social", "obrigatório")
		}
		client.RazaoSocial = strings.TrimSpace(*req.RazaoSocial)
	}
	if req.CNPJ != nil {
		cnpj := onlyDigits(*req.CNPJ)
		if !validCNPJ(cnpj) {
			return nil, invalidField("cnpj", "deve ter 14 dígitos")
		}
		client.CNPJ = cnpj
	}
	if req.CEP != nil {
		cep := onlyDigits(*req.CEP)
		if *req.CEP != "" && !validCEP(cep) {
			return nil, invalidField("cep", "deve ter 8 dígitos")
		}
		client.CEP = cep
	}
	if req.Estado != nil {
		uf := strings.ToUpper(strings.TrimSpace(*req.Estado))
		if uf != "" && !validUF(uf) {
			return nil, invalidField("estado", "UF inválida")
		}
		client.Estado = uf
	}
	if req.NCMPadrao != nil {
		ncm, err := normalizeNCM(req.NCMPadrao)
		if err != nil {
			return nil, err
		}
		client.NCMPadrao = ncm
	}
	if req.Endereco != nil {
		client.Endereco = *req.Endereco
	}
	if req.Bairro != nil {
		client.Bairro = *req.Bairro
	}
	if req.Complemento != nil {
		client.Complemento = *req.Complemento
	}
	if req.Cidade != nil {
		client.Cidade = *req.Cidade
	}
	if req.Pais != nil {
		client.Pais = *req.Pais
	}
	if req.ContatoNome != nil {
		client.ContatoNome = *req.ContatoNome
	}
	if req.ContatoEmail != nil {
		client.ContatoEmail = *req.ContatoEmail
	}
	if req.ContatoTelefone != nil {
		client.ContatoTelefone = *req.ContatoTelefone
	}
	if req.Representante != nil {
		client.Representante = *req.Representante
	}
	if req.ComissaoPercent != nil {
		client.ComissaoPercent = *req.ComissaoPercent
	}
	if req.Observacoes != nil {
		client.Observacoes = *req.Observacoes
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete remove o cliente. Cliente com pedido ou embalagem vinculada
// não sai.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
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

// BackfillCodes numera clientes legados sem código, em ordem de id.
func (s *ClientService) BackfillCodes(ctx context.Context) (int, error) {
	return s.seqRepo.BackfillEntityCodes(ctx, "clientes", "codigo_interno", 'C')
}
