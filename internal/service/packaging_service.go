package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
)

// PackagingService mantém o cadastro mestre de embalagens. A regra do
// vendido: vendido=true exige cliente, vendido=false força cliente nulo.
type PackagingService struct {
	repo *repository.PackagingRepository
}

func NewPackagingService(repo *repository.PackagingRepository) *PackagingService {
	return &PackagingService{repo: repo}
}

type CreatePackagingRequest struct {
	EmbalagemCode       string  `json:"embalagem_code" binding:"required"`
	Rev                 *string `json:"rev"`
	ClienteID           *uint   `json:"cliente_id"`
	Material            string  `json:"material" binding:"required"`
	EspessuraUm         *int    `json:"espessura_um"`
	LarguraMm           *int    `json:"largura_mm"`
	AlturaMm            *int    `json:"altura_mm"`
	SanfonaMm           int     `json:"sanfona_mm"`
	AbaMm               int     `json:"aba_mm"`
	FitaTipo            string  `json:"fita_tipo"`
	Tratamento          bool    `json:"tratamento"`
	TratamentoDinas     *int    `json:"tratamento_dinas"`
	Impresso            bool    `json:"impresso"`
	LayoutPng           *string `json:"layout_png"`
	Transparencia       *int    `json:"transparencia"`
	ResistenciaMecanica *string `json:"resistencia_mecanica"`
	Vendido             bool    `json:"vendido"`
	NCM                 *string `json:"ncm"`
	Observacoes         *string `json:"observacoes"`
}

func (s *PackagingService) Create(ctx context.Context, req *CreatePackagingRequest) (*entity.PackagingSpec, error) {
	code := strings.TrimSpace(req.EmbalagemCode)
	if code == "" {
		return nil, invalidField("embalagem_code", "obrigatório")
	}
	if strings.TrimSpace(req.Material) == "" {
		return nil, invalidField("material", "obrigatório")
	}
	ncm, err := normalizeNCM(req.NCM)
	if err != nil {
		return nil, err
	}
	clienteID, err := applySoldRule(req.Vendido, req.ClienteID)
	if err != nil {
		return nil, err
	}

	fita := strings.TrimSpace(req.FitaTipo)
	if fita == "" {
		fita = entity.TapeNone
	}

	spec := &entity.PackagingSpec{
		EmbalagemCode:       code,
		Rev:                 normalizeRev(req.Rev),
		ClienteID:           clienteID,
		Material:            strings.TrimSpace(req.Material),
		EspessuraUm:         req.EspessuraUm,
		LarguraMm:           req.LarguraMm,
		AlturaMm:            req.AlturaMm,
		SanfonaMm:           req.SanfonaMm,
		AbaMm:               req.AbaMm,
		FitaTipo:            fita,
		Tratamento:          req.Tratamento,
		TratamentoDinas:     req.TratamentoDinas,
		Impresso:            req.Impresso,
		LayoutPng:           req.LayoutPng,
		Transparencia:       req.Transparencia,
		ResistenciaMecanica: req.ResistenciaMecanica,
		Vendido:             req.Vendido,
		NCM:                 ncm,
		Observacoes:         req.Observacoes,
	}
	if err := s.repo.Create(ctx, spec); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return spec, nil
}

func (s *PackagingService) Get(ctx context.Context, id uint) (*entity.PackagingSpec, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PackagingService) List(ctx context.Context, filters map[string]interface{}) ([]entity.PackagingSpec, error) {
	return s.repo.List(ctx, filters)
}

func (s *PackagingService) Revisions(ctx context.Context, code string) ([]entity.PackagingSpec, error) {
	return s.repo.ListRevisions(ctx, code)
}

type UpdatePackagingRequest struct {
	ClienteID           *uint   `json:"cliente_id"`
	Material            *string `json:"material"`
	EspessuraUm         *int    `json:"espessura_um"`
	LarguraMm           *int    `json:"largura_mm"`
	AlturaMm            *int    `json:"altura_mm"`
	SanfonaMm           *int    `json:"sanfona_mm"`
	AbaMm               *int    `json:"aba_mm"`
	FitaTipo            *string `json:"fita_tipo"`
	Tratamento          *bool   `json:"tratamento"`
	TratamentoDinas     *int    `json:"tratamento_dinas"`
	Impresso            *bool   `json:"impresso"`
	LayoutPng           *string `json:"layout_png"`
	Transparencia       *int    `json:"transparencia"`
	ResistenciaMecanica *string `json:"resistencia_mecanica"`
	Vendido             *bool   `json:"vendido"`
	NCM                 *string `json:"ncm"`
	Observacoes         *string `json:"observacoes"`
}

// Update não toca em embalagem_code/rev: mudança de dimensão significativa
// pede uma revisão nova, não edição da chave.
func (s *PackagingService) Update(ctx context.Context, id uint, req *UpdatePackagingRequest) (*entity.PackagingSpec, error) {
	spec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Material != nil {
		if strings.TrimSpace(*req.Material) == "" {
			return nil, invalidField("material", "obrigatório")
		}
		spec.Material = strings.TrimSpace(*req.Material)
	}
	if req.NCM != nil {
		ncm, err := normalizeNCM(req.NCM)
		if err != nil {
			return nil, err
		}
		spec.NCM = ncm
	}
	if req.EspessuraUm != nil {
		spec.EspessuraUm = req.EspessuraUm
	}
	if req.LarguraMm != nil {
		spec.LarguraMm = req.LarguraMm
	}
	if req.AlturaMm != nil {
		spec.AlturaMm = req.AlturaMm
	}
	if req.SanfonaMm != nil {
		spec.SanfonaMm = *req.SanfonaMm
	}
	if req.AbaMm != nil {
		spec.AbaMm = *req.AbaMm
	}
	if req.FitaTipo != nil {
		spec.FitaTipo = *req.FitaTipo
	}
	if req.Tratamento != nil {
		spec.Tratamento = *req.Tratamento
	}
	if req.TratamentoDinas != nil {
		spec.TratamentoDinas = req.TratamentoDinas
	}
	if req.Impresso != nil {
		spec.Impresso = *req.Impresso
	}
	if req.LayoutPng != nil {
		spec.LayoutPng = req.LayoutPng
	}
	if req.Transparencia != nil {
		spec.Transparencia = req.Transparencia
	}
	if req.ResistenciaMecanica != nil {
		spec.ResistenciaMecanica = req.ResistenciaMecanica
	}
	if req.Observacoes != nil {
		spec.Observacoes = req.Observacoes
	}

	vendido := spec.Vendido
	if req.Vendido != nil {
		vendido = *req.Vendido
	}
	clienteID := spec.ClienteID
	if req.ClienteID != nil {
		clienteID = req.ClienteID
	}
	clienteID, err = applySoldRule(vendido, clienteID)
	if err != nil {
		return nil, err
	}
	spec.Vendido = vendido
	spec.ClienteID = clienteID

	if err := s.repo.Update(ctx, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *PackagingService) Delete(ctx context.Context, id uint) error {
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

// applySoldRule: embalagem vendida precisa de dono; genérica não tem.
func applySoldRule(vendido bool, clienteID *uint) (*uint, error) {
	if vendido {
		if clienteID == nil || *clienteID == 0 {
			return nil, invalidField("cliente_id", "obrigatório quando vendido")
		}
		return clienteID, nil
	}
	return nil, nil
}

func normalizeRev(rev *string) *string {
	if rev == nil {
		return nil
	}
	r := strings.TrimSpace(*rev)
	if r == "" {
		return nil
	}
	return &r
}

// normalizeNCM descarta máscara e valida os 8 dígitos. Nulo/vazio passa.
func normalizeNCM(ncm *string) (*string, error) {
	if ncm == nil {
		return nil, nil
	}
	digits := onlyDigits(*ncm)
	if digits == "" {
		return nil, nil
	}
	if !validNCM(digits) {
		return nil, invalidField("ncm", "deve ter 8 dígitos")
	}
	return &digits, nil
}

// isUniqueViolation reconhece a violação do índice único do Postgres.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// isForeignKeyViolation reconhece DELETE barrado por linha dependente.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
