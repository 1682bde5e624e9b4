package entity

import "time"

// Setores de colaboradores
const (
	SectorProduction  = "producao"
	SectorPrinting    = "impressao"
	SectorQuality     = "qualidade"
	SectorPCP         = "pcp"
	SectorLogistics   = "logistica"
	SectorMaintenance = "manutencao"
	SectorOther       = "outro"
)

// Vínculos empregatícios
const (
	ContractCLT    = "CLT"
	ContractPJ     = "PJ"
	ContractIntern = "ESTAGIO"
)

// Níveis de acesso ao sistema
const (
	AccessNone     = "nenhum"
	AccessRead     = "leitura"
	AccessOperator = "operador"
	AccessPCP      = "pcp"
	AccessQuality  = "qualidade"
	AccessAdmin    = "admin"
)

// JobRole é o catálogo de funções (funcoes).
type JobRole struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Nome      string `json:"nome" gorm:"size:120;not null"`
	Area      string `json:"area" gorm:"size:60"`
	Nivel     string `json:"nivel" gorm:"size:40"`
	Descricao string `json:"descricao" gorm:"type:text"`
	Ativo     bool   `json:"ativo" gorm:"default:true"`
}

func (JobRole) TableName() string {
	return "funcoes"
}

// Employee é o colaborador (colaboradores). Vínculo PJ exige parceiro;
// CLT/ESTAGIO proíbem — a regra é validada no service antes de persistir.
type Employee struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Nome     string  `json:"nome" gorm:"size:160;not null;index"`
	CPF      *string `json:"cpf" gorm:"size:11;uniqueIndex"`
	Email    string  `json:"email" gorm:"size:120"`
	Telefone string  `json:"telefone" gorm:"size:20"`
	Cidade   string  `json:"cidade" gorm:"size:80"`
	Estado   string  `json:"estado" gorm:"size:2;index"`
	CEP      string  `json:"cep" gorm:"size:8"`

	Cargo    string `json:"cargo" gorm:"size:80;index"`
	Setor    string `json:"setor" gorm:"size:20;default:producao;index"`
	Vinculo  string `json:"vinculo" gorm:"size:10;not null;default:CLT;index"`
	FuncaoID *uint  `json:"funcao_id" gorm:"index"`

	ParceiroID *uint `json:"parceiro_id" gorm:"index"`
	Ativo      bool  `json:"ativo" gorm:"default:true;index"`

	FotoURL      string  `json:"foto_url" gorm:"size:300"`
	DataAdmissao *string `json:"data_admissao" gorm:"size:10"`
	PIS          string  `json:"pis" gorm:"size:14"`
	CTPSNumero   string  `json:"ctps_numero" gorm:"size:20"`
	CTPSSerie    string  `json:"ctps_serie" gorm:"size:10"`
	Observacoes  string  `json:"observacoes" gorm:"type:text"`

	// acesso ao sistema
	UsuarioID   *uint  `json:"usuario_id" gorm:"index"`
	AcessoNivel string `json:"acesso_nivel" gorm:"size:12;default:nenhum;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Parceiro *Partner `json:"parceiro,omitempty" gorm:"foreignKey:ParceiroID"`
	Funcao   *JobRole `json:"funcao,omitempty" gorm:"foreignKey:FuncaoID"`
}

func (Employee) TableName() string {
	return "colaboradores"
}
