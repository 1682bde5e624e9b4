package entity

import "time"

// PartnerType valores aceitos em parceiros.tipo
const (
	PartnerSupplier  = "fornecedor"
	PartnerService   = "servico"
	PartnerCarrier   = "transportadora"
)

// Partner é o cadastro de parceiros (parceiros): fornecedores, prestadores
// de serviço e transportadoras. CodigoInterno segue P00000..P99999.
type Partner struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	RazaoSocial string `json:"razao_social" gorm:"size:200;not null;index"`
	CNPJ        string `json:"cnpj" gorm:"size:14;not null;uniqueIndex"`
	Tipo        string `json:"tipo" gorm:"size:20;default:fornecedor;index"`
	Endereco    string `json:"endereco" gorm:"size:200"`
	Bairro      string `json:"bairro" gorm:"size:80"`
	Complemento string `json:"complemento" gorm:"size:80"`
	CEP         *string `json:"cep" gorm:"size:8"`
	Estado      *string `json:"estado" gorm:"size:2"`
	Cidade      string  `json:"cidade" gorm:"size:80"`
	Pais        string  `json:"pais" gorm:"size:60;default:Brasil"`
	CodigoInterno *string `json:"codigo_interno" gorm:"size:6;uniqueIndex"`

	ContatoNome     string `json:"contato_nome" gorm:"size:120"`
	ContatoEmail    string `json:"contato_email" gorm:"size:120"`
	ContatoTelefone string `json:"contato_telefone" gorm:"size:20"`
	Representante   string `json:"representante" gorm:"size:120"`
	Email           string `json:"email" gorm:"size:120"`
	Telefone        string `json:"telefone" gorm:"size:20"`

	Observacoes string     `json:"observacoes" gorm:"type:text"`
	Servicos    JSONBArray `json:"servicos_json" gorm:"column:servicos_json;type:jsonb"`
	Ativo       bool       `json:"ativo" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Partner) TableName() string {
	return "parceiros"
}
