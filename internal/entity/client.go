package entity

import "time"

// Client é o cadastro de clientes (clientes). CodigoInterno segue o padrão
// C00000..C99999, gerado na mesma transação do INSERT.
type Client struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	RazaoSocial  string `json:"razao_social" gorm:"size:200;not null;index"`
	CNPJ         string `json:"cnpj" gorm:"size:14;not null;index"`
	Endereco     string `json:"endereco" gorm:"size:200"`
	Bairro       string `json:"bairro" gorm:"size:80"`
	Complemento  string `json:"complemento" gorm:"size:80"`
	CEP          string `json:"cep" gorm:"size:8"`
	Estado       string `json:"estado" gorm:"size:2"`
	Cidade       string `json:"cidade" gorm:"size:80"`
	Pais         string `json:"pais" gorm:"size:60;default:Brasil"`
	CodigoInterno *string `json:"codigo_interno" gorm:"size:6;uniqueIndex"`

	ContatoNome     string `json:"contato_nome" gorm:"size:120"`
	ContatoEmail    string `json:"contato_email" gorm:"size:120"`
	ContatoTelefone string `json:"contato_telefone" gorm:"size:20"`

	Representante   string   `json:"representante" gorm:"size:120"`
	ComissaoPercent float64  `json:"comissao_percent" gorm:"type:decimal(6,2);default:0"`
	NCMPadrao       *string  `json:"ncm_padrao" gorm:"size:8"`
	Observacoes     string   `json:"observacoes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clientes"
}
