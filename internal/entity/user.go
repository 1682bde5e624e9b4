package entity

import "time"

// Papéis de usuário
const (
	RoleAdmin    = "admin"
	RolePCP      = "pcp"
	RoleOperator = "operador"
	RoleQuality  = "qualidade"
	RoleReader   = "leitura"
)

// User é a conta de acesso (usuarios). SenhaHash guarda bcrypt.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Nome      string    `json:"nome" gorm:"size:160"`
	Email     string    `json:"email" gorm:"size:120;uniqueIndex"`
	SenhaHash string    `json:"-" gorm:"size:100"`
	Papel     string    `json:"papel" gorm:"size:12;default:leitura"`
	Ativo     bool      `json:"ativo" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "usuarios"
}
