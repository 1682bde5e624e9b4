package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/config"
	"github.com/kleberrossi/procman/internal/repository"
	"github.com/kleberrossi/procman/internal/service"
)

// Handlers agrupa os handlers HTTP.
type Handlers struct {
	Auth       *AuthHandler
	Client     *ClientHandler
	Partner    *PartnerHandler
	Employee   *EmployeeHandler
	Packaging  *PackagingHandler
	Order      *OrderHandler
	Printing   *PrintingHandler
	Production *ProductionHandler
	QC         *QCHandler
	Shipment   *ShipmentHandler
	Calc       *CalcHandler
}

func NewHandlers(svc *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svc.Auth),
		Client:     NewClientHandler(svc.Client),
		Partner:    NewPartnerHandler(svc.Partner),
		Employee:   NewEmployeeHandler(svc.Employee),
		Packaging:  NewPackagingHandler(svc.Packaging),
		Order:      NewOrderHandler(svc.Order),
		Printing:   NewPrintingHandler(svc.Printing),
		Production: NewProductionHandler(svc.Production),
		QC:         NewQCHandler(svc.QC),
		Shipment:   NewShipmentHandler(svc.Shipment),
		Calc:       NewCalcHandler(),
	}
}

// Response envelope padrão
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error responde com código de negócio; o status HTTP sai dos três
// primeiros dígitos do código.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithData é Error com payload no data, para respostas de erro que
// precisam apontar o registro conflitante.
func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// ServiceError mapeia os erros de domínio para códigos de negócio.
func ServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	var dup *service.DuplicateCNPJError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "registro não encontrado")
	case errors.Is(err, service.ErrInvalidTransition):
		Error(c, 40010, "transição de status não permitida")
	case errors.Is(err, service.ErrOrderLocked):
		Error(c, 40011, "pedido não permite alterações nesse status")
	case errors.Is(err, service.ErrOrderNotApproved):
		Error(c, 40012, "pedido precisa estar aprovado")
	case errors.Is(err, service.ErrDuplicateCode):
		Error(c, 40910, "código ou chave já em uso")
	case errors.Is(err, service.ErrInUse):
		Error(c, 40920, "não é possível deletar: há registros vinculados")
	case errors.As(err, &dup):
		ErrorWithData(c, 40002, "CNPJ já cadastrado", gin.H{"parceiro_id": dup.ExistingID})
	case errors.Is(err, service.ErrInvalidCredential):
		Unauthorized(c, "credenciais inválidas")
	case errors.Is(err, service.ErrInactiveUser):
		Forbidden(c, "usuário inativo")
	case errors.As(err, &ve):
		Error(c, 40001, ve.Error())
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID pega o id do usuário autenticado, nil para anônimo.
func GetUserID(c *gin.Context) *uint {
	if v, exists := c.Get("user_id"); exists {
		if uid, ok := v.(uint); ok {
			return &uid
		}
	}
	return nil
}

// ParamID converte o path param em id numérico.
func ParamID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		BadRequest(c, "id inválido")
		return 0, false
	}
	return uint(v), true
}
