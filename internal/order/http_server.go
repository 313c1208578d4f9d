package order

import (
	"errors"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
	"github.com/gofiber/fiber/v2"
)

// HTTPHandler expõe as operações de ordem de serviço via REST.
type HTTPHandler struct {
	svc   *Service
	stats *StatsAggregator
}

func NewHTTPHandler(svc *Service, stats *StatsAggregator) *HTTPHandler {
	return &HTTPHandler{svc: svc, stats: stats}
}

// RegisterRoutes monta as rotas sob o router dado (normalmente /api).
func (h *HTTPHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ordens", h.list)
	router.Post("/ordens", h.create)
	router.Get("/ordens/stats", h.getStats)
	router.Get("/ordens/:id", h.get)
	router.Put("/ordens/:id", h.update)
	router.Delete("/ordens/:id", h.cancel)
	router.Delete("/ordens/:id/permanente", h.hardDelete)
}

func (h *HTTPHandler) list(c *fiber.Ctx) error {
	f := ListFilter{
		Status: Status(c.Query("status")),
		Search: c.Query("search"),
	}
	if f.Status != "" && !ValidStatus(f.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status desconhecido"})
	}

	orders, err := h.svc.ListOrders(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	if orders == nil {
		orders = []Order{}
	}
	return c.JSON(orders)
}

func (h *HTTPHandler) get(c *fiber.Ctx) error {
	o, err := h.svc.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

func (h *HTTPHandler) create(c *fiber.Ctx) error {
	var in CreateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	o, err := h.svc.CreateOrder(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *HTTPHandler) update(c *fiber.Ctx) error {
	var in UpdateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	o, err := h.svc.UpdateOrder(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

// cancel é o soft delete: a ordem permanece listada com status cancelado.
func (h *HTTPHandler) cancel(c *fiber.Ctx) error {
	o, err := h.svc.CancelOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

func (h *HTTPHandler) hardDelete(c *fiber.Ctx) error {
	if err := h.svc.HardDeleteOrder(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *HTTPHandler) getStats(c *fiber.Ctx) error {
	stats, err := h.stats.Snapshot(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// respondError converte a taxonomia de erros do domínio em respostas HTTP.
// Falhas sem causa específica viram uma mensagem genérica; o detalhe fica no
// log, não na resposta.
func respondError(c *fiber.Ctx, err error) error {
	if ve, ok := apperr.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Há campos inválidos no formulário",
			"fields": ve.Fields,
		})
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Ordem de serviço não encontrada"})
	}
	if ce, ok := apperr.AsConflict(err); ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ce.Error()})
	}
	if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrOrderFrozen) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, ErrSequenceExhausted) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao processar a requisição, tente novamente"})
}
