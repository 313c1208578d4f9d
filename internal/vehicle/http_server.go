package vehicle

import (
	"errors"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
	"github.com/gofiber/fiber/v2"
)

// HTTPHandler expõe o cadastro da frota via REST.
type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

func (h *HTTPHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/veiculos", h.list)
	router.Post("/veiculos", h.create)
	router.Get("/veiculos/resumo", h.summary)
	router.Get("/veiculos/:id", h.get)
	router.Put("/veiculos/:id", h.update)
	router.Patch("/veiculos/:id/manutencao", h.toggleMaintenance)
	router.Delete("/veiculos/:id", h.remove)
}

func (h *HTTPHandler) list(c *fiber.Ctx) error {
	f := ListFilter{
		Status: Status(c.Query("status")),
		Search: c.Query("search"),
	}
	if f.Status != "" && !ValidStatus(f.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status desconhecido"})
	}
	vehicles, err := h.svc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	if vehicles == nil {
		vehicles = []Vehicle{}
	}
	return c.JSON(vehicles)
}

func (h *HTTPHandler) create(c *fiber.Ctx) error {
	var in Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}
	v, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *HTTPHandler) get(c *fiber.Ctx) error {
	v, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

func (h *HTTPHandler) update(c *fiber.Ctx) error {
	var in Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}
	v, err := h.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

func (h *HTTPHandler) toggleMaintenance(c *fiber.Ctx) error {
	v, err := h.svc.ToggleMaintenance(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

func (h *HTTPHandler) remove(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *HTTPHandler) summary(c *fiber.Ctx) error {
	sum, err := h.svc.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sum)
}

func respondError(c *fiber.Ctx, err error) error {
	if ve, ok := apperr.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Há campos inválidos no formulário",
			"fields": ve.Fields,
		})
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Veículo não encontrado"})
	}
	if _, ok := apperr.AsConflict(err); ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Já existe um veículo com esta placa"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao processar a requisição, tente novamente"})
}
