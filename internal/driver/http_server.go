package driver

import (
	"errors"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
	"github.com/gofiber/fiber/v2"
)

// HTTPHandler expõe o cadastro de motoristas via REST.
type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

func (h *HTTPHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/motoristas", h.list)
	router.Post("/motoristas", h.create)
	router.Get("/motoristas/:id", h.get)
	router.Put("/motoristas/:id", h.update)
	router.Patch("/motoristas/:id/desativar", h.deactivate)
	router.Get("/motoristas/:id/viagens", h.history)
	router.Post("/motoristas/:id/viagens", h.startTrip)
	router.Patch("/viagens/:id/encerrar", h.finishTrip)
}

func (h *HTTPHandler) list(c *fiber.Ctx) error {
	f := ListFilter{
		Status: Status(c.Query("status")),
		Search: c.Query("search"),
	}
	if f.Status != "" && !ValidStatus(f.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status desconhecido"})
	}
	drivers, err := h.svc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	if drivers == nil {
		drivers = []Driver{}
	}
	return c.JSON(drivers)
}

func (h *HTTPHandler) create(c *fiber.Ctx) error {
	var in Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}
	d, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *HTTPHandler) get(c *fiber.Ctx) error {
	d, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

func (h *HTTPHandler) update(c *fiber.Ctx) error {
	var in Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}
	d, err := h.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

func (h *HTTPHandler) deactivate(c *fiber.Ctx) error {
	d, err := h.svc.Deactivate(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

func (h *HTTPHandler) history(c *fiber.Ctx) error {
	hist, err := h.svc.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(hist)
}

func (h *HTTPHandler) startTrip(c *fiber.Ctx) error {
	var in StartTripInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}
	t, err := h.svc.StartTrip(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *HTTPHandler) finishTrip(c *fiber.Ctx) error {
	canceled := c.Query("cancelar") == "true"
	t, err := h.svc.FinishTrip(c.UserContext(), c.Params("id"), canceled)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

func respondError(c *fiber.Ctx, err error) error {
	if ve, ok := apperr.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Há campos inválidos no formulário",
			"fields": ve.Fields,
		})
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Motorista não encontrado"})
	}
	if _, ok := apperr.AsConflict(err); ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Já existe um motorista com este CPF"})
	}
	if errors.Is(err, ErrDriverUnavailable) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao processar a requisição, tente novamente"})
}
