package user

import (
	"errors"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/auth"
	"github.com/gofiber/fiber/v2"
)

// HTTPHandler autenticação e perfil do usuário logado.
type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// RegisterPublicRoutes rotas acessíveis sem token.
func (h *HTTPHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Post("/login", h.login)
}

// RegisterRoutes rotas atrás do middleware de autenticação.
func (h *HTTPHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/me", h.me)
	router.Post("/usuarios", h.register)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *HTTPHandler) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}
	res, err := h.svc.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao processar a requisição, tente novamente"})
	}
	return c.JSON(res)
}

func (h *HTTPHandler) me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	u, err := h.svc.Get(c.UserContext(), claims.Subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao processar a requisição, tente novamente"})
	}
	return c.JSON(u)
}

func (h *HTTPHandler) register(c *fiber.Ctx) error {
	var in RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}
	u, err := h.svc.Register(c.UserContext(), in)
	if err != nil {
		if ve, ok := apperr.AsValidation(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Há campos inválidos no formulário",
				"fields": ve.Fields,
			})
		}
		if _, ok := apperr.AsConflict(err); ok {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Já existe um usuário com este nome"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao processar a requisição, tente novamente"})
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}
