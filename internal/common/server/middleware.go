package server

import (
	"runtime/debug"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// Recovery impede que um panic derrube o processo e registra a stack.
func Recovery(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if log != nil {
					log.Errorf("panic in http handler path=%s err=%v stack=%s", c.Path(), r, string(debug.Stack()))
				}
				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Erro interno do servidor",
				})
			}
		}()
		return c.Next()
	}
}

// AccessLog registra método, rota, status e duração de cada requisição.
func AccessLog(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		cost := time.Since(start)

		if log != nil {
			fields := map[string]interface{}{
				"method": c.Method(),
				"path":   c.Path(),
				"status": c.Response().StatusCode(),
				"cost":   cost.String(),
			}
			if err != nil {
				fields["error"] = err.Error()
				log.WithFields(fields).Warn("http request failed")
			} else {
				log.WithFields(fields).Info("http request ok")
			}
		}
		return err
	}
}

// Tracing cria um span de servidor por requisição, extraindo o contexto do
// upstream dos headers quando presente, e o injeta no UserContext para uso
// com opentracing.StartSpanFromContext.
func Tracing(serviceName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tracer := opentracing.GlobalTracer()

		carrier := opentracing.HTTPHeadersCarrier{}
		c.Request().Header.VisitAll(func(key, value []byte) {
			carrier.Set(string(key), string(value))
		})

		var span opentracing.Span
		if parent, err := tracer.Extract(opentracing.HTTPHeaders, carrier); err == nil {
			span = tracer.StartSpan(c.Method()+" "+c.Path(), ext.RPCServerOption(parent))
		} else {
			span = tracer.StartSpan(c.Method() + " " + c.Path())
		}
		defer span.Finish()

		ext.SpanKindRPCServer.Set(span)
		ext.HTTPMethod.Set(span, c.Method())
		ext.HTTPUrl.Set(span, c.OriginalURL())
		if serviceName != "" {
			span.SetTag("service", serviceName)
		}

		c.SetUserContext(opentracing.ContextWithSpan(c.UserContext(), span))
		err := c.Next()

		ext.HTTPStatusCode.Set(span, uint16(c.Response().StatusCode()))
		if err != nil || c.Response().StatusCode() >= fiber.StatusInternalServerError {
			ext.Error.Set(span, true)
		}
		return err
	}
}
