package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/application/identity"
	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

// Locals keys para la sesión resuelta en Fiber.
const (
	LocalSession = "session"
	LocalUserID  = "user_id"
	LocalRole    = "role"
)

// AuthMiddleware resuelve la credencial (Bearer o cookie de sesión) y carga la sesión en c.Locals.
// Sin credencial o con token inválido, revocado o con rol desconocido responde 401.
func AuthMiddleware(resolver *identity.Resolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := credential(c, cookieName)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "credencial requerida"})
		}
		session, err := resolver.Resolve(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
			}
			return respondError(c, err)
		}
		setSession(c, session)
		return c.Next()
	}
}

// OptionalAuth como AuthMiddleware pero deja pasar peticiones anónimas.
// Un token presente pero inválido se ignora: la ruta decide qué hacer sin actor.
func OptionalAuth(resolver *identity.Resolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := credential(c, cookieName); ok {
			if session, err := resolver.Resolve(c.UserContext(), token); err == nil {
				setSession(c, session)
			}
		}
		return c.Next()
	}
}

// RequireRole permite el paso solo a los roles indicados. Va después de AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "sesión sin rol"})
		}
		for _, r := range roles {
			if actor.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// credential Authorization: Bearer tiene prioridad sobre la cookie.
func credential(c *fiber.Ctx, cookieName string) (string, bool) {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if tok := strings.TrimSpace(parts[1]); tok != "" {
				return tok, true
			}
		}
		return "", false
	}
	if cookieName == "" {
		return "", false
	}
	tok := strings.TrimSpace(c.Cookies(cookieName))
	return tok, tok != ""
}

func setSession(c *fiber.Ctx, s *identity.Session) {
	c.Locals(LocalSession, s)
	c.Locals(LocalUserID, s.Actor.ID)
	c.Locals(LocalRole, string(s.Actor.Role))
}

// GetSession devuelve la sesión resuelta o nil.
func GetSession(c *fiber.Ctx) *identity.Session {
	s, _ := c.Locals(LocalSession).(*identity.Session)
	return s
}

// GetActor devuelve el actor de la sesión o nil si la petición es anónima.
func GetActor(c *fiber.Ctx) *entity.Actor {
	s := GetSession(c)
	if s == nil {
		return nil
	}
	a := s.Actor
	return &a
}

// actorOf actor para los casos de uso; vacío (inválido) si no hay sesión.
func actorOf(c *fiber.Ctx) entity.Actor {
	if a := GetActor(c); a != nil {
		return *a
	}
	return entity.Actor{}
}

// GetUserID devuelve el id del usuario autenticado.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
