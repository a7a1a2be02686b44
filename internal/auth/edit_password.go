package auth

import (
	"bytes"
	"encoding/json"
	"mime"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/primemotors/inventory-service/pkg/util"
)

// SecretValidator checks a caller-supplied edit password.
type SecretValidator interface {
	Validate(provided string) bool
}

const editPasswordField = "editPassword"

// EditPasswordGuard requires the rotating edit password in the request body.
type EditPasswordGuard struct {
	secrets SecretValidator
	logger  *zap.Logger
}

// NewEditPasswordGuard constructs the guard.
func NewEditPasswordGuard(secrets SecretValidator, logger *zap.Logger) *EditPasswordGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditPasswordGuard{secrets: secrets, logger: logger}
}

// Check reads editPassword from a JSON, urlencoded or multipart body, never the query string.
// An absent, empty, falsy or unreadable value is missing. Any other value that is not
// today's password string is a mismatch.
func (g *EditPasswordGuard) Check(c *fiber.Ctx) error {
	provided, present := editPasswordFrom(c)
	if !present {
		g.logger.Warn("edit authorization failed",
			zap.String("kind", apperrors.CodeMissingEditPassword),
			zap.String("path", c.Path()))
		return apperrors.NewMissingEditPassword()
	}

	if !g.secrets.Validate(provided) {
		fields := []zap.Field{
			zap.String("kind", apperrors.CodeInvalidRotationPassword),
			zap.String("path", c.Path()),
		}
		if identity, ok := IdentityFromContext(c); ok {
			fields = append(fields, zap.String("user_id", identity.UserID))
		}
		g.logger.Warn("edit authorization failed", fields...)
		return apperrors.NewInvalidRotationPassword()
	}
	return nil
}

// editPasswordFrom returns the submitted value and whether one was given at all.
// A non-string JSON value is reported as present with an empty string, which never validates.
func editPasswordFrom(c *fiber.Ctx) (string, bool) {
	if len(c.Body()) == 0 {
		return "", false
	}
	mediaType, _, err := mime.ParseMediaType(c.Get(fiber.HeaderContentType))
	if err != nil {
		return "", false
	}

	switch {
	case mediaType == fiber.MIMEApplicationJSON || strings.HasSuffix(mediaType, "+json"):
		return jsonEditPassword(c)
	case mediaType == fiber.MIMEApplicationForm:
		value := string(c.Request().PostArgs().Peek(editPasswordField))
		return value, value != ""
	case mediaType == fiber.MIMEMultipartForm:
		form, err := c.MultipartForm()
		if err != nil || len(form.Value[editPasswordField]) == 0 {
			return "", false
		}
		value := form.Value[editPasswordField][0]
		return value, value != ""
	default:
		return "", false
	}
}

func jsonEditPassword(c *fiber.Ctx) (string, bool) {
	var body map[string]json.RawMessage
	if err := c.App().Config().JSONDecoder(c.Body(), &body); err != nil {
		return "", false
	}
	raw, ok := body[editPasswordField]
	if !ok {
		return "", false
	}

	value := bytes.TrimSpace(raw)
	switch {
	case len(value) == 0, bytes.Equal(value, []byte("null")), bytes.Equal(value, []byte("false")):
		return "", false
	case value[0] == '"':
		var s string
		if err := c.App().Config().JSONDecoder(value, &s); err != nil || s == "" {
			return "", false
		}
		return s, true
	case value[0] == '{', value[0] == '[', bytes.Equal(value, []byte("true")):
		return "", true
	default:
		n, err := strconv.ParseFloat(string(value), 64)
		if err != nil || n == 0 {
			return "", false
		}
		return "", true
	}
}
