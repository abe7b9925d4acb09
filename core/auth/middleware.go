package auth

import (
	"strings"

	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Locals keys under which the authenticated actor is stored.
const (
	localUser    = "current_user"
	localPatient = "current_patient"
	localActor   = "current_actor"
)

// Actor is the authenticated caller: exactly one of the fields is set.
type Actor struct {
	Psychologist *models.Psychologist
	Patient      *models.Patient
}

// ID returns the actor's database id.
func (a Actor) ID() int {
	if a.Psychologist != nil {
		return a.Psychologist.ID
	}
	if a.Patient != nil {
		return a.Patient.ID
	}
	return 0
}

// Name returns a display name for audit entries.
func (a Actor) Name() string {
	if a.Psychologist != nil {
		return a.Psychologist.Name
	}
	if a.Patient != nil {
		return a.Patient.PatientCode
	}
	return "Unknown"
}

// Type returns "psychologist" or "patient".
func (a Actor) Type() string {
	if a.Patient != nil {
		return "patient"
	}
	return "psychologist"
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// RequireUser authenticates a psychologist (or admin) token and stores the
// account in the request locals.
func RequireUser(db *gorm.DB, cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Could not validate credentials")
		}
		claims, err := DecodeToken(cfg, token)
		if err != nil {
			return unauthorized(c, "Could not validate credentials")
		}
		id, ok := SubjectID(claims)
		if !ok {
			return unauthorized(c, "Could not validate credentials")
		}
		var user models.Psychologist
		if err := db.First(&user, id).Error; err != nil {
			return unauthorized(c, "User not found")
		}
		c.Locals(localUser, &user)
		c.Locals(localActor, Actor{Psychologist: &user})
		return c.Next()
	}
}

// RequireAdmin authenticates a psychologist and requires the admin role.
func RequireAdmin(db *gorm.DB, cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Could not validate credentials")
		}
		claims, err := DecodeToken(cfg, token)
		if err != nil {
			return unauthorized(c, "Could not validate credentials")
		}
		id, ok := SubjectID(claims)
		if !ok {
			return unauthorized(c, "Could not validate credentials")
		}
		var user models.Psychologist
		if err := db.First(&user, id).Error; err != nil {
			return unauthorized(c, "User not found")
		}
		if user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required"})
		}
		c.Locals(localUser, &user)
		c.Locals(localActor, Actor{Psychologist: &user})
		return c.Next()
	}
}

// RequireSuperadmin authenticates a psychologist and requires the superadmin role.
func RequireSuperadmin(db *gorm.DB, cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Could not validate credentials")
		}
		claims, err := DecodeToken(cfg, token)
		if err != nil {
			return unauthorized(c, "Could not validate credentials")
		}
		id, ok := SubjectID(claims)
		if !ok {
			return unauthorized(c, "Could not validate credentials")
		}
		var user models.Psychologist
		if err := db.First(&user, id).Error; err != nil {
			return unauthorized(c, "User not found")
		}
		if user.Role != models.RoleSuperadmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Superadmin access required"})
		}
		c.Locals(localUser, &user)
		c.Locals(localActor, Actor{Psychologist: &user})
		return c.Next()
	}
}

// RequirePatient authenticates a patient token, including the token version
// check that invalidates regenerated access codes.
func RequirePatient(db *gorm.DB, cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Could not validate credentials")
		}
		claims, err := DecodeToken(cfg, token)
		if err != nil {
			return unauthorized(c, "Could not validate credentials")
		}
		id, okID := SubjectID(claims)
		if !okID || ClaimString(claims, "role") != "patient" {
			return unauthorized(c, "Invalid authentication credentials for patient")
		}
		var patient models.Patient
		if err := db.First(&patient, id).Error; err != nil {
			return unauthorized(c, "Patient not found")
		}
		if version, present := ClaimInt(claims, "token_version"); present && version != patient.TokenVersion {
			return unauthorized(c, "Session expired (Token Version Mismatch)")
		}
		c.Locals(localPatient, &patient)
		c.Locals(localActor, Actor{Patient: &patient})
		return c.Next()
	}
}

// RequireActor authenticates either kind of token, routing on the role claim.
func RequireActor(db *gorm.DB, cfg Config) fiber.Handler {
	requireUser := RequireUser(db, cfg)
	requirePatient := RequirePatient(db, cfg)
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Could not validate credentials")
		}
		claims, err := DecodeToken(cfg, token)
		if err != nil {
			return unauthorized(c, "Could not validate credentials")
		}
		if ClaimString(claims, "role") == "patient" {
			return requirePatient(c)
		}
		return requireUser(c)
	}
}

// UserFromCtx returns the authenticated psychologist, or nil.
func UserFromCtx(c *fiber.Ctx) *models.Psychologist {
	user, _ := c.Locals(localUser).(*models.Psychologist)
	return user
}

// PatientFromCtx returns the authenticated patient, or nil.
func PatientFromCtx(c *fiber.Ctx) *models.Patient {
	patient, _ := c.Locals(localPatient).(*models.Patient)
	return patient
}

// ActorFromCtx returns the authenticated actor of either kind.
func ActorFromCtx(c *fiber.Ctx) (Actor, bool) {
	actor, ok := c.Locals(localActor).(Actor)
	return actor, ok
}
