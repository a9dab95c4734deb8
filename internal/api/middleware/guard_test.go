package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

func guardStatus(t *testing.T, identity *domain.Identity, allowed ...domain.Role) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set("identity", *identity)
	}

	called := false
	handler := Guard(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code, called
}

func TestGuard_AllowsMatchingRole(t *testing.T) {
	identity := &domain.Identity{UserID: 1, Role: domain.RoleAdministrator}
	code, called := guardStatus(t, identity, domain.RoleAdministrator)
	if !called {
		t.Fatalf("next not called")
	}
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestGuard_RoleListIsLogicalOr(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdministrator, domain.RoleCashier} {
		identity := &domain.Identity{UserID: 1, Role: role}
		code, called := guardStatus(t, identity, domain.RoleAdministrator, domain.RoleCashier)
		if !called || code != http.StatusOK {
			t.Fatalf("%s should pass an OR guard, got %d", role, code)
		}
	}
}

func TestGuard_ForbidsWrongRole(t *testing.T) {
	identity := &domain.Identity{UserID: 1, Role: domain.RoleCustomer}
	code, called := guardStatus(t, identity, domain.RoleAdministrator, domain.RoleCashier)
	if called {
		t.Fatalf("next must not run")
	}
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

// Missing identity means Auth never ran: that is unauthenticated, not
// forbidden.
func TestGuard_MissingIdentity(t *testing.T) {
	code, called := guardStatus(t, nil, domain.RoleAdministrator)
	if called {
		t.Fatalf("next must not run")
	}
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestGuard_EmptyRoleListDeniesAll(t *testing.T) {
	identity := &domain.Identity{UserID: 1, Role: domain.RoleAdministrator}
	code, called := guardStatus(t, identity)
	if called {
		t.Fatalf("next must not run")
	}
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}
