package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/weight-tracker/internal/api/http/handlers"
	"github.com/spec-kit/weight-tracker/internal/auth"
	"github.com/spec-kit/weight-tracker/internal/config"
	"github.com/spec-kit/weight-tracker/internal/domain"
	"github.com/spec-kit/weight-tracker/internal/events"
	"github.com/spec-kit/weight-tracker/internal/observability"
	"github.com/spec-kit/weight-tracker/internal/service"
)

// fixtureUserRepo serves a fixed set of accounts.
type fixtureUserRepo struct {
	users []*domain.User
}

func (r *fixtureUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = int64(len(r.users) + 1)
	r.users = append(r.users, user)
	return nil
}

func (r *fixtureUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func (r *fixtureUserRepo) Delete(ctx context.Context, id int64) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fixtureUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fixtureUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fixtureUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fixtureUserRepo) List(ctx context.Context) ([]*domain.User, error) { return r.users, nil }

// fixtureTargetRepo serves a fixed set of targets and records deletions.
type fixtureTargetRepo struct {
	targets     []*domain.Target
	deleteCalls int
}

func (r *fixtureTargetRepo) Create(ctx context.Context, target *domain.Target) error {
	target.ID = int64(len(r.targets) + 100)
	r.targets = append(r.targets, target)
	return nil
}

func (r *fixtureTargetRepo) Update(ctx context.Context, target *domain.Target) error { return nil }

func (r *fixtureTargetRepo) Delete(ctx context.Context, id int64) error {
	r.deleteCalls++
	for i, t := range r.targets {
		if t.ID == id {
			r.targets = append(r.targets[:i], r.targets[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fixtureTargetRepo) GetByID(ctx context.Context, id int64) (*domain.Target, error) {
	for _, t := range r.targets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fixtureTargetRepo) GetForUser(ctx context.Context, id, userID int64) (*domain.Target, error) {
	for _, t := range r.targets {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fixtureTargetRepo) GetByName(ctx context.Context, name string) (*domain.Target, error) {
	for _, t := range r.targets {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fixtureTargetRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Target, error) {
	var out []*domain.Target
	for _, t := range r.targets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fixtureTargetRepo) ListPublic(ctx context.Context) ([]*domain.Target, error) {
	var out []*domain.Target
	for _, t := range r.targets {
		if t.Public {
			out = append(out, t)
		}
	}
	return out, nil
}

type fixtureRoleRepo struct {
	roles []*domain.Role
}

func (r *fixtureRoleRepo) Create(ctx context.Context, role *domain.Role) error {
	role.ID = int64(len(r.roles) + 1)
	r.roles = append(r.roles, role)
	return nil
}

func (r *fixtureRoleRepo) Update(ctx context.Context, role *domain.Role) error { return nil }
func (r *fixtureRoleRepo) Delete(ctx context.Context, id int64) error          { return nil }

func (r *fixtureRoleRepo) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.ID == id {
			return role, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fixtureRoleRepo) GetByType(ctx context.Context, roleType domain.RoleType) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.RoleType == roleType {
			return role, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fixtureRoleRepo) List(ctx context.Context) ([]*domain.Role, error) { return r.roles, nil }

type fixtureMeasurementRepo struct {
	measurements []*domain.Measurement
	createCalls  int
}

func (r *fixtureMeasurementRepo) Create(ctx context.Context, m *domain.Measurement) error {
	r.createCalls++
	m.ID = int64(len(r.measurements) + 1)
	r.measurements = append(r.measurements, m)
	return nil
}

func (r *fixtureMeasurementRepo) Update(ctx context.Context, m *domain.Measurement) error { return nil }
func (r *fixtureMeasurementRepo) Delete(ctx context.Context, id int64) error              { return nil }

func (r *fixtureMeasurementRepo) GetScoped(ctx context.Context, id, targetID, userID int64) (*domain.Measurement, error) {
	for _, m := range r.measurements {
		if m.ID == id && m.TargetID == targetID {
			return m, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fixtureMeasurementRepo) ListForTarget(ctx context.Context, targetID, userID int64) ([]*domain.Measurement, error) {
	var out []*domain.Measurement
	for _, m := range r.measurements {
		if m.TargetID == targetID {
			out = append(out, m)
		}
	}
	return out, nil
}

type testEnv struct {
	app          *fiber.App
	users        *fixtureUserRepo
	targets      *fixtureTargetRepo
	measurements *fixtureMeasurementRepo
	dispatcher   events.Dispatcher
	metrics      *observability.Metrics
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

// newTestEnv wires the full HTTP stack against in-memory fixtures. It
// seeds an admin (admin@test.com/admin) and a regular account
// (user@test.com/user) that owns target 1.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	adminRole := &domain.Role{ID: 1, RoleType: domain.RoleAdmin}
	userRole := &domain.Role{ID: 3, RoleType: domain.RoleUser}

	users := &fixtureUserRepo{users: []*domain.User{
		{ID: 1, RoleID: 1, Username: "test_admin", Email: "admin@test.com", PasswordHash: mustHash(t, "admin"), Role: adminRole},
		{ID: 2, RoleID: 3, Username: "test_user", Email: "user@test.com", PasswordHash: mustHash(t, "user"), Role: userRole},
	}}
	targets := &fixtureTargetRepo{targets: []*domain.Target{
		{ID: 1, UserID: 2, Name: "user_target", TargetWeight: 75, Public: true},
		{ID: 3, UserID: 1, Name: "admin_target", TargetWeight: 80, Public: false},
	}}
	roles := &fixtureRoleRepo{roles: []*domain.Role{adminRole, {ID: 2, RoleType: domain.RolePremium}, userRole}}
	measurements := &fixtureMeasurementRepo{}

	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()

	authCfg := config.AuthConfig{
		SecretKey:          "router-test-secret",
		Algorithm:          "HS256",
		AccessTokenTTLMins: 30,
		BcryptCost:         bcrypt.MinCost,
	}
	authService, err := service.NewAuthService(authCfg, users)
	require.NoError(t, err)

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   users,
		RoleRepo:   roles,
		TargetRepo: targets,
		BcryptCost: bcrypt.MinCost,
	})
	targetService := service.NewTargetService(service.TargetDependencies{
		TargetRepo: targets,
		UserRepo:   users,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	measurementService := service.NewMeasurementService(service.MeasurementDependencies{
		MeasurementRepo: measurements,
		TargetRepo:      targets,
		Dispatcher:      dispatcher,
	})
	roleService := service.NewRoleService(roles)

	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("weight-tracker", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Targets:        handlers.NewTargetsHandler(targetService),
		Measurements:   handlers.NewMeasurementsHandler(measurementService),
		Roles:          handlers.NewRolesHandler(roleService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), users),
	})

	return &testEnv{
		app:          app,
		users:        users,
		targets:      targets,
		measurements: measurements,
		dispatcher:   dispatcher,
		metrics:      metrics,
	}
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req := httptest.NewRequest(fiber.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.AccessToken)
	require.Equal(t, "bearer", body.TokenType)
	return body.AccessToken
}

func (e *testEnv) request(t *testing.T, method, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func detailOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Detail
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@test.com", "admin")
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{}
	form.Set("username", "admin@test.com")
	form.Set("password", "not-the-password")

	req := httptest.NewRequest(fiber.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
	assert.Equal(t, auth.MsgInvalidCredentials, detailOf(t, resp))
}

func TestProtectedRoute_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, fiber.MethodGet, "/users/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
	assert.Equal(t, auth.MsgNotAuthenticated, detailOf(t, resp))
}

func TestProtectedRoute_GarbageToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, fiber.MethodGet, "/users/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, auth.MsgCouldNotValidate, detailOf(t, resp))
}

func TestTargetDelete_CrossUserForbidden(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user@test.com", "user")

	// Target 3 belongs to the admin account; a regular user may not
	// touch it even with a valid token.
	resp := env.request(t, fiber.MethodDelete, "/users/1/targets/3", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, auth.MsgForbidden, detailOf(t, resp))
	assert.Zero(t, env.targets.deleteCalls, "denied request must not delete anything")
}

func TestTargetDelete_AdminOverride(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@test.com", "admin")

	resp := env.request(t, fiber.MethodDelete, "/users/2/targets/1", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, env.targets.deleteCalls)
}

func TestTargetDelete_UnknownOwnerIs404(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@test.com", "admin")

	// Lookup runs before authorization, so even an admin gets a 404
	// when the target does not exist under the declared owner.
	resp := env.request(t, fiber.MethodDelete, "/users/999999/targets/1", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Target with id 1 for user 999999 not found", detailOf(t, resp))
	assert.Zero(t, env.targets.deleteCalls)
}

func TestUserPatch_UnknownUserIs404ForAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@test.com", "admin")

	req := httptest.NewRequest(fiber.MethodPatch, "/users/999999", strings.NewReader(`{"username":"renamed"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User with id 999999 not found", detailOf(t, resp))
}

func TestUserPatch_CrossUserForbidden(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user@test.com", "user")

	req := httptest.NewRequest(fiber.MethodPatch, "/users/1", strings.NewReader(`{"username":"hijacked"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, auth.MsgForbidden, detailOf(t, resp))
}

func TestRoles_AdminGate(t *testing.T) {
	env := newTestEnv(t)

	userToken := env.login(t, "user@test.com", "user")
	resp := env.request(t, fiber.MethodGet, "/roles/", userToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, auth.MsgForbidden, detailOf(t, resp))

	adminToken := env.login(t, "admin@test.com", "admin")
	resp = env.request(t, fiber.MethodGet, "/roles/", adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicTargets_NoTokenRequired(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, fiber.MethodGet, "/users/targets", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "user_target", body[0]["name"])
}

func TestMe_ReflectsTokenSubject(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user@test.com", "user")

	resp := env.request(t, fiber.MethodGet, "/users/me", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user@test.com", body["email"])
	assert.NotContains(t, body, "password")
}

func TestMeasurementCreate_CrossUserForbidden(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user@test.com", "user")

	req := httptest.NewRequest(fiber.MethodPost, "/users/1/targets/3/measurements",
		strings.NewReader(`{"weight":79.5,"measurement_date":"2026-01-15"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, auth.MsgForbidden, detailOf(t, resp))
	assert.Zero(t, env.measurements.createCalls, "denied request must not record anything")
}

func TestMeasurementCreate_OwnerSucceedsAndPublishes(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user@test.com", "user")

	var seen *events.Event
	env.dispatcher.Subscribe(events.EventMeasurementRecorded, func(ctx context.Context, event events.Event) error {
		seen = &event
		return nil
	})

	req := httptest.NewRequest(fiber.MethodPost, "/users/2/targets/1/measurements",
		strings.NewReader(`{"weight":79.5,"measurement_date":"2026-01-15"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, env.measurements.createCalls)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 79.5, body["weight"])
	assert.Equal(t, "2026-01-15", body["measurement_date"])

	require.NotNil(t, seen, "creating a weigh-in must publish an event")
	assert.Equal(t, int64(1), seen.TargetID)
}

func TestMeasurementList_TargetUnderWrongOwnerIs404(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user@test.com", "user")

	// Target 999 does not exist under user 2, so the target -> user
	// chain fails before any measurement is read.
	resp := env.request(t, fiber.MethodGet, "/users/2/targets/999/measurements", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Target with id 999 for user 2 not found", detailOf(t, resp))
}

func TestRequestMetrics_RecordRenderedErrorStatus(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, fiber.MethodGet, "/users/999999", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, int64(1), env.metrics.RequestCount("/users/999999", fiber.MethodGet, http.StatusNotFound))
	assert.Zero(t, env.metrics.RequestCount("/users/999999", fiber.MethodGet, http.StatusOK))
}

func TestRootHello(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, fiber.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
