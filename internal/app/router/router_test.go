package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authhandler "user_backend/internal/feature/auth/transport/handler"
	authusecase "user_backend/internal/feature/auth/usecase"
	"user_backend/internal/feature/users/adapters"
	"user_backend/internal/feature/users/domain/entity"
	userhandler "user_backend/internal/feature/users/transport/handler"
	usersusecase "user_backend/internal/feature/users/usecase"
	jwtmw "user_backend/internal/platform/jwt"
	"user_backend/internal/platform/password"
)

const testSecret = "router-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupServer wires the real stack (sqlite, bcrypt, JWT) behind the router.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Location{}, &entity.Credential{}))

	repo := adapters.NewUserMySQL(db)
	hasher := password.NewHasher(bcrypt.MinCost)
	tokens := jwtmw.NewGenerator(testSecret, time.Hour)

	userUC := usersusecase.NewUserUsecase(repo, hasher)
	authUC := authusecase.NewAuthUsecase(repo, hasher, tokens)

	return New(authhandler.NewAuthHandler(authUC), userhandler.NewUserHandler(userUC), testSecret)
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// createUser POSTs a user and returns its generated id.
func createUser(t *testing.T, router *gin.Engine, body gin.H) uint {
	t.Helper()

	w := do(t, router, http.MethodPost, "/api/users", "", body)
	require.Equal(t, http.StatusCreated, w.Code, "create failed: %s", w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	return uint(data["id"].(float64))
}

// login authenticates and returns the issued token.
func login(t *testing.T, router *gin.Engine, name, pass string) string {
	t.Helper()

	w := do(t, router, http.MethodPost, "/auth/login", "", gin.H{"name": name, "password": pass})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	return decode(t, w)["token"].(string)
}

func TestCreateThenLogin(t *testing.T) {
	router := setupServer(t)
	createUser(t, router, gin.H{"name": "Abhyudaya", "password": "hunter2"})

	t.Run("matching credentials yield a token", func(t *testing.T) {
		token := login(t, router, "Abhyudaya", "hunter2")
		assert.NotEmpty(t, token)
	})

	t.Run("name matching is case-insensitive", func(t *testing.T) {
		token := login(t, router, "abhyudaya", "hunter2")
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password is a 401", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/auth/login", "",
			gin.H{"name": "Abhyudaya", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown name is a 404", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/auth/login", "",
			gin.H{"name": "nobody", "password": "hunter2"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetAfterCreate(t *testing.T) {
	router := setupServer(t)
	id := createUser(t, router, gin.H{
		"name":     "Alice",
		"salary":   50000,
		"status":   true,
		"password": "hunter2",
		"Location": []gin.H{{"country": "NL", "district": "ZH", "street": "Main"}},
	})
	token := login(t, router, "Alice", "hunter2")

	w := do(t, router, http.MethodGet, "/api/users/"+itoa(id), token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "Alice", user["name"])
	assert.Equal(t, float64(50000), user["salary"])
	assert.Equal(t, true, user["status"])
	locations := user["Location"].([]any)
	require.Len(t, locations, 1)
	assert.Equal(t, "NL", locations[0].(map[string]any)["country"])
	assert.NotContains(t, w.Body.String(), "hunter2", "password must never be present")
	assert.NotContains(t, user, "password")
}

func TestGetUserWithoutLocations(t *testing.T) {
	router := setupServer(t)
	id := createUser(t, router, gin.H{"name": "Bob", "password": "hunter2"})
	token := login(t, router, "Bob", "hunter2")

	w := do(t, router, http.MethodGet, "/api/users/"+itoa(id), token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["data"].(map[string]any)
	locations, ok := user["Location"].([]any)
	require.True(t, ok, "Location must be an array, not null: %s", w.Body.String())
	assert.Empty(t, locations)
}

func TestPatchPartialUpdate(t *testing.T) {
	router := setupServer(t)
	id := createUser(t, router, gin.H{
		"name":     "Alice",
		"salary":   50000,
		"status":   true,
		"password": "hunter2",
		"Location": []gin.H{
			{"country": "NL", "district": "ZH", "street": "Main"},
			{"country": "DE", "district": "BE", "street": "Second"},
		},
	})
	token := login(t, router, "Alice", "hunter2")

	t.Run("salary-only patch leaves everything else alone", func(t *testing.T) {
		w := do(t, router, http.MethodPatch, "/api/users/"+itoa(id), token,
			gin.H{"salary": 70000})

		require.Equal(t, http.StatusOK, w.Code)
		user := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, float64(70000), user["salary"])
		assert.Equal(t, "Alice", user["name"])
		assert.Equal(t, true, user["status"])
		assert.Len(t, user["Location"].([]any), 2)
	})

	t.Run("patching one location by id leaves the other untouched", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/users/"+itoa(id), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		locations := decode(t, w)["data"].(map[string]any)["Location"].([]any)
		first := locations[0].(map[string]any)
		firstID := first["id"].(float64)

		w = do(t, router, http.MethodPatch, "/api/users/"+itoa(id), token, gin.H{
			"Location": []gin.H{{"id": firstID, "country": "FR", "district": "IDF", "street": "Rue"}},
		})
		require.Equal(t, http.StatusOK, w.Code)

		updated := decode(t, w)["data"].(map[string]any)["Location"].([]any)
		require.Len(t, updated, 2)
		byID := map[float64]map[string]any{}
		for _, l := range updated {
			loc := l.(map[string]any)
			byID[loc["id"].(float64)] = loc
		}
		assert.Equal(t, "FR", byID[firstID]["country"])
		second := locations[1].(map[string]any)
		assert.Equal(t, "DE", byID[second["id"].(float64)]["country"])
	})

	t.Run("patched password replaces the credential", func(t *testing.T) {
		w := do(t, router, http.MethodPatch, "/api/users/"+itoa(id), token,
			gin.H{"password": "new-secret"})
		require.Equal(t, http.StatusOK, w.Code)

		login(t, router, "Alice", "new-secret")
		w = do(t, router, http.MethodPost, "/auth/login", "",
			gin.H{"name": "Alice", "password": "hunter2"})
		assert.Equal(t, http.StatusUnauthorized, w.Code, "old password must stop working")
	})
}

func TestDeleteThenGet(t *testing.T) {
	router := setupServer(t)
	id := createUser(t, router, gin.H{
		"name":     "Doomed",
		"password": "hunter2",
		"Location": []gin.H{{"country": "NL", "district": "ZH", "street": "Main"}},
	})
	token := login(t, router, "Doomed", "hunter2")

	w := do(t, router, http.MethodDelete, "/api/users/"+itoa(id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/users/"+itoa(id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNonNumericIDIsClientError(t *testing.T) {
	router := setupServer(t)
	createUser(t, router, gin.H{"name": "Alice", "password": "hunter2"})
	token := login(t, router, "Alice", "hunter2")

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			w := do(t, router, method, "/api/users/abc", token, gin.H{})
			assert.Equal(t, http.StatusBadRequest, w.Code, "must be a 400, never a 500 or crash")
		})
	}
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	router := setupServer(t)

	t.Run("missing token is a 401", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/users", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token is a 403 everywhere", func(t *testing.T) {
		expired := jwtmw.NewGenerator(testSecret, -time.Hour)
		token, err := expired.GenerateToken(1, "Alice")
		require.NoError(t, err)

		for _, route := range []struct{ method, path string }{
			{http.MethodGet, "/api/users"},
			{http.MethodGet, "/api/users/1"},
			{http.MethodPatch, "/api/users/1"},
			{http.MethodDelete, "/api/users/1"},
			{http.MethodGet, "/protected"},
		} {
			w := do(t, router, route.method, route.path, token, gin.H{})
			assert.Equal(t, http.StatusForbidden, w.Code,
				"%s %s accepted an expired token", route.method, route.path)
		}
	})

	t.Run("valid token reaches the claims echo", func(t *testing.T) {
		createUser(t, router, gin.H{"name": "Alice", "password": "hunter2"})
		token := login(t, router, "Alice", "hunter2")

		w := do(t, router, http.MethodGet, "/protected", token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "Alice", data["name"])
	})
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
