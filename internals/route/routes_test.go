package routes

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletennis_backend/internals/configs"
	"tabletennis_backend/internals/databases/testdb"
	"tabletennis_backend/internals/helpers/dbtime"
	"tabletennis_backend/internals/helpers/storage"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWith(t, nil)
}

func newTestAppWith(t *testing.T, tweak func(*configs.AppConfig)) *fiber.App {
	t.Helper()
	db := testdb.New(t)
	uploads := t.TempDir()
	cfg := configs.AppConfig{
		Database:      configs.DatabaseConfig{Driver: configs.DriverSQLite, ForeignKeys: true},
		CorsOrigins:   []string{"http://localhost:5173"},
		BodyLimitMB:   10,
		RateLimitMax:  0,
		DeriveOnRead:  true,
		UploadDir:     uploads,
		UploadURLBase: "/uploads",
	}
	if tweak != nil {
		tweak(&cfg)
	}
	return NewApp(db, cfg, storage.NewLocalStore(uploads, "/uploads"))
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := sonic.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, sonic.Unmarshal(b, &v), string(b))
	return v
}

func TestStudentDeleteCascadesOverHTTP(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/students", map[string]any{
		"name": "Alice", "amount": 100, "start_date": "2024-01-01",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	alice := decode[map[string]any](t, body)
	aliceID := alice["id"].(string)
	assert.Equal(t, "2024-01-01", alice["start_date"])

	status, body = do(t, app, http.MethodPost, "/api/payments", map[string]any{
		"student_id": aliceID, "amount": 100, "payment_date": "2024-01-15",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	payment := decode[map[string]any](t, body)
	assert.Equal(t, "pending", payment["status"])
	assert.Equal(t, "2024-01-15", payment["payment_date"])

	status, body = do(t, app, http.MethodGet, "/api/payments", nil)
	require.Equal(t, fiber.StatusOK, status)
	list := decode[[]map[string]any](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0]["student_name"])
	assert.Contains(t, list[0], "current_status")

	status, body = do(t, app, http.MethodDelete, "/api/students/"+aliceID, nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	deleted := decode[map[string]any](t, body)
	assert.Equal(t, true, deleted["success"])
	assert.EqualValues(t, 1, deleted["deletedPayments"])

	status, body = do(t, app, http.MethodGet, "/api/payments", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, decode[[]map[string]any](t, body))

	status, body = do(t, app, http.MethodDelete, "/api/students/"+aliceID, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	errBody := decode[map[string]any](t, body)
	assert.Equal(t, false, errBody["success"])
	assert.Equal(t, "NOT_FOUND", errBody["error_code"])
}

func TestPaymentValidationAndForeignKey(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/payments", map[string]any{
		"student_id": "2b0c7d1e-6a53-4d0e-9a57-1b7c2f0e8a11",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, status, string(body))
	fields := decode[map[string]any](t, body)["errors"].(map[string]any)
	assert.Contains(t, fields, "amount")
	assert.Contains(t, fields, "payment_date")

	status, body = do(t, app, http.MethodPost, "/api/payments", map[string]any{
		"student_id": "2b0c7d1e-6a53-4d0e-9a57-1b7c2f0e8a11", "amount": 10, "payment_date": "2024-01-15",
	})
	assert.Equal(t, fiber.StatusConflict, status, string(body))

	req := httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	status, _ = send(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/api/students", map[string]any{"email": "x@example.com"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestReconcileOverHTTP(t *testing.T) {
	app := newTestApp(t)

	_, body := do(t, app, http.MethodPost, "/api/students", map[string]any{"name": "Bob", "amount": 100})
	bobID := decode[map[string]any](t, body)["id"].(string)

	status, body := do(t, app, http.MethodPut, "/api/payments/status/"+bobID, map[string]any{"amount": 100})
	require.Equal(t, fiber.StatusOK, status, string(body))
	res := decode[map[string]any](t, body)
	assert.Equal(t, true, res["success"])
	assert.EqualValues(t, 100, res["total_paid"])
	payments := res["payments"].([]any)
	require.Len(t, payments, 1)
	p := payments[0].(map[string]any)
	assert.Equal(t, "paid", p["status"])
	assert.Equal(t, "System", p["payment_method"])
	assert.Equal(t, dbtime.FormatDate(dbtime.ToDate(dbtime.Today())), p["payment_date"])

	status, _ = do(t, app, http.MethodPut, "/api/payments/status/2b0c7d1e-6a53-4d0e-9a57-1b7c2f0e8a11", map[string]any{"amount": 100})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = do(t, app, http.MethodGet, "/api/students/"+bobID+"/payments", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, body), 1)
}

func TestPaymentListWithoutDerivedStatus(t *testing.T) {
	app := newTestAppWith(t, func(cfg *configs.AppConfig) { cfg.DeriveOnRead = false })

	_, body := do(t, app, http.MethodPost, "/api/students", map[string]any{"name": "Cara", "amount": 80})
	caraID := decode[map[string]any](t, body)["id"].(string)

	status, body := do(t, app, http.MethodPost, "/api/payments", map[string]any{
		"student_id": caraID, "amount": 80, "payment_date": "2024-01-15",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	for _, path := range []string{"/api/payments", "/api/students/" + caraID + "/payments"} {
		status, body = do(t, app, http.MethodGet, path, nil)
		require.Equal(t, fiber.StatusOK, status, path)
		list := decode[[]map[string]any](t, body)
		require.Len(t, list, 1, path)
		assert.Equal(t, "pending", list[0]["status"])
		assert.NotContains(t, list[0], "current_status", path)
	}
}

func TestNewsFlagsRoundTrip(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/news", map[string]any{
		"title": "Club open", "content": "Doors at 9", "isBreaking": true, "isHighlighted": "0",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	post := decode[map[string]any](t, body)
	assert.Equal(t, true, post["isBreaking"])
	assert.Equal(t, false, post["isHighlighted"])
	assert.Equal(t, "draft", post["status"])

	id := post["id"].(string)
	status, body = do(t, app, http.MethodGet, "/api/news/"+id, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, decode[map[string]any](t, body)["isBreaking"])

	status, body = do(t, app, http.MethodPut, "/api/news/"+id, map[string]any{"status": "published", "isBreaking": 0})
	require.Equal(t, fiber.StatusOK, status, string(body))
	updated := decode[map[string]any](t, body)
	assert.Equal(t, false, updated["isBreaking"])
	assert.Equal(t, "Club open", updated["title"])

	status, body = do(t, app, http.MethodGet, "/api/news?status=published", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, body), 1)

	status, _ = do(t, app, http.MethodDelete, "/api/news/"+id, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = do(t, app, http.MethodGet, "/api/news/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestNewsMultipartImageUpload(t *testing.T) {
	app := newTestApp(t)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	require.NoError(t, mw.WriteField("title", "Camp photos"))
	require.NoError(t, mw.WriteField("isHighlighted", "1"))
	fw, err := mw.CreateFormFile("image", "camp.png")
	require.NoError(t, err)
	_, err = fw.Write(pngBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/news", &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	status, body := send(t, app, req)
	require.Equal(t, fiber.StatusCreated, status, string(body))

	post := decode[map[string]any](t, body)
	assert.Equal(t, true, post["isHighlighted"])
	url, _ := post["image"].(string)
	require.True(t, strings.HasPrefix(url, "/uploads/news/camp_"), url)

	status, _ = send(t, app, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestHealthAndDocs(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", decode[map[string]any](t, body)["status"])

	status, body = do(t, app, http.MethodGet, "/api/docs/openapi.yaml", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "/api/payments/status/{studentId}")
}
