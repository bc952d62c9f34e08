package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	memoryRepo "cardoctor/database/repository/memory"
	"cardoctor/handlers"
	"cardoctor/middleware"
	"cardoctor/models"
	"cardoctor/services/auth"
	"cardoctor/services/booking"
	"cardoctor/services/catalog"
	"cardoctor/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	tokens   *auth.DefaultTokenService
	services *memoryRepo.ServiceRepo
	bookings *memoryRepo.BookingRepo
	catalog  []models.Service
}

type staticHealth struct{ status utils.HealthStatus }

func (s staticHealth) Status() utils.HealthStatus { return s.status }

func newTestServer(t *testing.T, enforceOwnership bool) *testServer {
	t.Helper()

	catalogData := []models.Service{
		{ID: primitive.NewObjectID(), Title: "Electrical System", Price: 20, ServiceID: "01", Img: "https://img/1.jpg", Description: "wiring"},
		{ID: primitive.NewObjectID(), Title: "Engine Diagnostics", Price: 55.5, ServiceID: "02", Img: "https://img/2.jpg"},
		{ID: primitive.NewObjectID(), Title: "Auto Car Repair", Price: 150, ServiceID: "03", Img: "https://img/3.jpg"},
		{ID: primitive.NewObjectID(), Title: "engine oil change", Price: 35, ServiceID: "04", Img: "https://img/4.jpg"},
	}
	ts := &testServer{
		tokens:   auth.NewTokenService("test-secret", 2*time.Hour),
		services: memoryRepo.NewServiceRepo(catalogData...),
		bookings: memoryRepo.NewBookingRepo(),
		catalog:  catalogData,
	}

	tokenHandler := handlers.NewTokenHandler(ts.tokens)
	catalogHandler := handlers.NewCatalogHandler(&catalog.DefaultCatalogService{Repo: ts.services})
	bookingHandler := handlers.NewBookingHandler(&booking.DefaultBookingService{Repo: ts.bookings, EnforceOwnership: enforceOwnership})

	hb := &handlers.HandlerBundle{
		IssueTokenHandler:          tokenHandler.IssueTokenHandler,
		ListServicesHandler:        catalogHandler.ListServicesHandler,
		GetServiceHandler:          catalogHandler.GetServiceHandler,
		ListBookingsHandler:        bookingHandler.ListBookingsHandler,
		CreateBookingHandler:       bookingHandler.CreateBookingHandler,
		UpdateBookingStatusHandler: bookingHandler.UpdateBookingStatusHandler,
		DeleteBookingHandler:       bookingHandler.DeleteBookingHandler,
		LivenessHandler:            handlers.LivenessHandler,
		HealthHandler:              handlers.NewHealthHandler(staticHealth{utils.HealthStatus{Mongo: true, CheckedAt: time.Now()}}),
	}

	r := gin.New()
	r.Use(utils.ErrorHandler())
	RegisterRoutes(r, hb, Options{
		Auth:                    middleware.JWTAuthMiddleware(ts.tokens),
		EnforceBookingOwnership: enforceOwnership,
	})
	ts.router = r
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) token(t *testing.T, email string) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/jwt", "", map[string]interface{}{"email": email})
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestLiveness(t *testing.T) {
	ts := newTestServer(t, false)
	rec := ts.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "doctor is running", rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode[map[string]interface{}](t, rec)["mongo"])
}

func TestIssueToken(t *testing.T) {
	ts := newTestServer(t, false)

	token := ts.token(t, "a@b.com")
	identity, err := ts.tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", identity.Email())

	rec := ts.do(t, http.MethodPost, "/jwt", "", []string{"not", "an", "object"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListServices_Sorting(t *testing.T) {
	ts := newTestServer(t, false)

	asc := decode[[]models.Service](t, ts.do(t, http.MethodGet, "/services?sort=asc", "", nil))
	require.Len(t, asc, len(ts.catalog))
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
	}

	for _, path := range []string{"/services?sort=desc", "/services"} {
		desc := decode[[]models.Service](t, ts.do(t, http.MethodGet, path, "", nil))
		require.Len(t, desc, len(ts.catalog), path)
		for i := 1; i < len(desc); i++ {
			assert.GreaterOrEqual(t, desc[i-1].Price, desc[i].Price, path)
		}
	}
}

func TestListServices_Search(t *testing.T) {
	ts := newTestServer(t, false)

	found := decode[[]models.Service](t, ts.do(t, http.MethodGet, "/services?search=ENGINE&sort=asc", "", nil))
	require.Len(t, found, 2)
	for _, s := range found {
		assert.Contains(t, strings.ToLower(s.Title), "engine")
	}
	assert.Equal(t, "engine oil change", found[0].Title)

	rec := ts.do(t, http.MethodGet, "/services?search=helicopter", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetService(t *testing.T) {
	ts := newTestServer(t, false)
	want := ts.catalog[0]

	rec := ts.do(t, http.MethodGet, "/services/"+want.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]interface{}](t, rec)
	assert.Equal(t, want.ID.Hex(), got["_id"])
	assert.Equal(t, want.Title, got["title"])
	assert.Equal(t, want.Price, got["price"])
	assert.Equal(t, want.ServiceID, got["service_id"])
	assert.Equal(t, want.Img, got["img"])
	assert.NotContains(t, got, "description")

	rec = ts.do(t, http.MethodGet, "/services/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"invalid id"}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/services/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBookings_RequiresToken(t *testing.T) {
	ts := newTestServer(t, false)

	for _, path := range []string{"/bookings", "/bookings?email=a@b.com"} {
		rec := ts.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":true,"message":"unauthorized access"}`, rec.Body.String())
	}

	rec := ts.do(t, http.MethodGet, "/bookings?email=a@b.com", "forged.token.value", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListBookings_Scenario(t *testing.T) {
	ts := newTestServer(t, false)
	token := ts.token(t, "a@b.com")

	ts.do(t, http.MethodPost, "/bookings", "", map[string]interface{}{"email": "a@b.com", "service": "Oil"})
	ts.do(t, http.MethodPost, "/bookings", "", map[string]interface{}{"email": "c@d.com", "service": "Brakes"})

	rec := ts.do(t, http.MethodGet, "/bookings?email=a@b.com", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bookings := decode[[]map[string]interface{}](t, rec)
	require.Len(t, bookings, 1)
	assert.Equal(t, "a@b.com", bookings[0]["email"])

	rec = ts.do(t, http.MethodGet, "/bookings?email=c@d.com", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":1,"message":"forbidden access"}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/bookings", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListBookings_EmptyIsArray(t *testing.T) {
	ts := newTestServer(t, false)
	rec := ts.do(t, http.MethodGet, "/bookings?email=new@b.com", ts.token(t, "new@b.com"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateBooking_RoundTrip(t *testing.T) {
	ts := newTestServer(t, false)
	fields := map[string]interface{}{
		"email":        "a@b.com",
		"customerName": "Ann",
		"service":      "Engine Diagnostics",
		"service_id":   "02",
		"price":        55.5,
		"date":         "2024-05-01",
		"img":          "https://img/2.jpg",
	}

	rec := ts.do(t, http.MethodPost, "/bookings", "", fields)
	require.Equal(t, http.StatusOK, rec.Code)
	ack := decode[map[string]interface{}](t, rec)
	assert.Equal(t, true, ack["acknowledged"])
	insertedID, ok := ack["insertedId"].(string)
	require.True(t, ok)

	rec = ts.do(t, http.MethodGet, "/bookings?email=a@b.com", ts.token(t, "a@b.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bookings := decode[[]map[string]interface{}](t, rec)
	require.Len(t, bookings, 1)

	got := bookings[0]
	assert.Equal(t, insertedID, got["_id"])
	delete(got, "_id")
	assert.Equal(t, fields, got)
}

func TestCreateBooking_BadBody(t *testing.T) {
	ts := newTestServer(t, false)
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"email":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBookingStatus_Idempotent(t *testing.T) {
	ts := newTestServer(t, false)
	ack := decode[map[string]interface{}](t, ts.do(t, http.MethodPost, "/bookings", "", map[string]interface{}{
		"email": "a@b.com", "status": "pending", "service": "Oil",
	}))
	id := ack["insertedId"].(string)

	first := decode[models.UpdateResult](t, ts.do(t, http.MethodPatch, "/bookings/"+id, "", map[string]string{"status": "confirmed"}))
	assert.EqualValues(t, 1, first.MatchedCount)
	assert.EqualValues(t, 1, first.ModifiedCount)

	second := decode[models.UpdateResult](t, ts.do(t, http.MethodPatch, "/bookings/"+id, "", map[string]string{"status": "confirmed"}))
	assert.EqualValues(t, 1, second.MatchedCount)
	assert.EqualValues(t, 0, second.ModifiedCount)

	bookings := decode[[]map[string]interface{}](t, ts.do(t, http.MethodGet, "/bookings?email=a@b.com", ts.token(t, "a@b.com"), nil))
	require.Len(t, bookings, 1)
	assert.Equal(t, "confirmed", bookings[0]["status"])
	assert.Equal(t, "Oil", bookings[0]["service"])

	rec := ts.do(t, http.MethodPatch, "/bookings/bogus", "", map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteBooking(t *testing.T) {
	ts := newTestServer(t, false)
	ack := decode[map[string]interface{}](t, ts.do(t, http.MethodPost, "/bookings", "", map[string]interface{}{"email": "a@b.com"}))
	id := ack["insertedId"].(string)

	res := decode[models.DeleteResult](t, ts.do(t, http.MethodDelete, "/bookings/"+id, "", nil))
	assert.True(t, res.Acknowledged)
	assert.EqualValues(t, 1, res.DeletedCount)

	res = decode[models.DeleteResult](t, ts.do(t, http.MethodDelete, "/bookings/"+id, "", nil))
	assert.EqualValues(t, 0, res.DeletedCount)

	rec := ts.do(t, http.MethodDelete, "/bookings/123", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOwnershipEnforced(t *testing.T) {
	ts := newTestServer(t, true)
	ack := decode[map[string]interface{}](t, ts.do(t, http.MethodPost, "/bookings", "", map[string]interface{}{"email": "a@b.com", "status": "pending"}))
	id := ack["insertedId"].(string)
	owner, stranger := ts.token(t, "a@b.com"), ts.token(t, "c@d.com")

	rec := ts.do(t, http.MethodPatch, "/bookings/"+id, "", map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPatch, "/bookings/"+id, stranger, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/bookings/"+id, stranger, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/bookings/"+primitive.NewObjectID().Hex(), owner, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPatch, "/bookings/"+id, owner, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/bookings/"+id, owner, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode[models.DeleteResult](t, rec).DeletedCount)
}

func TestStoreFailureIs500(t *testing.T) {
	ts := newTestServer(t, false)
	ts.services.Err = errors.New("server selection timeout")
	ts.bookings.Err = errors.New("server selection timeout")

	rec := ts.do(t, http.MethodGet, "/services", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"internal server error"}`, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/bookings", "", map[string]string{"email": "a@b.com"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "server selection")
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, false)
	req := httptest.NewRequest(http.MethodOptions, "/bookings/abc", nil)
	req.Header.Set("Origin", "https://client.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}
