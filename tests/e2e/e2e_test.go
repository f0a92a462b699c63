package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/middleware"
	"hotelier/internal/modules/auth"
	"hotelier/internal/modules/catalog"
	"hotelier/internal/modules/event"
	"hotelier/internal/modules/invoice"
	"hotelier/internal/modules/reservation"
	jwtsvc "hotelier/internal/pkg/jwt"
	"hotelier/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
	adminID    int64
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Msg     string                 `json:"msg,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, repository.AutoMigrate(db), "Failed to migrate schema")

	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	eventRepo := repository.NewEventRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	catalogHandler := catalog.NewHandler(catalog.NewService(hotelRepo, roomRepo, serviceRepo, reservationRepo))
	reservationHandler := reservation.NewHandler(reservation.NewService(reservationRepo, roomRepo, userRepo, serviceRepo))
	invoiceHandler := invoice.NewHandler(invoice.NewService(invoiceRepo, reservationRepo, roomRepo, serviceRepo))
	eventHandler := event.NewHandler(event.NewService(eventRepo, hotelRepo, roomRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		catalogHandler.RegisterRoutes(protected)
		reservationHandler.RegisterRoutes(protected)
		invoiceHandler.RegisterRoutes(protected)
		eventHandler.RegisterRoutes(protected)
	}

	// Seed an admin account directly
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	adminUser := &domain.User{
		Email:        "admin@test.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Name:         "Admin User",
		Active:       true,
	}
	require.NoError(t, userRepo.Create(context.Background(), adminUser), "Failed to create admin user")

	return &E2ETestSuite{
		router:     r,
		db:         db,
		jwtService: jwtService,
		adminID:    adminUser.ID,
	}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "unparseable body: %s", w.Body.String())
	return &resp
}

func (s *E2ETestSuite) adminToken(t *testing.T) string {
	token, err := s.jwtService.GenerateToken(s.adminID, string(domain.RoleAdmin))
	require.NoError(t, err)
	return token
}

func (s *E2ETestSuite) registerUser(t *testing.T, email string) (int64, string) {
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"email":    email,
		"password": "Password123!",
		"name":     "Test Guest",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())
	resp := parseResponse(t, w)
	userID := int64(resp.Data["user"].(map[string]interface{})["id"].(float64))

	w = s.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": "Password123!",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	return userID, resp.Data["access_token"].(string)
}

func (s *E2ETestSuite) createHotel(t *testing.T, token, name string) int64 {
	w := s.makeRequest("POST", "/api/v1/hotels", map[string]interface{}{
		"name":      name,
		"address":   "Abay Ave 10",
		"category":  "4-star",
		"amenities": []string{"wifi"},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "hotel creation failed: %s", w.Body.String())
	resp := parseResponse(t, w)
	return int64(resp.Data["hotel"].(map[string]interface{})["id"].(float64))
}

func (s *E2ETestSuite) createRoom(t *testing.T, token string, hotelID int64, number, price string) int64 {
	w := s.makeRequest("POST", fmt.Sprintf("/api/v1/hotels/%d/rooms", hotelID), map[string]interface{}{
		"number":   number,
		"capacity": 2,
		"price":    price,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "room creation failed: %s", w.Body.String())
	resp := parseResponse(t, w)
	return int64(resp.Data["room"].(map[string]interface{})["id"].(float64))
}

func (s *E2ETestSuite) createService(t *testing.T, token, name, price string) int64 {
	w := s.makeRequest("POST", "/api/v1/services", map[string]interface{}{
		"name":  name,
		"price": price,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "service creation failed: %s", w.Body.String())
	resp := parseResponse(t, w)
	return int64(resp.Data["service"].(map[string]interface{})["id"].(float64))
}

func TestFlow_AuthAndProfile(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("register, login and fetch profile", func(t *testing.T) {
		_, token := suite.registerUser(t, "guest@test.com")

		w := suite.makeRequest("GET", "/api/v1/users/me", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "guest@test.com", user["email"])
		assert.Equal(t, string(domain.RoleUser), user["role"])
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"email":    "guest@test.com",
			"password": "Password123!",
			"name":     "Copycat",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)
	})

	t.Run("non-admin cannot create hotels", func(t *testing.T) {
		_, token := suite.registerUser(t, "plain@test.com")

		w := suite.makeRequest("POST", "/api/v1/hotels", map[string]interface{}{
			"name":    "Forbidden Inn",
			"address": "Nowhere 1",
		}, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFlow_ReservationLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	admin := suite.adminToken(t)
	guestID, guestToken := suite.registerUser(t, "asel@test.com")

	hotelID := suite.createHotel(t, admin, "Grand Almaty")
	roomID := suite.createRoom(t, admin, hotelID, "101", "100.00")
	serviceID := suite.createService(t, admin, "Breakfast", "25.00")

	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 2)

	var reservationID int64

	t.Run("create reservation", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"room_id":     roomID,
			"user_id":     guestID,
			"service_ids": []int64{serviceID, serviceID},
			"start_date":  start.Format(time.RFC3339),
			"end_date":    end.Format(time.RFC3339),
		}, guestToken)
		require.Equal(t, http.StatusCreated, w.Code, "reservation failed: %s", w.Body.String())

		resp := parseResponse(t, w)
		res := resp.Data["reservation"].(map[string]interface{})
		reservationID = int64(res["id"].(float64))
		assert.Equal(t, "101", res["room"].(map[string]interface{})["number"])
		assert.Len(t, res["services"].([]interface{}), 2)
	})

	t.Run("overlapping dates conflict", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"room_id":    roomID,
			"user_id":    guestID,
			"start_date": start.AddDate(0, 0, 1).Format(time.RFC3339),
			"end_date":   end.AddDate(0, 0, 3).Format(time.RFC3339),
		}, guestToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("adjacent dates allowed", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"room_id":    roomID,
			"user_id":    guestID,
			"start_date": end.Format(time.RFC3339),
			"end_date":   end.AddDate(0, 0, 2).Format(time.RFC3339),
		}, guestToken)
		assert.Equal(t, http.StatusCreated, w.Code, "back-to-back stay rejected: %s", w.Body.String())
	})

	t.Run("maintenance room rejected", func(t *testing.T) {
		maintenanceRoom := suite.createRoom(t, admin, hotelID, "102", "80.00")
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/rooms/%d/status", maintenanceRoom), map[string]interface{}{
			"status": "MAINTENANCE",
		}, admin)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"room_id":    maintenanceRoom,
			"user_id":    guestID,
			"start_date": start.Format(time.RFC3339),
			"end_date":   end.Format(time.RFC3339),
		}, guestToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("hotel rooms listed with total", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/hotels/%d/rooms", hotelID), nil, guestToken)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, float64(2), resp.Data["total"])

		rooms := resp.Data["rooms"].([]interface{})
		require.Len(t, rooms, 2)
		assert.Equal(t, "101", rooms[0].(map[string]interface{})["number"])
		assert.Equal(t, "102", rooms[1].(map[string]interface{})["number"])
	})

	t.Run("cancel twice reports success both times", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/reservations/%d", reservationID), nil, guestToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/reservations/%d", reservationID), nil, guestToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cancelled reservation hidden from reads", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/reservations/%d", reservationID), nil, guestToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFlow_InvoiceWorkflow(t *testing.T) {
	suite := setupTestSuite(t)

	admin := suite.adminToken(t)
	guestID, guestToken := suite.registerUser(t, "bekzat@test.com")

	hotelID := suite.createHotel(t, admin, "Astana Plaza")
	roomID := suite.createRoom(t, admin, hotelID, "201", "100.00")
	serviceID := suite.createService(t, admin, "Breakfast", "25.00")

	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 10)
	end := start.AddDate(0, 0, 2) // 3 billable days

	w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
		"room_id":     roomID,
		"user_id":     guestID,
		"service_ids": []int64{serviceID, serviceID},
		"start_date":  start.Format(time.RFC3339),
		"end_date":    end.Format(time.RFC3339),
	}, guestToken)
	require.Equal(t, http.StatusCreated, w.Code, "reservation failed: %s", w.Body.String())
	reservationID := int64(parseResponse(t, w).Data["reservation"].(map[string]interface{})["id"].(float64))

	var invoiceID int64

	t.Run("generate invoice with inclusive day count", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/invoices", map[string]interface{}{
			"reservation_id": reservationID,
		}, guestToken)
		require.Equal(t, http.StatusCreated, w.Code, "invoice failed: %s", w.Body.String())

		resp := parseResponse(t, w)
		inv := resp.Data["invoice"].(map[string]interface{})
		invoiceID = int64(inv["id"].(float64))
		// 100.00 x 3 days + 25.00 x 2
		assert.Equal(t, "350.00", inv["total"])
		assert.Equal(t, string(domain.InvoicePending), inv["status"])
		assert.NotEmpty(t, inv["number"])
	})

	t.Run("second invoice for same reservation conflicts", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/invoices", map[string]interface{}{
			"reservation_id": reservationID,
		}, guestToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("mark paid", func(t *testing.T) {
		w := suite.makeRequest("PUT", fmt.Sprintf("/api/v1/invoices/%d/pay", invoiceID), nil, guestToken)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, string(domain.InvoicePaid), resp.Data["invoice"].(map[string]interface{})["status"])
	})

	t.Run("mark paid twice rejected", func(t *testing.T) {
		w := suite.makeRequest("PUT", fmt.Sprintf("/api/v1/invoices/%d/pay", invoiceID), nil, guestToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("paid invoice cannot be cancelled", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/invoices/%d", invoiceID), nil, guestToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("income totals visible to admin", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/invoices/income/total", nil, admin)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "350.00", resp.Data["total_income"])
	})

	t.Run("income per month buckets the paid month", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/invoices/income/monthly", nil, admin)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		now := time.Now().UTC()
		assert.Equal(t, float64(now.Year()), resp.Data["year"])

		months := resp.Data["income_per_month"].([]interface{})
		require.Len(t, months, 12)
		for i, v := range months {
			if i == int(now.Month())-1 {
				assert.Equal(t, "350.00", v)
			} else {
				assert.Equal(t, "0", v)
			}
		}
	})

	t.Run("income forbidden for guests", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/invoices/income/total", nil, guestToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("list filtered by status", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/invoices?status=PAID", nil, guestToken)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		invoices := resp.Data["invoices"].([]interface{})
		require.Len(t, invoices, 1)
		item := invoices[0].(map[string]interface{})
		assert.Equal(t, "Astana Plaza", item["hotel_name"])
		assert.Equal(t, "201", item["room_number"])
		assert.Equal(t, "bekzat@test.com", item["user_email"])
	})
}

func TestFlow_EventsAndReports(t *testing.T) {
	suite := setupTestSuite(t)

	admin := suite.adminToken(t)
	guestID, guestToken := suite.registerUser(t, "dina@test.com")

	hotelA := suite.createHotel(t, admin, "Grand Almaty")
	hotelB := suite.createHotel(t, admin, "Caspian View")
	roomA := suite.createRoom(t, admin, hotelA, "101", "90.00")
	roomB := suite.createRoom(t, admin, hotelB, "301", "120.00")

	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 5)

	makeReservation := func(roomID int64, offsetDays int) {
		s := start.AddDate(0, 0, offsetDays*3)
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"room_id":    roomID,
			"user_id":    guestID,
			"start_date": s.Format(time.RFC3339),
			"end_date":   s.AddDate(0, 0, 2).Format(time.RFC3339),
		}, guestToken)
		require.Equal(t, http.StatusCreated, w.Code, "reservation failed: %s", w.Body.String())
	}

	makeReservation(roomA, 0)
	makeReservation(roomA, 1)
	makeReservation(roomB, 2)

	t.Run("most reserved hotels ordered by count", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/hotels/most-reserved", nil, admin)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		hotels := resp.Data["hotels"].([]interface{})
		require.Len(t, hotels, 2)
		first := hotels[0].(map[string]interface{})
		assert.Equal(t, "Grand Almaty", first["hotel_name"])
		assert.Equal(t, float64(2), first["reservations"])
	})

	t.Run("monthly stats is a 12 slot array", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/reservations/stats/monthly", nil, admin)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		months := resp.Data["reservations_per_month"].([]interface{})
		assert.Len(t, months, 12)
	})

	eventDate := time.Now().UTC().Add(72 * time.Hour)

	t.Run("create room event", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/events", map[string]interface{}{
			"hotel_id":    hotelA,
			"room_id":     roomA,
			"date":        eventDate.Format(time.RFC3339),
			"description": "Room viewing",
		}, admin)
		assert.Equal(t, http.StatusCreated, w.Code, "event failed: %s", w.Body.String())
	})

	t.Run("event within the hour window conflicts", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/events", map[string]interface{}{
			"hotel_id":    hotelA,
			"room_id":     roomA,
			"date":        eventDate.Add(30 * time.Minute).Format(time.RFC3339),
			"description": "Second viewing",
		}, admin)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("event an hour later allowed", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/events", map[string]interface{}{
			"hotel_id":    hotelA,
			"room_id":     roomA,
			"date":        eventDate.Add(time.Hour).Format(time.RFC3339),
			"description": "Later viewing",
		}, admin)
		assert.Equal(t, http.StatusCreated, w.Code, "event failed: %s", w.Body.String())
	})

	t.Run("past event rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/events", map[string]interface{}{
			"hotel_id":    hotelA,
			"date":        time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
			"description": "Too late",
		}, admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("events list resolves hotel names", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/events", nil, guestToken)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		events := resp.Data["events"].([]interface{})
		require.NotEmpty(t, events)
		assert.Equal(t, "Grand Almaty", events[0].(map[string]interface{})["hotel_name"])
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
