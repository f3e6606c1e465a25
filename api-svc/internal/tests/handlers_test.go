package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpapi "foodmarket/api-svc/internal/api/http"
	"foodmarket/api-svc/internal/domain"
	"foodmarket/api-svc/internal/mocks"
	"foodmarket/api-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const adminToken = "admin123"

type apiFixture struct {
	restaurants *mocks.RestaurantRepository
	menu        *mocks.MenuRepository
	orders      *mocks.OrderRepository
	router      http.Handler
}

func newAPI(t *testing.T) *apiFixture {
	f := &apiFixture{
		restaurants: mocks.NewRestaurantRepository(t),
		menu:        mocks.NewMenuRepository(t),
		orders:      mocks.NewOrderRepository(t),
	}
	orderSvc := service.NewOrderService(f.orders, nil, nil, service.TrackingQRGenerator{BaseURL: "http://localhost:5173"}, nil).
		WithRandomizer(fixedRandom(5))
	handler := httpapi.NewHandler(
		service.NewRestaurantService(f.restaurants),
		service.NewMenuService(f.menu),
		orderSvc,
		service.NewAccessGate(adminToken),
		nil,
	)
	f.router = httpapi.NewRouter(handler)
	return f
}

func (f *apiFixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAdminGate_RejectsEachGatedEndpoint(t *testing.T) {
	gated := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"signup", "POST", "/api/restaurants/signup", `{"name":"S","ownerName":"O","ownerEmail":"o@x.io","address":"A"}`},
		{"update store", "PUT", "/api/restaurants/1", `{"name":"Renamed"}`},
		{"delete store", "DELETE", "/api/restaurants/1", ""},
		{"create menu item", "POST", "/api/menu-items", `{"restaurantId":1,"name":"Soup","price":4}`},
		{"delete menu item", "DELETE", "/api/menu-items/1", ""},
	}

	for _, testCase := range gated {
		for _, token := range []string{"", "wrong"} {
			t.Run(testCase.name+"/token="+token, func(t *testing.T) {
				api := newAPI(t)

				w := api.do(testCase.method, testCase.path, testCase.body, "X-Admin-Token", token)

				assert.Equal(t, http.StatusUnauthorized, w.Code)
				assert.Equal(t, "Unauthorized. Admin access required.", decodeJSON(t, w)["error"])
			})
		}
	}
}

func TestAdminGate_AllowsValidToken(t *testing.T) {
	api := newAPI(t)
	api.restaurants.On("CreateRestaurant", mock.Anything, mock.AnythingOfType("domain.SignupRequest")).
		Return(&domain.Restaurant{ID: 5, Name: "S"}, nil).Once()

	w := api.do("POST", "/api/restaurants/signup", `{"name":"S","ownerName":"O","ownerEmail":"o@x.io","address":"A"}`,
		"X-Admin-Token", adminToken)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(5), decodeJSON(t, w)["id"])
}

func TestVerifyAdmin(t *testing.T) {
	api := newAPI(t)

	w := api.do("POST", "/api/admin/verify", `{"password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, adminToken, body["token"])

	w = api.do("POST", "/api/admin/verify", `{"password":"guess"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid admin password", decodeJSON(t, w)["error"])
}

func TestCreateOrderHandler_ExampleScenario(t *testing.T) {
	api := newAPI(t)
	api.orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("domain.NewOrder")).
		Return(func(_ context.Context, o domain.NewOrder) (*domain.Order, error) {
			return &domain.Order{
				ID:                1,
				CustomerName:      o.CustomerName,
				DeliveryAddress:   o.DeliveryAddress,
				TotalAmount:       o.TotalAmount,
				ItemsSubtotal:     o.ItemsSubtotal,
				EstimatedDelivery: o.EstimatedDelivery,
				Status:            o.Status,
			}, nil
		}).Once()

	w := api.do("POST", "/api/orders",
		`{"customerName":"Ann","deliveryAddress":"1 Rd","items":[{"menuItemId":7,"restaurantId":3,"name":"Pizza","quantity":2,"price":9.5}],"totalAmount":19}`)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "preparing", body["status"])
	assert.Regexp(t, `^\d+-\d+ min$`, body["estimated_delivery"])
	assert.Equal(t, "19", body["total_amount"])
	assert.NotContains(t, body, "items")
}

func TestCreateOrderHandler_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty items", `{"customerName":"Ann","deliveryAddress":"1 Rd","items":[]}`,
			"Missing required fields: customerName, deliveryAddress, and items are required"},
		{"missing address", `{"customerName":"Ann","items":[{"menuItemId":7,"quantity":1,"price":1}]}`,
			"Missing required fields: customerName, deliveryAddress, and items are required"},
		{"invalid JSON", `{invalid}`, "Invalid JSON body"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			api := newAPI(t)

			w := api.do("POST", "/api/orders", testCase.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, testCase.wantErr, decodeJSON(t, w)["error"])
			api.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrderHandler_StoreFailureIsGeneric(t *testing.T) {
	api := newAPI(t)
	api.orders.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, errors.New("pq: deadlock detected")).Once()

	w := api.do("POST", "/api/orders", `{"customerName":"Ann","deliveryAddress":"1 Rd","items":[{"menuItemId":7,"quantity":1,"price":1}]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to create order", decodeJSON(t, w)["error"])
}

func TestGetOrderHandler(t *testing.T) {
	api := newAPI(t)
	items := []domain.OrderItem{{ID: 1, OrderID: 42, ItemName: "Pizza", Quantity: 2}}
	api.orders.On("GetOrder", mock.Anything, 42).Return(&domain.Order{ID: 42, Status: domain.StatusPreparing}, nil).Twice()
	api.orders.On("ListOrderItems", mock.Anything, 42).Return(items, nil).Twice()
	api.orders.On("GetOrder", mock.Anything, 99).Return(nil, domain.NotFound("Order")).Once()

	first := api.do("GET", "/api/orders/42", "")
	second := api.do("GET", "/api/orders/42", "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Len(t, decodeJSON(t, first)["items"], 1)

	w := api.do("GET", "/api/orders/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decodeJSON(t, w)["error"])
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	t.Run("bogus status", func(t *testing.T) {
		api := newAPI(t)

		w := api.do("PATCH", "/api/orders/42/status", `{"status":"bogus"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid status", decodeJSON(t, w)["error"])
		api.orders.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("on the way", func(t *testing.T) {
		api := newAPI(t)
		api.orders.On("UpdateOrderStatus", mock.Anything, 42, domain.StatusOnTheWay, mock.Anything).
			Return(statusStore(domain.StatusPreparing)).Once()

		w := api.do("PATCH", "/api/orders/42/status", `{"status":"on_the_way"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "on_the_way", decodeJSON(t, w)["status"])
	})

	t.Run("delivered order cannot reopen", func(t *testing.T) {
		api := newAPI(t)
		api.orders.On("UpdateOrderStatus", mock.Anything, 42, domain.StatusPreparing, mock.Anything).
			Return(statusStore(domain.StatusDelivered)).Once()

		w := api.do("PATCH", "/api/orders/42/status", `{"status":"preparing"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		api := newAPI(t)
		api.orders.On("UpdateOrderStatus", mock.Anything, 99, domain.StatusDelivered, mock.Anything).
			Return(nil, domain.Status(""), domain.NotFound("Order")).Once()

		w := api.do("PATCH", "/api/orders/99/status", `{"status":"delivered"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderQRCodeHandler(t *testing.T) {
	api := newAPI(t)
	api.orders.On("GetOrder", mock.Anything, 42).Return(&domain.Order{ID: 42}, nil).Once()

	w := api.do("GET", "/api/orders/42/qrcode", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestDeleteRestaurantHandler(t *testing.T) {
	api := newAPI(t)
	api.restaurants.On("DeleteRestaurant", mock.Anything, 1).Return(&domain.Restaurant{ID: 1, Name: "Luigi's"}, nil).Once()
	api.restaurants.On("DeleteRestaurant", mock.Anything, 2).Return(nil, domain.NotFound("Store")).Once()

	w := api.do("DELETE", "/api/restaurants/1", "", "X-Admin-Token", adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "Store deleted successfully", body["message"])
	assert.Equal(t, "Luigi's", body["store"].(map[string]any)["name"])

	w = api.do("DELETE", "/api/restaurants/2", "", "X-Admin-Token", adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Store not found", decodeJSON(t, w)["error"])
}

func TestCatalogReadHandlers(t *testing.T) {
	api := newAPI(t)
	api.restaurants.On("ListRestaurants", mock.Anything).Return([]domain.Restaurant{{ID: 1}, {ID: 2}}, nil).Once()
	api.restaurants.On("SearchRestaurants", mock.Anything, "pizza").Return([]domain.Restaurant{{ID: 2}}, nil).Once()
	api.restaurants.On("GetRestaurant", mock.Anything, 999).Return(nil, domain.NotFound("Restaurant")).Once()
	api.menu.On("ListMenu", mock.Anything, 1).Return([]domain.MenuItem{}, nil).Once()

	assert.Equal(t, http.StatusOK, api.do("GET", "/api/restaurants", "").Code)
	assert.Equal(t, http.StatusOK, api.do("GET", "/api/restaurants/search/pizza", "").Code)

	w := api.do("GET", "/api/restaurants/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Restaurant not found", decodeJSON(t, w)["error"])

	w = api.do("GET", "/api/restaurants/1/menu", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestRouterFallbacks(t *testing.T) {
	api := newAPI(t)

	for _, path := range []string{"/api/nope", "/api/orders/abc", "/"} {
		w := api.do("GET", path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Route not found", decodeJSON(t, w)["error"])
	}

	w := api.do("DELETE", "/api/orders", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, path := range []string{"/health", "/api/health"} {
		w := api.do("GET", path, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", decodeJSON(t, w)["status"])
	}
}

func TestRouter_IDsBeyondIntegerRangeAreNotFound(t *testing.T) {
	api := newAPI(t)

	paths := []string{
		"/api/orders/99999999999",
		"/api/orders/2147483648/qrcode",
		"/api/restaurants/99999999999999999999999/menu",
		"/api/menu-items/2147483648",
	}
	for _, path := range paths {
		w := api.do("GET", path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Route not found", decodeJSON(t, w)["error"], path)
	}

	w := api.do("PATCH", "/api/orders/99999999999/status", `{"status":"delivered"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	api.orders.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderHandler_OversizedBody(t *testing.T) {
	api := newAPI(t)
	body := `{"customerName":"` + strings.Repeat("A", 2<<20) + `"}`

	w := api.do("POST", "/api/orders", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "Request body too large", decodeJSON(t, w)["error"])
	api.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestRouterRecoversFromPanics(t *testing.T) {
	api := newAPI(t)
	api.restaurants.On("ListRestaurants", mock.Anything).Run(func(mock.Arguments) { panic("boom") }).Once()

	w := api.do("GET", "/api/restaurants", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something went wrong!", decodeJSON(t, w)["error"])
}
